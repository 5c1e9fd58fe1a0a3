package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/wishlist/pkg/httputil"
	"github.com/utafrali/wishlist/pkg/middleware"
	"github.com/utafrali/wishlist/pkg/validator"
)

const productIDParam = "productId"

type productPath struct {
	ProductID int64 `param:"productId" validate:"required,gt=0"`
}

// productIDFromPath parses and validates {productId}. On failure it writes a
// 400 envelope and returns false. An explicit "+" sign is rejected so each
// product has a single path.
func productIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, productIDParam)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || strings.HasPrefix(raw, "+") {
		httputil.WriteFieldErrors(w, r, map[string]string{productIDParam: "must be a positive integer"})
		return 0, false
	}

	if err := validator.Validate(productPath{ProductID: id}); err != nil {
		httputil.WriteValidationError(w, r, err)
		return 0, false
	}
	return id, true
}

// principalFromRequest returns the caller's user id. Routes behind
// middleware.Auth always have one.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		httputil.WriteFailure(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthenticated.")
		return 0, false
	}
	return userID, true
}
