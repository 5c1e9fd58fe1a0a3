package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/internal/service"
	"github.com/utafrali/wishlist/pkg/httputil"
)

// WishlistHandler handles HTTP requests for the caller's wishlist.
type WishlistHandler struct {
	wishlist *service.WishlistService
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(wishlist *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

// List handles GET /v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	products, err := h.wishlist.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, r, http.StatusOK, httputil.MessageSuccessful, products)
}

// Add handles POST /v1/wishlist/{productId}
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.wishlist.Add(r.Context(), userID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, r, http.StatusCreated, domain.MsgWishlistAdded, nil)
}

// Remove handles DELETE /v1/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.wishlist.Remove(r.Context(), userID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, r, http.StatusOK, domain.MsgWishlistRemoved, nil)
}
