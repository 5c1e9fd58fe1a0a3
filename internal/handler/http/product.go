package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/wishlist/internal/service"
	"github.com/utafrali/wishlist/pkg/httputil"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(catalog *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// List handles GET /v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, r, http.StatusOK, httputil.MessageSuccessful, products)
}
