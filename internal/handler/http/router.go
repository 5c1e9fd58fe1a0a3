package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/wishlist/internal/service"
	"github.com/utafrali/wishlist/pkg/health"
	"github.com/utafrali/wishlist/pkg/httputil"
	"github.com/utafrali/wishlist/pkg/middleware"
)

// RouterConfig carries the collaborators and settings NewRouter needs.
type RouterConfig struct {
	ServiceName       string
	Catalog           *service.CatalogService
	Wishlist          *service.WishlistService
	TokenValidator    middleware.TokenValidator
	Health            *health.Handler
	Logger            *slog.Logger
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all wishlist service routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware. RequestLogging runs first so every later layer,
	// including panic recovery, sees the correlation id.
	r.Use(middleware.RequestLogging(cfg.Logger, "/health/live", "/health/ready", "/metrics"))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteFailure(w, r, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteFailure(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, cfg.Logger)

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	wishlistHandler := NewWishlistHandler(cfg.Wishlist, cfg.Logger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/products", productHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.TokenValidator))

			r.Get("/wishlist", wishlistHandler.List)
			r.Post("/wishlist/{productId}", wishlistHandler.Add)
			r.Delete("/wishlist/{productId}", wishlistHandler.Remove)
		})
	})

	return r
}
