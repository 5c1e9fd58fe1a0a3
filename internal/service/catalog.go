package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/internal/repository"
)

// CatalogService implements read access to the product catalog.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns every product, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	s.logger.DebugContext(ctx, "listed products", slog.Int("count", len(products)))
	return products, nil
}

// GetProduct retrieves a product by its ID. An unknown id yields a NotFound
// error.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.GetProduct")
	defer span.End()

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}
