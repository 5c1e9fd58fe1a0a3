package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/internal/repository"
	apperrors "github.com/utafrali/wishlist/pkg/errors"
)

// WishlistService implements the business logic for a user's wishlist. Every
// operation acts on the caller's own entries only.
type WishlistService struct {
	catalog   *CatalogService
	wishlists repository.WishlistRepository
	logger    *slog.Logger
}

// NewWishlistService creates a new wishlist service. Product ids are resolved
// through catalog.
func NewWishlistService(catalog *CatalogService, wishlists repository.WishlistRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		catalog:   catalog,
		wishlists: wishlists,
		logger:    logger,
	}
}

// Add puts the product on the user's wishlist. It fails with NotFound for an
// unknown product and with Conflict when the entry already exists.
func (s *WishlistService) Add(ctx context.Context, userID, productID int64) (err error) {
	ctx, span := tracer.Start(ctx, "WishlistService.Add")
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.Int64("product.id", productID))
	defer func() {
		recordOperation(domain.WishlistOpAdd, err)
		recordSpanError(span, err)
		span.End()
	}()

	if _, err = s.catalog.GetProduct(ctx, productID); err != nil {
		return fmt.Errorf("resolve product: %w", err)
	}

	exists, err := s.wishlists.Exists(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("check wishlist entry: %w", err)
	}
	if exists {
		return apperrors.Conflict(domain.MsgWishlistExists)
	}

	// The unique constraint still rejects a concurrent duplicate that passed
	// the check above.
	if err = s.wishlists.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("add wishlist entry: %w", err)
	}

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
	)
	return nil
}

// List returns the products on the user's wishlist, most recently added
// first. An empty wishlist yields an empty, non-nil slice.
func (s *WishlistService) List(ctx context.Context, userID int64) (_ []domain.Product, err error) {
	ctx, span := tracer.Start(ctx, "WishlistService.List")
	span.SetAttributes(attribute.Int64("user.id", userID))
	defer func() {
		recordOperation(domain.WishlistOpList, err)
		recordSpanError(span, err)
		span.End()
	}()

	products, err := s.wishlists.ListProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Remove takes the product off the user's wishlist. The product must exist;
// an absent entry is not an error.
func (s *WishlistService) Remove(ctx context.Context, userID, productID int64) (err error) {
	ctx, span := tracer.Start(ctx, "WishlistService.Remove")
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.Int64("product.id", productID))
	defer func() {
		recordOperation(domain.WishlistOpRemove, err)
		recordSpanError(span, err)
		span.End()
	}()

	if _, err = s.catalog.GetProduct(ctx, productID); err != nil {
		return fmt.Errorf("resolve product: %w", err)
	}

	removed, err := s.wishlists.Remove(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("remove wishlist entry: %w", err)
	}

	span.SetAttributes(attribute.Bool("wishlist.removed", removed))
	if removed {
		s.logger.InfoContext(ctx, "product removed from wishlist",
			slog.Int64("user_id", userID),
			slog.Int64("product_id", productID),
		)
	}
	return nil
}
