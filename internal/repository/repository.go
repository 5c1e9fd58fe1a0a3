package repository

import (
	"context"

	"github.com/utafrali/wishlist/internal/domain"
)

// ProductRepository reads the product catalog.
type ProductRepository interface {
	// List returns every product, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID returns the product or a NotFound error.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Create inserts a product and fills in its id and timestamps.
	Create(ctx context.Context, p *domain.Product) error
}

// WishlistRepository persists (user, product) wishlist entries.
type WishlistRepository interface {
	// Add inserts an entry. A duplicate pair yields a Conflict error; a
	// missing product yields NotFound; a missing user yields Unauthorized.
	Add(ctx context.Context, userID, productID int64) error

	// ListProducts returns the user's wishlisted products, most recently
	// added first.
	ListProducts(ctx context.Context, userID int64) ([]domain.Product, error)

	// Remove deletes the entry if present and reports whether a row was
	// removed. Absence is not an error.
	Remove(ctx context.Context, userID, productID int64) (bool, error)

	// Exists reports whether the entry is present.
	Exists(ctx context.Context, userID, productID int64) (bool, error)
}

// UserRepository stores principals.
type UserRepository interface {
	// Upsert inserts the user or refreshes the name of an existing user with
	// the same email, filling in the id and timestamps.
	Upsert(ctx context.Context, u *domain.User) error
}
