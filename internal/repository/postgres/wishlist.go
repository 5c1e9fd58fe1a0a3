package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/pkg/database"
	apperrors "github.com/utafrali/wishlist/pkg/errors"
)

const (
	insertWishlistSQL = `
		INSERT INTO wishlists (user_id, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)`

	listWishlistProductsSQL = `
		SELECT p.id, p.name, p.price, p.description, p.created_at, p.updated_at
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC, w.id DESC`

	deleteWishlistSQL = `DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`

	existsWishlistSQL = `SELECT EXISTS(SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2)`
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	db  database.DBTX
	now func() time.Time
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db database.DBTX) *WishlistRepository {
	return &WishlistRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add inserts the (user, product) entry. The unique constraint is the
// authority on duplicates, so a concurrent add that slipped past the
// service's pre-check still fails with the same Conflict error.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) (err error) {
	ctx, end := database.TraceQuery(ctx, "wishlist.Add", insertWishlistSQL)
	defer func() { end(err) }()

	if _, err = r.db.Exec(ctx, insertWishlistSQL, userID, productID, r.now()); err != nil {
		return translateAddError(err, userID, productID)
	}
	return nil
}

func translateAddError(err error, userID, productID int64) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == constraintWishlistUnique:
		return apperrors.Conflict(domain.MsgWishlistExists)
	case code == pgForeignKeyViolation && constraint == constraintWishlistProductFKey:
		return apperrors.NotFound("product", productID)
	case code == pgForeignKeyViolation && constraint == constraintWishlistUserFKey:
		return apperrors.Unauthorized(fmt.Sprintf("user %d no longer exists", userID))
	default:
		return fmt.Errorf("add to wishlist: %w", err)
	}
}

// ListProducts returns the user's wishlisted products, most recently added
// first.
func (r *WishlistRepository) ListProducts(ctx context.Context, userID int64) (_ []domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "wishlist.ListProducts", listWishlistProductsSQL)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, listWishlistProductsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist products: %w", err)
	}
	return collectProducts(rows)
}

// Remove deletes the entry if present.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) (_ bool, err error) {
	ctx, end := database.TraceQuery(ctx, "wishlist.Remove", deleteWishlistSQL)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, deleteWishlistSQL, userID, productID)
	if err != nil {
		return false, fmt.Errorf("remove from wishlist: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// Exists reports whether the entry is present.
func (r *WishlistRepository) Exists(ctx context.Context, userID, productID int64) (_ bool, err error) {
	ctx, end := database.TraceQuery(ctx, "wishlist.Exists", existsWishlistSQL)
	defer func() { end(err) }()

	var exists bool
	if err = r.db.QueryRow(ctx, existsWishlistSQL, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wishlist entry: %w", err)
	}
	return exists, nil
}
