package domain

import "time"

// WishlistEntry associates one user with one product. The (UserID,
// ProductID) pair is unique.
type WishlistEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Wishlist operation names, used as metric labels and log fields.
const (
	WishlistOpAdd    = "add"
	WishlistOpList   = "list"
	WishlistOpRemove = "remove"
)

// Messages returned to clients by the wishlist endpoints.
const (
	MsgWishlistAdded   = "Product added to wishlist"
	MsgWishlistRemoved = "Product removed from wishlist"
	MsgWishlistExists  = "Product already in wishlist"
)
