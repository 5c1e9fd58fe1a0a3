package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes translated into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Constraint names defined by the migrations.
const (
	constraintWishlistUnique      = "wishlists_user_id_product_id_key"
	constraintWishlistProductFKey = "wishlists_product_id_fkey"
	constraintWishlistUserFKey    = "wishlists_user_id_fkey"
)

// pgErrorCode returns the SQLSTATE and constraint name of a PostgreSQL
// error, or empty strings for anything else.
func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
