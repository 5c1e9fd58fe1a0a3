package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/pkg/database"
)

const upsertUserSQL = `
	INSERT INTO users (name, email)
	VALUES ($1, $2)
	ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
	RETURNING id, created_at, updated_at`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts u, or updates the name of the user with the same email.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) (err error) {
	ctx, end := database.TraceQuery(ctx, "user.Upsert", upsertUserSQL)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, upsertUserSQL, u.Name, u.Email).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("upsert user %s: %w", u.Email, err)
	}
	return nil
}
