package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/pkg/database"
	apperrors "github.com/utafrali/wishlist/pkg/errors"
)

const productColumns = `id, name, price, description, created_at, updated_at`

const (
	listProductsSQL = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id DESC`

	getProductSQL = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	insertProductSQL = `
		INSERT INTO products (name, price, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all products ordered newest first. The id breaks ties between
// products created in the same instant.
func (r *ProductRepository) List(ctx context.Context) (products []domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "product.List", listProductsSQL)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// GetByID returns the product with the given id.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (_ *domain.Product, err error) {
	ctx, end := database.TraceQuery(ctx, "product.GetByID", getProductSQL)
	defer func() { end(err) }()

	var p domain.Product
	err = r.db.QueryRow(ctx, getProductSQL, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// Create inserts p and sets its id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (err error) {
	ctx, end := database.TraceQuery(ctx, "product.Create", insertProductSQL)
	defer func() { end(err) }()

	now := time.Now().UTC()
	if err = r.db.QueryRow(ctx, insertProductSQL, p.Name, p.Price, p.Description, now).Scan(&p.ID); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// collectProducts scans rows selected with productColumns. It never returns
// a nil slice so empty results encode as [].
func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}
