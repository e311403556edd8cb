package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price_cents, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Pool.Exec(ctx, query, p.ID, p.Name, p.Description, p.PriceCents, p.Currency, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT id, name, description, price_cents, currency, created_at FROM products WHERE id = $1`

	var m ProductModel
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Description, &m.PriceCents, &m.Currency, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewProductNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return toProductDomain(m), nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price_cents, currency, created_at
		FROM products
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Product, error) {
		var m ProductModel
		err := row.Scan(&m.ID, &m.Name, &m.Description, &m.PriceCents, &m.Currency, &m.CreatedAt)
		return toProductDomain(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return products, nil
}
