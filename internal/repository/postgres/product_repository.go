package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, cost, price, created_at, updated_at
		FROM products
		ORDER BY name
	`

	var products []domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, category, cost, price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	if err := sqlx.GetContext(ctx, r.db, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id, name, category, cost, price, created_at, updated_at
		FROM products
		WHERE name = $1
	`

	var product domain.Product
	if err := sqlx.GetContext(ctx, r.db, &product, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by name: %w", err)
	}
	return &product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (name, category, cost, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, product.Name, product.Category, product.Cost, product.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, cost = $4, price = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Category, product.Cost, product.Price)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	return nil
}
