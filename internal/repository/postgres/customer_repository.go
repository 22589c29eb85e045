package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/shopspring/decimal"
)

type customerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *customerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `
		SELECT id, name, city, loyalty_score, created_at
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	if err := sqlx.GetContext(ctx, r.db, &customer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) AddLoyaltyPoints(ctx context.Context, customerID int64, points decimal.Decimal) error {
	query := `
		UPDATE customers
		SET loyalty_score = loyalty_score + $2
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, customerID, points)
	if err != nil {
		return fmt.Errorf("failed to add loyalty points: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
	}
	return nil
}
