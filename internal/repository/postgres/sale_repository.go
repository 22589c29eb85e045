package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
)

type saleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *saleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) InsertSale(ctx context.Context, sale *domain.Sale) (int64, error) {
	query := `
		INSERT INTO sales (store_id, product_id, customer_id, date, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sale.StoreID, sale.ProductID, sale.CustomerID, sale.Date, sale.Quantity, sale.TotalPrice,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sale: %w", err)
	}
	return id, nil
}

func (r *saleRepository) ListSales(ctx context.Context, storeID, productID int64, from, to time.Time) ([]domain.Sale, error) {
	query := `
		SELECT id, store_id, product_id, customer_id, date, quantity, total_price
		FROM sales
		WHERE store_id = $1 AND product_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date
	`

	var sales []domain.Sale
	if err := sqlx.SelectContext(ctx, r.db, &sales, query, storeID, productID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// DailyQuantities aggregates sold units per day, keyed by YYYY-MM-DD, for
// the demand forecaster.
func (r *saleRepository) DailyQuantities(ctx context.Context, storeID, productID int64, from, to time.Time) (map[string]float64, error) {
	query := `
		SELECT date::date AS date, COALESCE(SUM(quantity), 0) AS total
		FROM sales
		WHERE store_id = $1 AND product_id = $2 AND date >= $3 AND date <= $4
		GROUP BY date::date
		ORDER BY date::date
	`

	rows, err := r.db.QueryContext(ctx, query, storeID, productID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily sales: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var day time.Time
		var total float64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		totals[day.Format("2006-01-02")] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily totals: %w", err)
	}

	return totals, nil
}

func (r *saleRepository) CountCustomerPurchases(ctx context.Context, customerID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sales WHERE customer_id = $1`, customerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customer purchases: %w", err)
	}
	return count, nil
}
