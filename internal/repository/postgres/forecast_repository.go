package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

func (r *forecastRepository) SaveForecasts(ctx context.Context, forecasts []domain.Forecast) error {
	if len(forecasts) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO forecasts (store_id, product_id, date, predicted_quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (store_id, product_id, date)
			DO UPDATE SET predicted_quantity = EXCLUDED.predicted_quantity
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare forecast statement: %w", err)
		}
		defer stmt.Close()

		for _, f := range forecasts {
			if _, err := stmt.ExecContext(ctx, f.StoreID, f.ProductID, f.Date, f.PredictedQuantity); err != nil {
				return fmt.Errorf("failed to insert forecast: %w", err)
			}
		}
		return nil
	})
}

func (r *forecastRepository) ListForecasts(ctx context.Context, storeID, productID int64) ([]domain.Forecast, error) {
	query := `
		SELECT id, store_id, product_id, date, predicted_quantity
		FROM forecasts
		WHERE store_id = $1 AND product_id = $2
		ORDER BY date
	`

	var forecasts []domain.Forecast
	if err := sqlx.SelectContext(ctx, r.db, &forecasts, query, storeID, productID); err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	return forecasts, nil
}
