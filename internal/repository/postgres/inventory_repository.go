package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
)

// ErrInsufficientStock is returned when a transfer would take more units
// than the source store has on hand.
var ErrInsufficientStock = errors.New("postgres: insufficient stock at source store")

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListStoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryLine, error) {
	query := `
		SELECT i.id, i.store_id, i.product_id, p.name AS product_name,
		       i.quantity, i.safety_stock
		FROM inventories i
		JOIN products p ON p.id = i.product_id
		WHERE i.store_id = $1
		ORDER BY i.product_id
	`

	var lines []domain.InventoryLine
	if err := sqlx.SelectContext(ctx, r.db, &lines, query, storeID); err != nil {
		return nil, fmt.Errorf("failed to list store inventory: %w", err)
	}
	return lines, nil
}

func (r *inventoryRepository) GetLine(ctx context.Context, storeID, productID int64) (*domain.InventoryLine, error) {
	query := `
		SELECT i.id, i.store_id, i.product_id, p.name AS product_name,
		       i.quantity, i.safety_stock
		FROM inventories i
		JOIN products p ON p.id = i.product_id
		WHERE i.store_id = $1 AND i.product_id = $2
	`

	var line domain.InventoryLine
	if err := sqlx.GetContext(ctx, r.db, &line, query, storeID, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory line store=%d product=%d: %w", storeID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventory line: %w", err)
	}
	return &line, nil
}

func (r *inventoryRepository) UpsertLine(ctx context.Context, line *domain.InventoryLine) error {
	query := `
		INSERT INTO inventories (store_id, product_id, quantity, safety_stock)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, safety_stock = EXCLUDED.safety_stock
	`

	if _, err := r.db.ExecContext(ctx, query, line.StoreID, line.ProductID, line.Quantity, line.SafetyStock); err != nil {
		return fmt.Errorf("failed to upsert inventory line: %w", err)
	}
	return nil
}

func (r *inventoryRepository) AdjustQuantity(ctx context.Context, storeID, productID int64, delta int) error {
	query := `
		UPDATE inventories
		SET quantity = quantity + $3
		WHERE store_id = $1 AND product_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, storeID, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("inventory line store=%d product=%d: %w", storeID, productID, ErrNotFound)
	}
	return nil
}

// ApplyTransfer moves units from the source line to the target line in a
// single transaction. The source row is locked first so two concurrent
// acceptances cannot race the same donor below zero. A missing target
// line is created with zero stock and the policy default safety stock.
func (r *inventoryRepository) ApplyTransfer(ctx context.Context, req domain.TransferRequest, defaultSafetyStock int) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var sourceQty int
		err := tx.QueryRowContext(ctx, `
			SELECT quantity FROM inventories
			WHERE store_id = $1 AND product_id = $2
			FOR UPDATE
		`, req.SourceStoreID, req.ProductID).Scan(&sourceQty)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("source line store=%d product=%d: %w", req.SourceStoreID, req.ProductID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock source line: %w", err)
		}

		if sourceQty < req.Amount {
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, sourceQty, req.Amount)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE inventories SET quantity = quantity - $3
			WHERE store_id = $1 AND product_id = $2
		`, req.SourceStoreID, req.ProductID, req.Amount); err != nil {
			return fmt.Errorf("failed to decrement source: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO inventories (store_id, product_id, quantity, safety_stock)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (store_id, product_id)
			DO UPDATE SET quantity = inventories.quantity + EXCLUDED.quantity
		`, req.TargetStoreID, req.ProductID, req.Amount, defaultSafetyStock); err != nil {
			return fmt.Errorf("failed to increment target: %w", err)
		}

		return nil
	})
}
