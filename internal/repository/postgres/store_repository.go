package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
)

// ErrNotFound aliases the repository-level sentinel for readability
// inside this package.
var ErrNotFound = repository.ErrNotFound

type storeRepository struct {
	db *DB
}

func NewStoreRepository(db *DB) *storeRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) ListStores(ctx context.Context) ([]domain.Store, error) {
	query := `
		SELECT id, name, store_type, lat, lon, created_at, updated_at
		FROM stores
		ORDER BY id
	`

	var stores []domain.Store
	if err := sqlx.SelectContext(ctx, r.db, &stores, query); err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	return stores, nil
}

// ListStoresWithInventory loads the full snapshot consumed by the risk
// classifier and the transfer engine. Inventory rows are joined with
// product names so the engine can build readable explanations.
func (r *storeRepository) ListStoresWithInventory(ctx context.Context) ([]domain.Store, error) {
	stores, err := r.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT i.id, i.store_id, i.product_id, p.name AS product_name,
		       i.quantity, i.safety_stock
		FROM inventories i
		JOIN products p ON p.id = i.product_id
		ORDER BY i.store_id, i.product_id
	`

	var lines []domain.InventoryLine
	if err := sqlx.SelectContext(ctx, r.db, &lines, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory lines: %w", err)
	}

	byStore := make(map[int64][]domain.InventoryLine, len(stores))
	for _, line := range lines {
		byStore[line.StoreID] = append(byStore[line.StoreID], line)
	}
	for i := range stores {
		stores[i].Inventory = byStore[stores[i].ID]
	}

	return stores, nil
}

func (r *storeRepository) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	query := `
		SELECT id, name, store_type, lat, lon, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store domain.Store
	if err := sqlx.GetContext(ctx, r.db, &store, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	lines, err := r.storeInventory(ctx, id)
	if err != nil {
		return nil, err
	}
	store.Inventory = lines

	return &store, nil
}

func (r *storeRepository) storeInventory(ctx context.Context, storeID int64) ([]domain.InventoryLine, error) {
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
		return nil, fmt.Errorf("failed to load store inventory: %w", err)
	}
	return lines, nil
}

func (r *storeRepository) CreateStore(ctx context.Context, store *domain.Store) (int64, error) {
	query := `
		INSERT INTO stores (name, store_type, lat, lon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, store.Name, store.StoreType, store.Lat, store.Lon).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create store: %w", err)
	}
	return id, nil
}

func (r *storeRepository) UpdateStore(ctx context.Context, store *domain.Store) error {
	query := `
		UPDATE stores
		SET name = $2, store_type = $3, lat = $4, lon = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, store.ID, store.Name, store.StoreType, store.Lat, store.Lon)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store %d: %w", store.ID, ErrNotFound)
	}
	return nil
}

func (r *storeRepository) DeleteStore(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store %d: %w", id, ErrNotFound)
	}
	return nil
}
