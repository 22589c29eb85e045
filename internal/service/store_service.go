package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
)

// ErrInvalidStore indicates a malformed store payload.
var ErrInvalidStore = errors.New("service: invalid store")

// StoreService is the CRUD surface for stores and their inventory lines.
type StoreService struct {
	stores    repository.StoreRepository
	inventory repository.InventoryRepository
}

func NewStoreService(stores repository.StoreRepository, inventory repository.InventoryRepository) *StoreService {
	return &StoreService{stores: stores, inventory: inventory}
}

func (s *StoreService) ListStores(ctx context.Context) ([]domain.Store, error) {
	return s.stores.ListStores(ctx)
}

func (s *StoreService) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	return s.stores.GetStore(ctx, id)
}

func (s *StoreService) CreateStore(ctx context.Context, store *domain.Store) (int64, error) {
	if store.Name == "" {
		return 0, fmt.Errorf("%w: name is required", ErrInvalidStore)
	}
	if store.StoreType == "" {
		store.StoreType = domain.StoreTypeStore
	}
	if !store.StoreType.Valid() {
		return 0, fmt.Errorf("%w: unknown store type %q", ErrInvalidStore, store.StoreType)
	}
	return s.stores.CreateStore(ctx, store)
}

func (s *StoreService) UpdateStore(ctx context.Context, store *domain.Store) error {
	if store.ID == 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidStore)
	}
	if !store.StoreType.Valid() {
		return fmt.Errorf("%w: unknown store type %q", ErrInvalidStore, store.StoreType)
	}
	return s.stores.UpdateStore(ctx, store)
}

func (s *StoreService) DeleteStore(ctx context.Context, id int64) error {
	return s.stores.DeleteStore(ctx, id)
}

// SetInventoryLine upserts one stock line for a store.
func (s *StoreService) SetInventoryLine(ctx context.Context, line *domain.InventoryLine) error {
	if line.StoreID == 0 || line.ProductID == 0 {
		return fmt.Errorf("%w: store and product are required", ErrInvalidStore)
	}
	if line.SafetyStock < 0 {
		return fmt.Errorf("%w: safety stock must not be negative", ErrInvalidStore)
	}
	if _, err := s.stores.GetStore(ctx, line.StoreID); err != nil {
		return err
	}
	return s.inventory.UpsertLine(ctx, line)
}

func (s *StoreService) StoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryLine, error) {
	return s.inventory.ListStoreInventory(ctx, storeID)
}
