package repository

import (
	"context"
	"errors"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by any repository when a requested row does
// not exist.
var ErrNotFound = errors.New("repository: not found")

// StoreRepository reads and writes store records. ListStoresWithInventory
// returns the complete snapshot the risk and transfer engines consume.
type StoreRepository interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	ListStoresWithInventory(ctx context.Context) ([]domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	CreateStore(ctx context.Context, store *domain.Store) (int64, error)
	UpdateStore(ctx context.Context, store *domain.Store) error
	DeleteStore(ctx context.Context, id int64) error
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductByName(ctx context.Context, name string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
}

// InventoryRepository manages per-store stock lines. ApplyTransfer is the
// single atomic read-modify-write that moves units between two stores
// after an operator accepts a recommendation.
type InventoryRepository interface {
	ListStoreInventory(ctx context.Context, storeID int64) ([]domain.InventoryLine, error)
	GetLine(ctx context.Context, storeID, productID int64) (*domain.InventoryLine, error)
	UpsertLine(ctx context.Context, line *domain.InventoryLine) error
	AdjustQuantity(ctx context.Context, storeID, productID int64, delta int) error
	ApplyTransfer(ctx context.Context, req domain.TransferRequest, defaultSafetyStock int) error
}

type SaleRepository interface {
	InsertSale(ctx context.Context, sale *domain.Sale) (int64, error)
	ListSales(ctx context.Context, storeID, productID int64, from, to time.Time) ([]domain.Sale, error)
	DailyQuantities(ctx context.Context, storeID, productID int64, from, to time.Time) (map[string]float64, error)
	CountCustomerPurchases(ctx context.Context, customerID int64) (int, error)
}

type CustomerRepository interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	AddLoyaltyPoints(ctx context.Context, customerID int64, points decimal.Decimal) error
}

// TransferRepository covers the bookkeeping around declined
// recommendations: the audit record and the per-route penalty counter.
type TransferRepository interface {
	InsertRejection(ctx context.Context, rejection *domain.TransferRejection) error
	IncrementRoutePenalty(ctx context.Context, sourceStoreID, targetStoreID int64) (int, error)
}

type ForecastRepository interface {
	SaveForecasts(ctx context.Context, forecasts []domain.Forecast) error
	ListForecasts(ctx context.Context, storeID, productID int64) ([]domain.Forecast, error)
}

type PosRepository interface {
	GetSaleByReceipt(ctx context.Context, deviceID, receiptNo string) (*domain.PosSale, error)
	InsertPosSale(ctx context.Context, sale *domain.PosSale) error
	InsertZReport(ctx context.Context, report *domain.PosZReport) (int64, error)
}
