package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreType distinguishes warehouses from retail outlets. The ordering
// matters to the transfer engine: HUB and CENTER donors are searched
// before peer STOREs.
type StoreType string

const (
	StoreTypeCenter StoreType = "CENTER" // central warehouse
	StoreTypeHub    StoreType = "HUB"    // regional depot
	StoreTypeStore  StoreType = "STORE"  // retail outlet
)

// Valid reports whether t is one of the three known store types.
func (t StoreType) Valid() bool {
	switch t {
	case StoreTypeCenter, StoreTypeHub, StoreTypeStore:
		return true
	}
	return false
}

// Store represents a store location with its inventory loaded.
type Store struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	StoreType StoreType       `json:"store_type" db:"store_type"`
	Lat       float64         `json:"lat" db:"lat"`
	Lon       float64         `json:"lon" db:"lon"`
	Inventory []InventoryLine `json:"inventory,omitempty" db:"-"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// InventoryLine is one product's stock position at one store.
type InventoryLine struct {
	ID          int64  `json:"id" db:"id"`
	StoreID     int64  `json:"store_id" db:"store_id"`
	ProductID   int64  `json:"product_id" db:"product_id"`
	ProductName string `json:"product_name" db:"product_name"`
	Quantity    int    `json:"quantity" db:"quantity"`
	SafetyStock int    `json:"safety_stock" db:"safety_stock"`
}

// Product represents a sellable item.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  string          `json:"category" db:"category"`
	Cost      decimal.Decimal `json:"cost" db:"cost"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Customer represents a loyalty program member.
type Customer struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	City         string          `json:"city" db:"city"`
	LoyaltyScore decimal.Decimal `json:"loyalty_score" db:"loyalty_score"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Sale is one recorded sale transaction line.
type Sale struct {
	ID         int64           `json:"id" db:"id"`
	StoreID    int64           `json:"store_id" db:"store_id"`
	ProductID  int64           `json:"product_id" db:"product_id"`
	CustomerID int64           `json:"customer_id" db:"customer_id"`
	Date       time.Time       `json:"date" db:"date"`
	Quantity   int             `json:"quantity" db:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
}

// Forecast is a predicted demand quantity for a store/product/date.
type Forecast struct {
	ID                int64     `json:"id" db:"id"`
	StoreID           int64     `json:"store_id" db:"store_id"`
	ProductID         int64     `json:"product_id" db:"product_id"`
	Date              time.Time `json:"date" db:"date"`
	PredictedQuantity float64   `json:"predicted_quantity" db:"predicted_quantity"`
}

// RoutePenalty tracks how often a source→target transfer route has been
// rejected by operators.
type RoutePenalty struct {
	ID            int64     `json:"id" db:"id"`
	SourceStoreID int64     `json:"source_store_id" db:"source_store_id"`
	TargetStoreID int64     `json:"target_store_id" db:"target_store_id"`
	PenaltyScore  int       `json:"penalty_score" db:"penalty_score"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TransferRejection is the audit record written when an operator declines
// a recommendation.
type TransferRejection struct {
	ID            int64     `json:"id" db:"id"`
	SourceStoreID int64     `json:"source_store_id" db:"source_store_id"`
	TargetStoreID int64     `json:"target_store_id" db:"target_store_id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	Reason        string    `json:"reason" db:"reason"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// PosSale is a sale synced from a point-of-sale device. The
// (DeviceID, ReceiptNo) pair is the idempotency key.
type PosSale struct {
	ID              int64           `json:"id" db:"id"`
	DeviceID        string          `json:"pos_device_id" db:"pos_device_id"`
	ReceiptNo       string          `json:"receipt_no" db:"receipt_no"`
	TransactionType string          `json:"transaction_type" db:"transaction_type"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Currency        string          `json:"currency" db:"currency"`
	Status          string          `json:"status" db:"status"`
	SyncRef         string          `json:"sync_ref" db:"sync_ref"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	Items           []PosSaleItem   `json:"items,omitempty" db:"-"`
	Payments        []PosPayment    `json:"payments,omitempty" db:"-"`
}

// PosSaleItem is one receipt line.
type PosSaleItem struct {
	ID         int64           `json:"id" db:"id"`
	PosSaleID  int64           `json:"pos_sale_id" db:"pos_sale_id"`
	ProductSKU string          `json:"product_sku" db:"product_sku"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	VATRate    decimal.Decimal `json:"vat_rate" db:"vat_rate"`
}

// PosPayment is one payment method applied to a receipt.
type PosPayment struct {
	ID            int64           `json:"id" db:"id"`
	PosSaleID     int64           `json:"pos_sale_id" db:"pos_sale_id"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
}

// PosZReport is an end-of-day summary from a POS device.
type PosZReport struct {
	ID           int64           `json:"id" db:"id"`
	DeviceID     string          `json:"pos_device_id" db:"pos_device_id"`
	ZNo          string          `json:"z_no" db:"z_no"`
	Date         time.Time       `json:"date" db:"date"`
	TotalSales   decimal.Decimal `json:"total_sales" db:"total_sales"`
	TotalReturns decimal.Decimal `json:"total_returns" db:"total_returns"`
	TotalCash    decimal.Decimal `json:"total_cash" db:"total_cash"`
	TotalCredit  decimal.Decimal `json:"total_credit" db:"total_credit"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
