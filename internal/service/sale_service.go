package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidSale indicates a malformed sale payload.
var ErrInvalidSale = errors.New("service: invalid sale")

// loyaltyMultiplierCap bounds the visit-based points multiplier.
const loyaltyMultiplierCap = 5

// SaleService records sales, keeps inventory in sync and awards loyalty
// points.
type SaleService struct {
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

func NewSaleService(
	sales repository.SaleRepository,
	inventory repository.InventoryRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
) *SaleService {
	return &SaleService{
		sales:     sales,
		inventory: inventory,
		customers: customers,
		products:  products,
	}
}

// RecordSale inserts the sale, decrements the store's stock line and
// credits the customer's loyalty score. A zero customer ID records an
// anonymous sale without loyalty bookkeeping.
func (s *SaleService) RecordSale(ctx context.Context, storeID, productID, customerID int64, quantity int) (*domain.Sale, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidSale)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		StoreID:    storeID,
		ProductID:  productID,
		CustomerID: customerID,
		Date:       time.Now(),
		Quantity:   quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}

	id, err := s.sales.InsertSale(ctx, sale)
	if err != nil {
		return nil, err
	}
	sale.ID = id

	if err := s.inventory.AdjustQuantity(ctx, storeID, productID, -quantity); err != nil {
		// The sale is already recorded; stock drift is logged for
		// reconciliation rather than failing the whole transaction.
		log.Error().Err(err).Int64("store", storeID).Int64("product", productID).
			Msg("sale recorded but stock adjustment failed")
	}

	if customerID != 0 {
		if err := s.awardLoyaltyPoints(ctx, customerID, sale.TotalPrice); err != nil {
			log.Warn().Err(err).Int64("customer", customerID).Msg("loyalty points not awarded")
		}
	}

	return sale, nil
}

func (s *SaleService) awardLoyaltyPoints(ctx context.Context, customerID int64, total decimal.Decimal) error {
	count, err := s.sales.CountCustomerPurchases(ctx, customerID)
	if err != nil {
		return err
	}

	points := loyaltyPoints(total, count)
	return s.customers.AddLoyaltyPoints(ctx, customerID, points)
}

// loyaltyPoints awards total × visit-ordinal, so the first purchase earns
// 1x, the second 2x, capped at 5x. purchaseCount is the number of sales
// already on record, which makes the current one purchaseCount+1.
func loyaltyPoints(total decimal.Decimal, purchaseCount int) decimal.Decimal {
	multiplier := purchaseCount + 1
	if multiplier < 1 {
		multiplier = 1
	}
	if multiplier > loyaltyMultiplierCap {
		multiplier = loyaltyMultiplierCap
	}
	return total.Mul(decimal.NewFromInt(int64(multiplier)))
}

// SalesHistory lists sales for one store/product over a date range.
func (s *SaleService) SalesHistory(ctx context.Context, storeID, productID int64, from, to time.Time) ([]domain.Sale, error) {
	return s.sales.ListSales(ctx, storeID, productID, from, to)
}
