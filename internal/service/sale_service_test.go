package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/shopspring/decimal"
)

type mockSaleRepo struct {
	sales         []domain.Sale
	purchaseCount int
}

func (m *mockSaleRepo) InsertSale(ctx context.Context, sale *domain.Sale) (int64, error) {
	m.sales = append(m.sales, *sale)
	return int64(len(m.sales)), nil
}

func (m *mockSaleRepo) ListSales(ctx context.Context, storeID, productID int64, from, to time.Time) ([]domain.Sale, error) {
	return m.sales, nil
}

func (m *mockSaleRepo) DailyQuantities(ctx context.Context, storeID, productID int64, from, to time.Time) (map[string]float64, error) {
	return nil, nil
}

func (m *mockSaleRepo) CountCustomerPurchases(ctx context.Context, customerID int64) (int, error) {
	return m.purchaseCount, nil
}

type mockCustomerRepo struct {
	awarded map[int64]decimal.Decimal
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{awarded: make(map[int64]decimal.Decimal)}
}

func (m *mockCustomerRepo) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return &domain.Customer{ID: id, Name: "Ayse"}, nil
}

func (m *mockCustomerRepo) AddLoyaltyPoints(ctx context.Context, customerID int64, points decimal.Decimal) error {
	m.awarded[customerID] = m.awarded[customerID].Add(points)
	return nil
}

type mockProductRepo struct {
	products map[int64]domain.Product
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	return 0, nil
}

func (m *mockProductRepo) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return nil
}

func saleFixture() (*SaleService, *mockSaleRepo, *mockCustomerRepo) {
	sales := &mockSaleRepo{}
	customers := newMockCustomerRepo()
	products := &mockProductRepo{products: map[int64]domain.Product{
		7: {ID: 7, Name: "Espresso Beans", Price: decimal.NewFromInt(120)},
	}}
	return NewSaleService(sales, &mockInventoryRepo{}, customers, products), sales, customers
}

func TestRecordSale(t *testing.T) {
	svc, sales, _ := saleFixture()

	sale, err := svc.RecordSale(context.Background(), 1, 7, 0, 3)
	if err != nil {
		t.Fatalf("RecordSale() error: %v", err)
	}
	if sale.ID != 1 {
		t.Errorf("sale ID = %d, want 1", sale.ID)
	}
	if want := decimal.NewFromInt(360); !sale.TotalPrice.Equal(want) {
		t.Errorf("total = %s, want %s", sale.TotalPrice, want)
	}
	if len(sales.sales) != 1 {
		t.Errorf("stored sales = %d, want 1", len(sales.sales))
	}
}

func TestRecordSale_AwardsLoyalty(t *testing.T) {
	svc, sales, customers := saleFixture()
	sales.purchaseCount = 1 // second visit earns 2x

	if _, err := svc.RecordSale(context.Background(), 1, 7, 42, 1); err != nil {
		t.Fatalf("RecordSale() error: %v", err)
	}

	if want := decimal.NewFromInt(240); !customers.awarded[42].Equal(want) {
		t.Errorf("points = %s, want %s", customers.awarded[42], want)
	}
}

func TestRecordSale_AnonymousSkipsLoyalty(t *testing.T) {
	svc, _, customers := saleFixture()

	if _, err := svc.RecordSale(context.Background(), 1, 7, 0, 1); err != nil {
		t.Fatalf("RecordSale() error: %v", err)
	}
	if len(customers.awarded) != 0 {
		t.Errorf("points awarded for anonymous sale: %v", customers.awarded)
	}
}

func TestRecordSale_InvalidQuantity(t *testing.T) {
	svc, _, _ := saleFixture()

	if _, err := svc.RecordSale(context.Background(), 1, 7, 0, 0); !errors.Is(err, ErrInvalidSale) {
		t.Errorf("err = %v, want ErrInvalidSale", err)
	}
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	svc, _, _ := saleFixture()

	if _, err := svc.RecordSale(context.Background(), 1, 999, 0, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoyaltyPoints(t *testing.T) {
	total := decimal.NewFromInt(100)

	tests := []struct {
		name          string
		purchaseCount int
		want          int64
	}{
		{"first visit", 0, 100},
		{"second visit", 1, 200},
		{"fourth visit", 3, 400},
		{"fifth visit hits the cap", 4, 500},
		{"tenth visit stays capped", 9, 500},
		{"negative count treated as first", -2, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loyaltyPoints(total, tt.purchaseCount)
			if want := decimal.NewFromInt(tt.want); !got.Equal(want) {
				t.Errorf("loyaltyPoints(100, %d) = %s, want %s", tt.purchaseCount, got, want)
			}
		})
	}
}
