package drive

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/shopspring/decimal"
)

type mockSaleRepo struct {
	sales []domain.Sale
}

func (m *mockSaleRepo) InsertSale(ctx context.Context, sale *domain.Sale) (int64, error) {
	m.sales = append(m.sales, *sale)
	return int64(len(m.sales)), nil
}

func (m *mockSaleRepo) ListSales(ctx context.Context, storeID, productID int64, from, to time.Time) ([]domain.Sale, error) {
	return nil, nil
}

func (m *mockSaleRepo) DailyQuantities(ctx context.Context, storeID, productID int64, from, to time.Time) (map[string]float64, error) {
	return nil, nil
}

func (m *mockSaleRepo) CountCustomerPurchases(ctx context.Context, customerID int64) (int, error) {
	return 0, nil
}

type mockProductRepo struct {
	byName map[string]domain.Product
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return nil, repository.ErrNotFound
}

func (m *mockProductRepo) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	p, ok := m.byName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	return 0, nil
}

func (m *mockProductRepo) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return nil
}

func ingestFixture() (*IngestService, *mockSaleRepo) {
	sales := &mockSaleRepo{}
	products := &mockProductRepo{byName: map[string]domain.Product{
		"Espresso Beans": {ID: 7, Name: "Espresso Beans", Price: decimal.NewFromInt(120)},
	}}
	return NewIngestService(nil, sales, products), sales
}

func TestIngestCSV(t *testing.T) {
	svc, sales := ingestFixture()

	csvData := strings.Join([]string{
		"store_id,product,quantity,date,customer_id",
		"1,Espresso Beans,3,2026-02-10,42",
		"2,Espresso Beans,1,2026-02-11,",
	}, "\n")

	count, err := svc.IngestCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("IngestCSV() error: %v", err)
	}
	if count != 2 {
		t.Fatalf("rows = %d, want 2", count)
	}

	first := sales.sales[0]
	if first.StoreID != 1 || first.ProductID != 7 || first.Quantity != 3 || first.CustomerID != 42 {
		t.Errorf("first row = %+v", first)
	}
	if want := decimal.NewFromInt(360); !first.TotalPrice.Equal(want) {
		t.Errorf("total = %s, want %s", first.TotalPrice, want)
	}
	if sales.sales[1].CustomerID != 0 {
		t.Errorf("blank customer_id should record an anonymous sale")
	}
}

func TestIngestCSV_ExplicitTotalOverridesPrice(t *testing.T) {
	svc, sales := ingestFixture()

	csvData := "store_id,product,quantity,date,total_price\n1,Espresso Beans,2,2026-02-10,199.90\n"

	if _, err := svc.IngestCSV(context.Background(), strings.NewReader(csvData)); err != nil {
		t.Fatalf("IngestCSV() error: %v", err)
	}
	if want := decimal.RequireFromString("199.90"); !sales.sales[0].TotalPrice.Equal(want) {
		t.Errorf("total = %s, want %s", sales.sales[0].TotalPrice, want)
	}
}

func TestIngestCSV_MissingColumn(t *testing.T) {
	svc, _ := ingestFixture()

	csvData := "store_id,product,quantity\n1,Espresso Beans,3\n"

	if _, err := svc.IngestCSV(context.Background(), strings.NewReader(csvData)); err == nil {
		t.Fatal("expected error for missing date column")
	}
}

func TestIngestCSV_BadRowStopsLoad(t *testing.T) {
	svc, sales := ingestFixture()

	csvData := strings.Join([]string{
		"store_id,product,quantity,date",
		"1,Espresso Beans,3,2026-02-10",
		"1,Espresso Beans,-5,2026-02-11",
		"1,Espresso Beans,2,2026-02-12",
	}, "\n")

	count, err := svc.IngestCSV(context.Background(), strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if count != 1 || len(sales.sales) != 1 {
		t.Errorf("count = %d, inserted = %d; load should stop at the bad row", count, len(sales.sales))
	}
}

func TestIngestCSV_UnknownProduct(t *testing.T) {
	svc, _ := ingestFixture()

	csvData := "store_id,product,quantity,date\n1,Cold Brew,3,2026-02-10\n"

	if _, err := svc.IngestCSV(context.Background(), strings.NewReader(csvData)); err == nil {
		t.Fatal("expected error for unknown product")
	}
}
