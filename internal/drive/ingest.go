package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// downloader is the slice of Service the ingest pipeline needs.
type downloader interface {
	DownloadFile(fileID string, w io.Writer) error
}

// IngestService parses HQ sales exports and loads them as sale rows.
// Expected columns: store_id, product, quantity, date, and optionally
// customer_id and total_price.
type IngestService struct {
	drive    downloader
	sales    repository.SaleRepository
	products repository.ProductRepository
}

func NewIngestService(drive downloader, sales repository.SaleRepository, products repository.ProductRepository) *IngestService {
	return &IngestService{
		drive:    drive,
		sales:    sales,
		products: products,
	}
}

// IngestFile streams one CSV from Drive into the sales table. The whole
// file is rejected on the first malformed row so a partial load never
// skews the forecast history.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) (int, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.drive.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	count, err := s.IngestCSV(ctx, pr)
	if err != nil {
		return count, err
	}

	log.Info().Str("file_id", fileID).Int("rows", count).Msg("sales file ingested")
	return count, nil
}

// IngestCSV parses sale rows from r. Split out from IngestFile so tests
// can feed CSV without a Drive round trip.
func (s *IngestService) IngestCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read csv header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(strings.ToLower(col))] = i
	}

	for _, col := range []string{"store_id", "product", "quantity", "date"} {
		if _, ok := colMap[col]; !ok {
			return 0, fmt.Errorf("missing required column: %s", col)
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read csv record: %w", err)
		}

		if err := s.processRow(ctx, record, colMap); err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}

	return count, nil
}

func (s *IngestService) processRow(ctx context.Context, record []string, colMap map[string]int) error {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	storeID, err := strconv.ParseInt(getValue("store_id"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid store_id %q", getValue("store_id"))
	}

	quantity, err := strconv.Atoi(getValue("quantity"))
	if err != nil || quantity <= 0 {
		return fmt.Errorf("invalid quantity %q", getValue("quantity"))
	}

	date, err := time.Parse("2006-01-02", getValue("date"))
	if err != nil {
		return fmt.Errorf("invalid date %q", getValue("date"))
	}

	product, err := s.products.GetProductByName(ctx, getValue("product"))
	if err != nil {
		return fmt.Errorf("product %q: %w", getValue("product"), err)
	}

	var customerID int64
	if v := getValue("customer_id"); v != "" {
		customerID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customer_id %q", v)
		}
	}

	total := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if v := getValue("total_price"); v != "" {
		total, err = decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid total_price %q", v)
		}
	}

	sale := &domain.Sale{
		StoreID:    storeID,
		ProductID:  product.ID,
		CustomerID: customerID,
		Date:       date,
		Quantity:   quantity,
		TotalPrice: total,
	}

	if _, err := s.sales.InsertSale(ctx, sale); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}
