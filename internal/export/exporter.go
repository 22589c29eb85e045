package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Exporter renders transfer recommendations and risk reports as CSV and
// pushes them to object storage for the BI team.
type Exporter struct {
	store storage.ObjectStorage
	now   func() time.Time
}

func NewExporter(store storage.ObjectStorage) *Exporter {
	return &Exporter{store: store, now: time.Now}
}

// ExportSnapshot uploads both files under a timestamped prefix. Uploads
// run concurrently; the first failure cancels the rest.
func (e *Exporter) ExportSnapshot(ctx context.Context, recs []domain.TransferRecommendation, reports []domain.StoreRiskReport) (string, error) {
	prefix := fmt.Sprintf("exports/%s", e.now().UTC().Format("2006-01-02T15-04-05"))

	recCSV, err := RecommendationsCSV(recs)
	if err != nil {
		return "", err
	}
	reportCSV, err := RiskReportsCSV(reports)
	if err != nil {
		return "", err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.store.UploadObject(ctx, prefix+"/transfer_recommendations.csv", recCSV)
	})
	g.Go(func() error {
		return e.store.UploadObject(ctx, prefix+"/risk_reports.csv", reportCSV)
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("export upload failed: %w", err)
	}

	log.Info().Str("prefix", prefix).
		Int("recommendations", len(recs)).
		Int("reports", len(reports)).
		Msg("snapshot exported")
	return prefix, nil
}

// RecommendationsCSV renders one row per suggested transfer. Explanation
// reasons are joined with "; " so the file stays one line per transfer.
func RecommendationsCSV(recs []domain.TransferRecommendation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"transfer_id", "product", "source_store", "target_store", "amount", "score", "summary", "reasons"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.TransferID,
			rec.Product,
			rec.Source.Name,
			rec.Target.Name,
			strconv.Itoa(rec.Amount),
			strconv.Itoa(rec.Explanation.Score),
			rec.Explanation.Summary,
			strings.Join(rec.Explanation.Reasons, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RiskReportsCSV renders one row per store with its classification.
func RiskReportsCSV(reports []domain.StoreRiskReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"store_id", "store_name", "store_type", "stock", "safety_stock", "status", "color"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, report := range reports {
		row := []string{
			strconv.FormatInt(report.StoreID, 10),
			report.Name,
			string(report.Type),
			strconv.Itoa(report.TotalStock),
			strconv.Itoa(report.TotalSafetyStock),
			string(report.Status),
			report.Color,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
