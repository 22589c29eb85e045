package export

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/storage"
)

type mockObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMockObjectStorage() *mockObjectStorage {
	return &mockObjectStorage{objects: make(map[string][]byte)}
}

func (m *mockObjectStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (m *mockObjectStorage) DownloadObject(ctx context.Context, key, destPath string) error {
	return nil
}

func (m *mockObjectStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func TestExportSnapshot(t *testing.T) {
	store := newMockObjectStorage()
	exporter := NewExporter(store)
	exporter.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}

	recs := []domain.TransferRecommendation{
		{
			TransferID: "TRF-100",
			Source:     domain.StoreRef{ID: 2, Name: "Anadolu Hub", Type: domain.StoreTypeHub},
			Target:     domain.StoreRef{ID: 1, Name: "Kadikoy", Type: domain.StoreTypeStore},
			ProductID:  7,
			Product:    "Espresso Beans",
			Amount:     8,
			Explanation: domain.Explanation{
				Summary: "Anadolu Hub → Kadikoy",
				Reasons: []string{"critical stock", "hub serves store"},
				Score:   80,
			},
		},
	}
	reports := []domain.StoreRiskReport{
		{StoreID: 1, Name: "Kadikoy", Type: domain.StoreTypeStore, TotalStock: 2, TotalSafetyStock: 10, Status: domain.RiskHigh, Color: "red"},
	}

	prefix, err := exporter.ExportSnapshot(context.Background(), recs, reports)
	if err != nil {
		t.Fatalf("ExportSnapshot() error: %v", err)
	}
	if prefix != "exports/2026-03-14T09-30-00" {
		t.Errorf("prefix = %q", prefix)
	}
	if len(store.objects) != 2 {
		t.Fatalf("uploaded %d objects, want 2", len(store.objects))
	}

	recsCSV := string(store.objects[prefix+"/transfer_recommendations.csv"])
	if !strings.Contains(recsCSV, "TRF-100") || !strings.Contains(recsCSV, "critical stock; hub serves store") {
		t.Errorf("recommendations csv missing expected content:\n%s", recsCSV)
	}

	reportCSV := string(store.objects[prefix+"/risk_reports.csv"])
	if !strings.Contains(reportCSV, "Kadikoy,STORE,2,10,HIGH_RISK,red") {
		t.Errorf("risk csv missing expected row:\n%s", reportCSV)
	}
}

func TestRecommendationsCSV_EmptyHasHeaderOnly(t *testing.T) {
	data, err := RecommendationsCSV(nil)
	if err != nil {
		t.Fatalf("RecommendationsCSV() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Errorf("got %d lines, want header only", len(lines))
	}
}
