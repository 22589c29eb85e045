package risk

import (
	"testing"

	"github.com/retailpulse/backend/internal/domain"
)

func line(qty, safety int) domain.InventoryLine {
	return domain.InventoryLine{Quantity: qty, SafetyStock: safety}
}

func TestClassify_EmptyInventory(t *testing.T) {
	store := domain.Store{ID: 1, Name: "Empty"}
	if got := Classify(store); got != domain.RiskUnknown {
		t.Errorf("Classify(empty) = %s, want UNKNOWN", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.InventoryLine
		want  domain.RiskStatus
	}{
		{
			name: "all healthy",
			lines: []domain.InventoryLine{
				line(10, 10), line(15, 10), line(20, 10),
			},
			want: domain.RiskLow,
		},
		{
			name: "shortage over 20 percent",
			lines: []domain.InventoryLine{
				line(2, 10), line(3, 10), line(15, 10), line(15, 10),
			},
			want: domain.RiskHigh,
		},
		{
			name: "exactly 20 percent shortage is not high risk",
			lines: []domain.InventoryLine{
				line(2, 10), line(15, 10), line(15, 10), line(15, 10), line(15, 10),
			},
			want: domain.RiskLow,
		},
		{
			name: "overstock over 40 percent",
			lines: []domain.InventoryLine{
				line(50, 10), line(40, 10), line(31, 10), line(15, 10), line(15, 10),
			},
			want: domain.RiskOverstock,
		},
		{
			name: "boundary quantity triple safety is not overstock",
			lines: []domain.InventoryLine{
				line(30, 10), line(30, 10), line(30, 10),
			},
			want: domain.RiskLow,
		},
		{
			name: "shortage wins over overstock",
			lines: []domain.InventoryLine{
				line(2, 10), line(50, 10), line(50, 10),
			},
			want: domain.RiskHigh,
		},
		{
			name: "tolerates negative quantity",
			lines: []domain.InventoryLine{
				line(-5, 10), line(15, 10),
			},
			want: domain.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := domain.Store{ID: 1, Name: "Test", Inventory: tt.lines}
			if got := Classify(store); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	stores := []domain.Store{
		{
			ID:        1,
			Name:      "Kadikoy",
			StoreType: domain.StoreTypeStore,
			Inventory: []domain.InventoryLine{line(2, 10), line(3, 10)},
		},
		{
			ID:        2,
			Name:      "Ghost",
			StoreType: domain.StoreTypeStore,
		},
	}

	report := Report(stores)
	if len(report) != 2 {
		t.Fatalf("report length = %d, want 2", len(report))
	}

	first := report[0]
	if first.Status != domain.RiskHigh {
		t.Errorf("first status = %s, want HIGH_RISK", first.Status)
	}
	if first.Color != "red" {
		t.Errorf("first color = %s, want red", first.Color)
	}
	if first.TotalStock != 5 || first.TotalSafetyStock != 20 {
		t.Errorf("totals = (%d, %d), want (5, 20)", first.TotalStock, first.TotalSafetyStock)
	}

	second := report[1]
	if second.Status != domain.RiskUnknown || second.Color != "gray" {
		t.Errorf("empty store = (%s, %s), want (UNKNOWN, gray)", second.Status, second.Color)
	}
}

func TestRiskStatusColor_Unrecognized(t *testing.T) {
	if got := domain.RiskStatus("BOGUS").Color(); got != "gray" {
		t.Errorf("Color() = %s, want gray", got)
	}
}
