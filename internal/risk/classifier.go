// Package risk classifies each store's inventory position into a
// categorical stock risk status for dashboards.
package risk

import "github.com/retailpulse/backend/internal/domain"

const (
	// A store is shortage-heavy once more than 20% of its lines sit below
	// their safety stock.
	shortageFraction = 0.2
	// Overstock needs more than 40% of lines above triple safety stock.
	overstockFraction = 0.4
	overstockFactor   = 3
)

// Classify labels a single store. Shortage takes priority over overstock
// when both thresholds are crossed.
func Classify(store domain.Store) domain.RiskStatus {
	if len(store.Inventory) == 0 {
		return domain.RiskUnknown
	}

	var shortageCount, overstockCount int
	total := len(store.Inventory)

	for _, line := range store.Inventory {
		switch {
		case line.Quantity < line.SafetyStock:
			shortageCount++
		case line.Quantity > line.SafetyStock*overstockFactor:
			overstockCount++
		}
	}

	if float64(shortageCount)/float64(total) > shortageFraction {
		return domain.RiskHigh
	}
	if float64(overstockCount)/float64(total) > overstockFraction {
		return domain.RiskOverstock
	}
	return domain.RiskLow
}

// Report classifies every store and sums its stock position for the
// chain-wide dashboard.
func Report(stores []domain.Store) []domain.StoreRiskReport {
	report := make([]domain.StoreRiskReport, 0, len(stores))
	for _, store := range stores {
		status := Classify(store)

		var totalStock, totalSafety int
		for _, line := range store.Inventory {
			totalStock += line.Quantity
			totalSafety += line.SafetyStock
		}

		report = append(report, domain.StoreRiskReport{
			StoreID:          store.ID,
			Name:             store.Name,
			Type:             store.StoreType,
			TotalStock:       totalStock,
			TotalSafetyStock: totalSafety,
			Status:           status,
			Color:            status.Color(),
		})
	}
	return report
}
