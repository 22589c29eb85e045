package domain

// RiskStatus is the stock risk label computed per store.
type RiskStatus string

const (
	RiskHigh      RiskStatus = "HIGH_RISK"
	RiskOverstock RiskStatus = "OVERSTOCK"
	RiskLow       RiskStatus = "LOW_RISK"
	RiskUnknown   RiskStatus = "UNKNOWN" // store has no inventory rows

	// RiskMedium has no producing rule today. The dashboard color map keeps
	// a slot for it so an intermediate tier can be added without a frontend
	// change.
	RiskMedium RiskStatus = "MEDIUM_RISK"
)

var riskColors = map[RiskStatus]string{
	RiskHigh:      "red",
	RiskMedium:    "orange",
	RiskOverstock: "yellow",
	RiskLow:       "green",
	RiskUnknown:   "gray",
}

// Color returns the dashboard color for a risk status, gray for anything
// unrecognized.
func (s RiskStatus) Color() string {
	if c, ok := riskColors[s]; ok {
		return c
	}
	return "gray"
}

// StoreRiskReport is one row of the chain-wide risk report.
type StoreRiskReport struct {
	StoreID          int64      `json:"store_id"`
	Name             string     `json:"name"`
	Type             StoreType  `json:"type"`
	TotalStock       int        `json:"stock"`
	TotalSafetyStock int        `json:"safety_stock"`
	Status           RiskStatus `json:"status"`
	Color            string     `json:"color"`
}
