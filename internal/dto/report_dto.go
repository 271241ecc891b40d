package dto

import "github.com/shopspring/decimal"

type CategoryCount struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Assets       int64           `json:"assets"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

// SummaryResponse is returned by GET /v1/reports/summary.
type SummaryResponse struct {
	TotalAssets          int64            `json:"total_assets"`
	ByStatus             map[string]int64 `json:"by_status"`
	ByCategory           []CategoryCount  `json:"by_category"`
	TotalAcquisitionCost decimal.Decimal  `json:"total_acquisition_cost"`
	ActiveAssignments    int64            `json:"active_assignments"`
	OpenMaintenance      int64            `json:"open_maintenance"`
	OpenIncidents        int64            `json:"open_incidents"`
}
