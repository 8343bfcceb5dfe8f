package domain

import (
	"github.com/shopspring/decimal"
)

// StoreStats holds the running sums of every calculated-totals field across a
// store's closings, the store's present pending-receivable total (a live
// figure, not a historical snapshot), and the derived net reconciliation value.
type StoreStats struct {
	StoreID                string           `json:"storeID"`
	StoreName              string           `json:"storeName"`
	ClosingCount           int              `json:"closingCount"`
	Totals                 CalculatedTotals `json:"totals"`
	PendingReceivables     decimal.Decimal  `json:"pendingReceivables"`
	NetReconciliationValue decimal.Decimal  `json:"netReconciliationValue"`
}

// OverallStats is the element-wise sum of all per-store stats. Pending
// receivables are excluded: no meaningful cross-store sum is defined.
type OverallStats struct {
	ClosingCount           int              `json:"closingCount"`
	Totals                 CalculatedTotals `json:"totals"`
	NetReconciliationValue decimal.Decimal  `json:"netReconciliationValue"`
}

// DashboardStats is the administrative cross-store rollup for a date range.
type DashboardStats struct {
	Stores  []StoreStats `json:"stores"`
	Overall OverallStats `json:"overall"`
}
