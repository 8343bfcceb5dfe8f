package dto

import (
	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// DashboardParams defines query parameters for the cross-store dashboard.
type DashboardParams struct {
	FromDate string `form:"fromDate" binding:"omitempty,brdate"`
	ToDate   string `form:"toDate" binding:"omitempty,brdate"`
	StoreID  string `form:"storeID"`
}

// StoreStatsResponse represents one store's rollup in the dashboard response.
type StoreStatsResponse struct {
	StoreID                string               `json:"storeID"`
	StoreName              string               `json:"storeName"`
	ClosingCount           int                  `json:"closingCount"`
	Totals                 CalculatedTotalsData `json:"totals"`
	PendingReceivables     decimal.Decimal      `json:"pendingReceivables"`
	NetReconciliationValue decimal.Decimal      `json:"netReconciliationValue"`
}

// OverallStatsResponse represents the cross-store sum. Pending receivables
// are intentionally absent here.
type OverallStatsResponse struct {
	ClosingCount           int                  `json:"closingCount"`
	Totals                 CalculatedTotalsData `json:"totals"`
	NetReconciliationValue decimal.Decimal      `json:"netReconciliationValue"`
}

// DashboardResponse represents the dashboard report response.
type DashboardResponse struct {
	FromDate string               `json:"fromDate,omitempty"`
	ToDate   string               `json:"toDate,omitempty"`
	Stores   []StoreStatsResponse `json:"stores"`
	Overall  OverallStatsResponse `json:"overall"`
}

// ToDashboardResponse converts domain dashboard stats to a DTO response.
func ToDashboardResponse(stats *domain.DashboardStats, fromDate, toDate string) DashboardResponse {
	response := DashboardResponse{
		FromDate: fromDate,
		ToDate:   toDate,
		Stores:   make([]StoreStatsResponse, len(stats.Stores)),
	}
	for i, s := range stats.Stores {
		response.Stores[i] = StoreStatsResponse{
			StoreID:                s.StoreID,
			StoreName:              s.StoreName,
			ClosingCount:           s.ClosingCount,
			Totals:                 ToCalculatedTotalsData(s.Totals),
			PendingReceivables:     s.PendingReceivables,
			NetReconciliationValue: s.NetReconciliationValue,
		}
	}
	response.Overall = OverallStatsResponse{
		ClosingCount:           stats.Overall.ClosingCount,
		Totals:                 ToCalculatedTotalsData(stats.Overall.Totals),
		NetReconciliationValue: stats.Overall.NetReconciliationValue,
	}
	return response
}
