package services

import (
	"context"
	"time"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// ReportingService defines operations for the cross-store rollup views
type ReportingService interface {
	// DashboardStats aggregates closings in the date range into per-store and
	// overall statistics, including each store's live pending-receivable
	// total and its net reconciliation value. Administrative actors only.
	DashboardStats(ctx context.Context, actor domain.Actor, from, to *time.Time, storeID string) (*domain.DashboardStats, error)
}
