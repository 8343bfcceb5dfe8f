package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
)

// reportingService implements the cross-store rollup.
type reportingService struct {
	BaseService
	closingRepo    portsrepo.ClosingReader
	receivableRepo portsrepo.ReceivableReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(closingRepo portsrepo.ClosingReader, receivableRepo portsrepo.ReceivableReader) portssvc.ReportingService {
	return &reportingService{
		closingRepo:    closingRepo,
		receivableRepo: receivableRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// DashboardStats aggregates the matching closings into per-store and overall
// statistics. The pending-receivable figures are live queries: re-running a
// past-date report later reflects settlements made in the meantime.
func (s *reportingService) DashboardStats(ctx context.Context, actor domain.Actor, from, to *time.Time, storeID string) (*domain.DashboardStats, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("%w: dashboard requires an administrative actor", apperrors.ErrForbidden)
	}

	closings, err := s.closingRepo.FindClosings(ctx, portsrepo.ClosingListFilter{
		StoreID:  storeID,
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load closings for dashboard")
		return nil, err
	}

	pendingByStore, err := s.receivableRepo.SumPendingByStore(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pending receivable totals")
		return nil, err
	}

	stats := AggregateClosings(closings, pendingByStore)
	s.LogDebug(ctx, "Dashboard aggregated",
		slog.Int("closing_count", stats.Overall.ClosingCount),
		slog.Int("store_count", len(stats.Stores)))
	return stats, nil
}

// AggregateClosings folds a closing collection into immutable per-store and
// overall statistics. It is pure: no queries, no shared state.
//
// The net reconciliation value differs by store kind: an ordinary store nets
// its gross entries against its store-level exits and its current pending
// receivables; the administrative cash box simply accumulates its own cash
// reconciliation values, with no receivable adjustment.
func AggregateClosings(closings []domain.Closing, pendingByStore map[string]decimal.Decimal) *domain.DashboardStats {
	byStore := make(map[string]*domain.StoreStats)
	for _, c := range closings {
		st, ok := byStore[c.StoreID]
		if !ok {
			// Unknown store ids get their own ad hoc bucket instead of
			// being dropped.
			st = &domain.StoreStats{
				StoreID:   c.StoreID,
				StoreName: domain.StoreName(c.StoreID),
			}
			byStore[c.StoreID] = st
		}
		st.ClosingCount++
		st.Totals = addTotals(st.Totals, c.Totals)
	}

	stats := &domain.DashboardStats{}
	for _, storeID := range storeIDsInOrder(byStore) {
		st := byStore[storeID]
		st.PendingReceivables = pendingByStore[storeID]
		if domain.IsAdminStore(storeID) {
			st.NetReconciliationValue = st.Totals.CashReconciliationValue
		} else {
			st.NetReconciliationValue = st.Totals.TotalGrossEntries.
				Sub(st.Totals.TotalStoreOperationalExits).
				Sub(st.PendingReceivables)
		}

		stats.Overall.ClosingCount += st.ClosingCount
		stats.Overall.Totals = addTotals(stats.Overall.Totals, st.Totals)
		stats.Overall.NetReconciliationValue = stats.Overall.NetReconciliationValue.Add(st.NetReconciliationValue)
		stats.Stores = append(stats.Stores, *st)
	}
	return stats
}

// storeIDsInOrder returns the registry stores first, in presentation order,
// followed by any ad hoc buckets sorted by id.
func storeIDsInOrder(byStore map[string]*domain.StoreStats) []string {
	ids := make([]string, 0, len(byStore))
	for _, id := range domain.KnownStoreIDs() {
		if _, ok := byStore[id]; ok {
			ids = append(ids, id)
		}
	}
	var extra []string
	for id := range byStore {
		if !domain.IsKnownStore(id) {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

func addTotals(a, b domain.CalculatedTotals) domain.CalculatedTotals {
	sum := domain.CalculatedTotals{
		TotalCommonEntries:         a.TotalCommonEntries.Add(b.TotalCommonEntries),
		TotalReceivedPayments:      a.TotalReceivedPayments.Add(b.TotalReceivedPayments),
		TotalGrossEntries:          a.TotalGrossEntries.Add(b.TotalGrossEntries),
		TotalElectronicEntries:     a.TotalElectronicEntries.Add(b.TotalElectronicEntries),
		TotalStoreOperationalExits: a.TotalStoreOperationalExits.Add(b.TotalStoreOperationalExits),
		TotalNewReceivables:        a.TotalNewReceivables.Add(b.TotalNewReceivables),
		TotalGeneralExits:          a.TotalGeneralExits.Add(b.TotalGeneralExits),
		PartialResult:              a.PartialResult.Add(b.PartialResult),
		CashReconciliationValue:    a.CashReconciliationValue.Add(b.CashReconciliationValue),
	}
	if a.TotalAdminOperationalExits != nil || b.TotalAdminOperationalExits != nil {
		adminSum := decimal.Zero
		if a.TotalAdminOperationalExits != nil {
			adminSum = adminSum.Add(*a.TotalAdminOperationalExits)
		}
		if b.TotalAdminOperationalExits != nil {
			adminSum = adminSum.Add(*b.TotalAdminOperationalExits)
		}
		sum.TotalAdminOperationalExits = &adminSum
	}
	return sum
}
