package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// ReceivableListFilter narrows the administrative receivable listing.
// An empty Status means all statuses.
type ReceivableListFilter struct {
	StoreID string
	Status  domain.ReceivableStatus
}

// ReceivableStatusUpdate carries the fields stamped alongside a status
// transition. Only the pointers relevant to the transition are set.
type ReceivableStatusUpdate struct {
	PaymentClosingID     *string
	EffectivePaymentDate *time.Time
	WriteoffDate         *time.Time
	WrittenOffBy         *string
	UpdatedBy            string
	UpdatedAt            time.Time
}

// ReceivableReader defines read operations for receivable data
type ReceivableReader interface {
	// FindReceivableByID retrieves a specific receivable by its unique identifier.
	FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// ListReceivables retrieves receivables matching the filter, newest debit date first.
	ListReceivables(ctx context.Context, filter ReceivableListFilter) ([]domain.Receivable, error)

	// ListPendingByStore retrieves a store's currently pending receivables.
	ListPendingByStore(ctx context.Context, storeID string) ([]domain.Receivable, error)

	// SumPendingByStore returns the outstanding pending total per store id.
	SumPendingByStore(ctx context.Context) (map[string]decimal.Decimal, error)

	// FindReceivablesByOriginClosing retrieves the receivables a closing created.
	FindReceivablesByOriginClosing(ctx context.Context, closingID string) ([]domain.Receivable, error)

	// FindPaymentsByClosingID retrieves the settlement records a closing made.
	FindPaymentsByClosingID(ctx context.Context, closingID string) ([]domain.ReceivedPayment, error)
}

// ReceivableWriter defines write operations for receivable data
type ReceivableWriter interface {
	// SaveReceivables persists a batch of new receivables.
	SaveReceivables(ctx context.Context, receivables []domain.Receivable) error

	// InsertReceivedPayments persists a batch of settlement records.
	InsertReceivedPayments(ctx context.Context, payments []domain.ReceivedPayment) error

	// UpdateReceivableStatus transitions a receivable from one status to
	// another as a single conditional update: the write applies only if the
	// row still holds fromStatus, so two racing transitions can never both
	// succeed. A non-matching current status surfaces as an error.
	UpdateReceivableStatus(ctx context.Context, receivableID string, fromStatus, toStatus domain.ReceivableStatus, fields ReceivableStatusUpdate) error
}

// ReceivableRepositoryFacade combines all receivable-related repository interfaces
// This is a facade for clients that need access to all operations
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}
