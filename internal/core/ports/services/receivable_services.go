package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	"github.com/topvistorias/cash_closing_app/internal/dto"
)

// ReceivableReaderSvc defines read operations for receivable data
type ReceivableReaderSvc interface {
	// ListReceivables retrieves receivables for the administrative screen,
	// optionally filtered by store and status.
	ListReceivables(ctx context.Context, actor domain.Actor, params dto.ListReceivablesParams) (*dto.ListReceivablesResponse, error)

	// ListPendingForStore retrieves a store's currently pending receivables
	// and their outstanding total, for the closing form.
	ListPendingForStore(ctx context.Context, actor domain.Actor, storeID string) (*dto.PendingReceivablesResponse, error)
}

// ReceivableLifecycleSvc defines the receivable state transitions.
// Transitions only move forward: pending → paid_pending_writeoff → written_off.
type ReceivableLifecycleSvc interface {
	// CreateReceivables persists new receivables in the pending state.
	// Amounts must be positive and client name and reference non-empty.
	CreateReceivables(ctx context.Context, actor domain.Actor, receivables []domain.Receivable) error

	// SettleReceivable moves a pending receivable to paid_pending_writeoff,
	// stamping the paying closing and its date. The amount received must not
	// exceed the outstanding amount.
	SettleReceivable(ctx context.Context, actor domain.Actor, receivableID string, payingClosingID string, payingDate time.Time, amountReceived decimal.Decimal) error

	// WriteOffReceivable moves a paid_pending_writeoff receivable to
	// written_off, stamping the writeoff date and acting user. Administrative
	// actors only; any other prior state is an invalid transition.
	WriteOffReceivable(ctx context.Context, actor domain.Actor, receivableID string) (*domain.Receivable, error)
}

// ReceivableSvcFacade combines all receivable-related service interfaces
// This is a facade for clients that need access to all operations
type ReceivableSvcFacade interface {
	ReceivableReaderSvc
	ReceivableLifecycleSvc
}
