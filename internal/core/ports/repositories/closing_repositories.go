package repositories

import (
	"context"
	"time"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// ClosingListFilter narrows a closing listing by store and date range.
// Nil dates leave that bound open.
type ClosingListFilter struct {
	StoreID  string
	FromDate *time.Time
	ToDate   *time.Time
}

// ClosingReader defines read operations for closing data
type ClosingReader interface {
	// FindClosingByID retrieves a specific closing by its unique identifier.
	FindClosingByID(ctx context.Context, closingID string) (*domain.Closing, error)

	// ListClosings retrieves a paginated list of closings using token-based pagination,
	// newest closing date first. It returns the closings, a token for the next page, and an error.
	ListClosings(ctx context.Context, filter ClosingListFilter, limit int, nextToken *string) ([]domain.Closing, *string, error)

	// FindClosings retrieves every closing matching the filter, without
	// pagination. Used by the cross-store rollup.
	FindClosings(ctx context.Context, filter ClosingListFilter) ([]domain.Closing, error)

	// FindExitsByClosingID retrieves all operational exit rows owned by a closing.
	FindExitsByClosingID(ctx context.Context, closingID string) ([]domain.OperationalExit, error)
}

// ClosingWriter defines write operations for closing data
type ClosingWriter interface {
	// SaveClosing persists a new closing row.
	SaveClosing(ctx context.Context, closing domain.Closing) error

	// UpdateClosing rewrites a closing's mutable fields and its recomputed totals.
	UpdateClosing(ctx context.Context, closing domain.Closing) error

	// InsertExits persists a batch of operational exit rows.
	InsertExits(ctx context.Context, exits []domain.OperationalExit) error

	// ReplaceExits swaps the full exit set of one scope for a closing:
	// delete all existing rows, then insert the new set, inside one DB
	// transaction so no mixed old/new state is ever visible.
	ReplaceExits(ctx context.Context, closingID string, scope domain.ExitScope, exits []domain.OperationalExit) error
}

// ClosingRepositoryFacade combines all closing-related repository interfaces
// This is a facade for clients that need access to all operations
type ClosingRepositoryFacade interface {
	ClosingReader
	ClosingWriter
}

// ClosingRepositoryWithTx extends ClosingRepositoryFacade with transaction capabilities
type ClosingRepositoryWithTx interface {
	ClosingRepositoryFacade
	TransactionManager
}
