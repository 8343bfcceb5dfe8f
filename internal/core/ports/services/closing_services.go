package services

import (
	"context"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	"github.com/topvistorias/cash_closing_app/internal/dto"
)

// ClosingReaderSvc defines read operations for closing data
type ClosingReaderSvc interface {
	// GetClosing retrieves a closing together with its child rows.
	GetClosing(ctx context.Context, actor domain.Actor, closingID string) (*dto.ClosingDetailResponse, error)

	// ListClosings retrieves a paginated list of closings.
	ListClosings(ctx context.Context, actor domain.Actor, params dto.ListClosingsParams) (*dto.ListClosingsResponse, error)
}

// ClosingWriterSvc defines write operations for closing data
type ClosingWriterSvc interface {
	// CreateClosing persists a new closing and its children. The closing row
	// is written first and is fatal on failure; the remaining sub-steps are
	// best effort, and the result names any that failed.
	CreateClosing(ctx context.Context, actor domain.Actor, req dto.CreateClosingRequest) (*dto.ClosingSyncResult, error)

	// UpdateClosing rewrites a closing's mutable fields, recomputed totals,
	// and child exit collections. Same partial-failure reporting as create.
	UpdateClosing(ctx context.Context, actor domain.Actor, closingID string, req dto.UpdateClosingRequest) (*dto.ClosingSyncResult, error)
}

// ClosingSvcFacade combines all closing-related service interfaces
// This is a facade for clients that need access to all operations
type ClosingSvcFacade interface {
	ClosingReaderSvc
	ClosingWriterSvc
}
