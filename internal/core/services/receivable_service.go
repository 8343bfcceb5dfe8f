package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/dto"
)

var (
	ErrInvalidStateTransition   = errors.New("receivable is not in the required state for this transition")
	ErrAmountExceedsOutstanding = errors.New("amount received exceeds the receivable's outstanding amount")
	ErrDuplicateSettlement      = errors.New("receivable selected for payment more than once in the same submission")
	ErrClientNameMissing        = errors.New("receivable client name is required")
	ErrReferenceMissing         = errors.New("receivable reference is required")
	ErrAmountNotPositive        = errors.New("receivable amount must be positive")
)

// receivableService drives the receivable lifecycle. Transitions only move
// forward, and both transitions rely on the repository's conditional status
// update so concurrent attempts can never both succeed.
type receivableService struct {
	BaseService
	receivableRepo portsrepo.ReceivableRepositoryFacade
}

// NewReceivableService creates a new ReceivableService.
func NewReceivableService(receivableRepo portsrepo.ReceivableRepositoryFacade) portssvc.ReceivableSvcFacade {
	return &receivableService{
		receivableRepo: receivableRepo,
	}
}

// Ensure receivableService implements the portssvc.ReceivableSvcFacade interface
var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// CreateReceivables validates and persists new receivables in the pending state.
// Implements portssvc.ReceivableLifecycleSvc
func (s *receivableService) CreateReceivables(ctx context.Context, actor domain.Actor, receivables []domain.Receivable) error {
	if len(receivables) == 0 {
		return nil
	}
	for i := range receivables {
		r := &receivables[i]
		if !actor.CanAccessStore(r.StoreID) {
			return fmt.Errorf("%w: cannot create receivables for store %s", apperrors.ErrForbidden, r.StoreID)
		}
		if !r.Amount.IsPositive() {
			return fmt.Errorf("%w: client %q", ErrAmountNotPositive, r.ClientName)
		}
		if r.ClientName == "" {
			return ErrClientNameMissing
		}
		if r.Reference == "" {
			return fmt.Errorf("%w: client %q", ErrReferenceMissing, r.ClientName)
		}
		r.Status = domain.ReceivablePending
	}

	if err := s.receivableRepo.SaveReceivables(ctx, receivables); err != nil {
		s.LogError(ctx, err, "Failed to save receivables", slog.Int("count", len(receivables)))
		return err
	}
	s.LogInfo(ctx, "Receivables created", slog.Int("count", len(receivables)))
	return nil
}

// SettleReceivable moves a pending receivable to paid_pending_writeoff.
// Implements portssvc.ReceivableLifecycleSvc
func (s *receivableService) SettleReceivable(ctx context.Context, actor domain.Actor, receivableID string, payingClosingID string, payingDate time.Time, amountReceived decimal.Decimal) error {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find receivable for settlement", slog.String("receivable_id", receivableID))
		return err
	}
	if !actor.CanAccessStore(receivable.StoreID) {
		return fmt.Errorf("%w: cannot settle receivables of store %s", apperrors.ErrForbidden, receivable.StoreID)
	}
	if !amountReceived.IsPositive() {
		return fmt.Errorf("%w: amount received must be positive", apperrors.ErrValidation)
	}
	if receivable.Status != domain.ReceivablePending {
		return fmt.Errorf("%w: receivable %s is %s, expected %s",
			ErrInvalidStateTransition, receivableID, receivable.Status, domain.ReceivablePending)
	}
	if amountReceived.GreaterThan(receivable.Amount) {
		return fmt.Errorf("%w: received %s, outstanding %s",
			ErrAmountExceedsOutstanding, amountReceived.String(), receivable.Amount.String())
	}

	now := time.Now().UTC()
	err = s.receivableRepo.UpdateReceivableStatus(ctx, receivableID,
		domain.ReceivablePending, domain.ReceivablePaidPendingWriteoff,
		portsrepo.ReceivableStatusUpdate{
			PaymentClosingID:     &payingClosingID,
			EffectivePaymentDate: &payingDate,
			UpdatedBy:            actor.UserID,
			UpdatedAt:            now,
		})
	if err != nil {
		// A conditional-update miss means another settlement won the race.
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: receivable %s is no longer pending", ErrInvalidStateTransition, receivableID)
		}
		s.LogError(ctx, err, "Failed to settle receivable", slog.String("receivable_id", receivableID))
		return err
	}

	s.LogInfo(ctx, "Receivable settled",
		slog.String("receivable_id", receivableID),
		slog.String("paying_closing_id", payingClosingID),
		slog.String("amount_received", amountReceived.String()))
	return nil
}

// WriteOffReceivable moves a paid_pending_writeoff receivable to written_off.
// Implements portssvc.ReceivableLifecycleSvc
func (s *receivableService) WriteOffReceivable(ctx context.Context, actor domain.Actor, receivableID string) (*domain.Receivable, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("%w: write-off requires an administrative actor", apperrors.ErrForbidden)
	}

	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find receivable for write-off", slog.String("receivable_id", receivableID))
		return nil, err
	}
	if receivable.Status != domain.ReceivablePaidPendingWriteoff {
		return nil, fmt.Errorf("%w: receivable %s is %s, expected %s",
			ErrInvalidStateTransition, receivableID, receivable.Status, domain.ReceivablePaidPendingWriteoff)
	}

	now := time.Now().UTC()
	err = s.receivableRepo.UpdateReceivableStatus(ctx, receivableID,
		domain.ReceivablePaidPendingWriteoff, domain.ReceivableWrittenOff,
		portsrepo.ReceivableStatusUpdate{
			WriteoffDate: &now,
			WrittenOffBy: &actor.UserID,
			UpdatedBy:    actor.UserID,
			UpdatedAt:    now,
		})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: receivable %s is no longer %s",
				ErrInvalidStateTransition, receivableID, domain.ReceivablePaidPendingWriteoff)
		}
		s.LogError(ctx, err, "Failed to write off receivable", slog.String("receivable_id", receivableID))
		return nil, err
	}

	receivable.Status = domain.ReceivableWrittenOff
	receivable.WriteoffDate = &now
	receivable.WrittenOffBy = &actor.UserID
	receivable.LastUpdatedAt = now
	receivable.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Receivable written off",
		slog.String("receivable_id", receivableID),
		slog.String("written_off_by", actor.UserID))
	return receivable, nil
}

// ListReceivables retrieves receivables for the administrative screen.
// Implements portssvc.ReceivableReaderSvc
func (s *receivableService) ListReceivables(ctx context.Context, actor domain.Actor, params dto.ListReceivablesParams) (*dto.ListReceivablesResponse, error) {
	filter := portsrepo.ReceivableListFilter{StoreID: params.StoreID}
	if !actor.IsAdmin {
		// Operators only see their own store regardless of the filter.
		filter.StoreID = actor.StoreID
	}
	if params.Status != "" && params.Status != "all" {
		filter.Status = domain.ReceivableStatus(params.Status)
	}

	receivables, err := s.receivableRepo.ListReceivables(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receivables")
		return nil, err
	}
	return &dto.ListReceivablesResponse{
		Receivables: dto.ToReceivableResponses(receivables),
	}, nil
}

// ListPendingForStore retrieves a store's currently pending receivables.
// Implements portssvc.ReceivableReaderSvc
func (s *receivableService) ListPendingForStore(ctx context.Context, actor domain.Actor, storeID string) (*dto.PendingReceivablesResponse, error) {
	if !actor.CanAccessStore(storeID) {
		return nil, fmt.Errorf("%w: cannot view receivables of store %s", apperrors.ErrForbidden, storeID)
	}

	receivables, err := s.receivableRepo.ListPendingByStore(ctx, storeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending receivables", slog.String("store_id", storeID))
		return nil, err
	}

	total := decimal.Zero
	for _, r := range receivables {
		total = total.Add(r.Amount)
	}
	return &dto.PendingReceivablesResponse{
		Receivables: dto.ToReceivableResponses(receivables),
		Total:       total,
	}, nil
}
