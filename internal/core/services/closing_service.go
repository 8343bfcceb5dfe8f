package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/dto"
	"github.com/topvistorias/cash_closing_app/internal/utils"
	"github.com/topvistorias/cash_closing_app/internal/utils/accounting"
)

var (
	ErrUnknownStore         = errors.New("unknown store identifier")
	ErrUnknownEntryKind     = errors.New("unknown entry kind")
	ErrOperatorNameMissing  = errors.New("operator name is required for this store")
	ErrInvalidClosingDate   = errors.New("closing date must be a valid DD/MM/YYYY date")
	ErrAdminExitsNotAllowed = errors.New("administrative exits are only allowed for the administrative cash box")
)

// Sub-step names reported on partial failure. External consumers key off
// these to tell the operator which parts need verification.
const (
	stepStoreExits       = "store_exits"
	stepAdminExits       = "admin_exits"
	stepNewReceivables   = "new_receivables"
	stepReceivedPayments = "received_payments"
	stepSettlements      = "settlements"
)

// closingService persists closings with best-effort, non-transactional
// semantics: the closing row is written first and never rolled back; every
// later sub-step runs regardless of prior sub-step outcomes, and all failures
// are aggregated into one report for a human to reconcile.
type closingService struct {
	BaseService
	closingRepo    portsrepo.ClosingRepositoryFacade
	receivableRepo portsrepo.ReceivableRepositoryFacade
	receivableSvc  portssvc.ReceivableLifecycleSvc
}

// NewClosingService creates a new ClosingService.
func NewClosingService(closingRepo portsrepo.ClosingRepositoryFacade, receivableRepo portsrepo.ReceivableRepositoryFacade, receivableSvc portssvc.ReceivableLifecycleSvc) portssvc.ClosingSvcFacade {
	return &closingService{
		closingRepo:    closingRepo,
		receivableRepo: receivableRepo,
		receivableSvc:  receivableSvc,
	}
}

// Ensure closingService implements the portssvc.ClosingSvcFacade interface
var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// parseCommonEntries validates the raw entry map against the closed entry
// kind enumeration. An unknown key is a validation error, not a silent no-op.
func parseCommonEntries(raw map[string]string) (map[domain.EntryKind]int64, error) {
	entries := make(map[domain.EntryKind]int64, len(raw))
	for key, qty := range raw {
		kind, ok := domain.ParseEntryKind(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntryKind, key)
		}
		entries[kind] = utils.ParseQuantity(qty)
	}
	return entries, nil
}

func parseElectronicEntries(raw dto.ElectronicEntriesRequest) domain.ElectronicEntries {
	return domain.ElectronicEntries{
		Pix:     utils.ParseAmount(raw.Pix),
		Card:    utils.ParseAmount(raw.Card),
		Deposit: utils.ParseAmount(raw.Deposit),
	}
}

func buildExits(closingID string, scope domain.ExitScope, reqs []dto.OperationalExitRequest) []domain.OperationalExit {
	exits := make([]domain.OperationalExit, 0, len(reqs))
	for _, r := range reqs {
		paymentDate, ok := utils.ParseDateBR(r.PaymentDate)
		if !ok {
			continue
		}
		exits = append(exits, domain.OperationalExit{
			ExitID:      uuid.NewString(),
			ClosingID:   closingID,
			Scope:       scope,
			Name:        r.Name,
			Amount:      utils.ParseAmount(r.Amount),
			PaymentDate: paymentDate,
		})
	}
	return exits
}

func (s *closingService) validateStoreFields(storeID, operatorName string, adminExitCount int) error {
	if !domain.IsKnownStore(storeID) {
		return fmt.Errorf("%w: %q", ErrUnknownStore, storeID)
	}
	if domain.OperatorNameRequired(storeID) && operatorName == "" {
		return fmt.Errorf("%w: store %s", ErrOperatorNameMissing, storeID)
	}
	if adminExitCount > 0 && !domain.IsAdminStore(storeID) {
		return fmt.Errorf("%w: store %s", ErrAdminExitsNotAllowed, storeID)
	}
	return nil
}

// CreateClosing validates, computes totals, and persists a day's closing.
// Implements portssvc.ClosingWriterSvc
func (s *closingService) CreateClosing(ctx context.Context, actor domain.Actor, req dto.CreateClosingRequest) (*dto.ClosingSyncResult, error) {
	if !actor.CanAccessStore(req.StoreID) {
		return nil, fmt.Errorf("%w: cannot close store %s", apperrors.ErrForbidden, req.StoreID)
	}
	if err := s.validateStoreFields(req.StoreID, req.OperatorName, len(req.AdminExits)); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	closingDate, ok := utils.ParseDateBR(req.ClosingDate)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidClosingDate.Error())
	}
	commonEntries, err := parseCommonEntries(req.CommonEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Duplicate settlements are rejected before any write.
	seen := make(map[string]bool, len(req.ReceivedPayments))
	for _, p := range req.ReceivedPayments {
		if seen[p.ReceivableID] {
			return nil, fmt.Errorf("%w: receivable %s", ErrDuplicateSettlement, p.ReceivableID)
		}
		seen[p.ReceivableID] = true
	}

	now := time.Now().UTC()
	closingID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	storeExits := buildExits(closingID, domain.ExitScopeStore, req.StoreExits)
	var adminExits []domain.OperationalExit
	if domain.IsAdminStore(req.StoreID) {
		adminExits = buildExits(closingID, domain.ExitScopeAdmin, req.AdminExits)
	}

	newReceivables := make([]domain.Receivable, 0, len(req.NewReceivables))
	for _, r := range req.NewReceivables {
		debitDate, ok := utils.ParseDateBR(r.DebitDate)
		if !ok {
			debitDate = closingDate
		}
		newReceivables = append(newReceivables, domain.Receivable{
			ReceivableID:    uuid.NewString(),
			StoreID:         req.StoreID,
			ClientName:      r.ClientName,
			Reference:       r.Reference,
			Amount:          utils.ParseAmount(r.Amount),
			DebitDate:       debitDate,
			Status:          domain.ReceivablePending,
			OriginClosingID: closingID,
			AuditFields:     audit,
		})
	}

	payments := make([]domain.ReceivedPayment, 0, len(req.ReceivedPayments))
	for _, p := range req.ReceivedPayments {
		payments = append(payments, domain.ReceivedPayment{
			PaymentID:      uuid.NewString(),
			ClosingID:      closingID,
			ReceivableID:   p.ReceivableID,
			AmountReceived: utils.ParseAmount(p.AmountReceived),
			AuditFields:    audit,
		})
	}

	totals := accounting.CalculateTotals(accounting.TotalsInput{
		StoreID:           req.StoreID,
		CommonEntries:     commonEntries,
		ElectronicEntries: parseElectronicEntries(req.ElectronicEntries),
		StoreExits:        storeExits,
		AdminExits:        adminExits,
		NewReceivables:    newReceivables,
		ReceivedPayments:  payments,
	})

	closing := domain.Closing{
		ClosingID:         closingID,
		ClosingDate:       closingDate,
		StoreID:           req.StoreID,
		OperatorName:      req.OperatorName,
		CommonEntries:     commonEntries,
		ElectronicEntries: parseElectronicEntries(req.ElectronicEntries),
		Totals:            totals,
		AuditFields:       audit,
	}

	// The closing row comes first and is fatal: nothing else is attempted if
	// it fails.
	if err := s.closingRepo.SaveClosing(ctx, closing); err != nil {
		s.LogError(ctx, err, "Failed to save closing row", slog.String("store_id", req.StoreID))
		return nil, err
	}

	var failedSteps []string

	if len(storeExits) > 0 {
		if err := s.closingRepo.InsertExits(ctx, storeExits); err != nil {
			s.LogError(ctx, err, "Failed closing sub-step", slog.String("step", stepStoreExits), slog.String("closing_id", closingID))
			failedSteps = append(failedSteps, stepStoreExits)
		}
	}
	if len(adminExits) > 0 {
		if err := s.closingRepo.InsertExits(ctx, adminExits); err != nil {
			s.LogError(ctx, err, "Failed closing sub-step", slog.String("step", stepAdminExits), slog.String("closing_id", closingID))
			failedSteps = append(failedSteps, stepAdminExits)
		}
	}
	if len(newReceivables) > 0 {
		if err := s.receivableSvc.CreateReceivables(ctx, actor, newReceivables); err != nil {
			s.LogError(ctx, err, "Failed closing sub-step", slog.String("step", stepNewReceivables), slog.String("closing_id", closingID))
			failedSteps = append(failedSteps, stepNewReceivables)
		}
	}
	if len(payments) > 0 {
		if err := s.receivableRepo.InsertReceivedPayments(ctx, payments); err != nil {
			s.LogError(ctx, err, "Failed closing sub-step", slog.String("step", stepReceivedPayments), slog.String("closing_id", closingID))
			failedSteps = append(failedSteps, stepReceivedPayments)
		}
		settlementsFailed := false
		for _, p := range payments {
			if err := s.receivableSvc.SettleReceivable(ctx, actor, p.ReceivableID, closingID, closingDate, p.AmountReceived); err != nil {
				s.LogError(ctx, err, "Failed to settle receivable during closing",
					slog.String("receivable_id", p.ReceivableID), slog.String("closing_id", closingID))
				settlementsFailed = true
			}
		}
		if settlementsFailed {
			failedSteps = append(failedSteps, stepSettlements)
		}
	}

	result := &dto.ClosingSyncResult{ClosingID: closingID, Status: dto.SyncCompleted}
	if len(failedSteps) > 0 {
		result.Status = dto.SyncPartial
		result.FailedSteps = failedSteps
		s.LogInfo(ctx, "Closing partially saved", slog.String("closing_id", closingID), slog.Any("failed_steps", failedSteps))
	} else {
		s.LogInfo(ctx, "Closing saved", slog.String("closing_id", closingID), slog.String("store_id", req.StoreID))
	}
	return result, nil
}

// UpdateClosing rewrites a closing's mutable fields and child exit sets.
// Receivables and payments created by the original submission are left
// untouched; their stored totals feed the recomputation unchanged.
// Implements portssvc.ClosingWriterSvc
func (s *closingService) UpdateClosing(ctx context.Context, actor domain.Actor, closingID string, req dto.UpdateClosingRequest) (*dto.ClosingSyncResult, error) {
	existing, err := s.closingRepo.FindClosingByID(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessStore(existing.StoreID) {
		return nil, fmt.Errorf("%w: cannot edit closings of store %s", apperrors.ErrForbidden, existing.StoreID)
	}
	if err := s.validateStoreFields(existing.StoreID, req.OperatorName, len(req.AdminExits)); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	closingDate, ok := utils.ParseDateBR(req.ClosingDate)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidClosingDate.Error())
	}
	commonEntries, err := parseCommonEntries(req.CommonEntries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// The original receivables and payments are immutable on edit but still
	// part of the totals derivation.
	originReceivables, err := s.receivableRepo.FindReceivablesByOriginClosing(ctx, closingID)
	if err != nil {
		return nil, err
	}
	paymentsMade, err := s.receivableRepo.FindPaymentsByClosingID(ctx, closingID)
	if err != nil {
		return nil, err
	}

	storeExits := buildExits(closingID, domain.ExitScopeStore, req.StoreExits)
	var adminExits []domain.OperationalExit
	if domain.IsAdminStore(existing.StoreID) {
		adminExits = buildExits(closingID, domain.ExitScopeAdmin, req.AdminExits)
	}

	totals := accounting.CalculateTotals(accounting.TotalsInput{
		StoreID:           existing.StoreID,
		CommonEntries:     commonEntries,
		ElectronicEntries: parseElectronicEntries(req.ElectronicEntries),
		StoreExits:        storeExits,
		AdminExits:        adminExits,
		NewReceivables:    originReceivables,
		ReceivedPayments:  paymentsMade,
	})

	updated := *existing
	updated.ClosingDate = closingDate
	updated.OperatorName = req.OperatorName
	updated.CommonEntries = commonEntries
	updated.ElectronicEntries = parseElectronicEntries(req.ElectronicEntries)
	updated.Totals = totals
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = actor.UserID

	// The row update is fatal, like the insert on create.
	if err := s.closingRepo.UpdateClosing(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update closing row", slog.String("closing_id", closingID))
		return nil, err
	}

	// Each child collection is replaced independently: a failure in one does
	// not stop the others, it only lands in the report.
	var failedSteps []string
	if err := s.closingRepo.ReplaceExits(ctx, closingID, domain.ExitScopeStore, storeExits); err != nil {
		s.LogError(ctx, err, "Failed closing sub-step", slog.String("step", stepStoreExits), slog.String("closing_id", closingID))
		failedSteps = append(failedSteps, stepStoreExits)
	}
	if domain.IsAdminStore(existing.StoreID) {
		if err := s.closingRepo.ReplaceExits(ctx, closingID, domain.ExitScopeAdmin, adminExits); err != nil {
			s.LogError(ctx, err, "Failed closing sub-step", slog.String("step", stepAdminExits), slog.String("closing_id", closingID))
			failedSteps = append(failedSteps, stepAdminExits)
		}
	}

	result := &dto.ClosingSyncResult{ClosingID: closingID, Status: dto.SyncCompleted}
	if len(failedSteps) > 0 {
		result.Status = dto.SyncPartial
		result.FailedSteps = failedSteps
		s.LogInfo(ctx, "Closing partially updated", slog.String("closing_id", closingID), slog.Any("failed_steps", failedSteps))
	} else {
		s.LogInfo(ctx, "Closing updated", slog.String("closing_id", closingID))
	}
	return result, nil
}

// GetClosing retrieves a closing joined with its child rows.
// Implements portssvc.ClosingReaderSvc
func (s *closingService) GetClosing(ctx context.Context, actor domain.Actor, closingID string) (*dto.ClosingDetailResponse, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessStore(closing.StoreID) {
		return nil, fmt.Errorf("%w: cannot view closings of store %s", apperrors.ErrForbidden, closing.StoreID)
	}

	exits, err := s.closingRepo.FindExitsByClosingID(ctx, closingID)
	if err != nil {
		return nil, err
	}
	receivables, err := s.receivableRepo.FindReceivablesByOriginClosing(ctx, closingID)
	if err != nil {
		return nil, err
	}
	payments, err := s.receivableRepo.FindPaymentsByClosingID(ctx, closingID)
	if err != nil {
		return nil, err
	}

	return &dto.ClosingDetailResponse{
		Closing:          dto.ToClosingResponse(closing),
		Exits:            dto.ToOperationalExitResponses(exits),
		NewReceivables:   dto.ToReceivableResponses(receivables),
		ReceivedPayments: dto.ToReceivedPaymentResponses(payments),
	}, nil
}

// ListClosings retrieves a paginated closing history, newest first.
// Implements portssvc.ClosingReaderSvc
func (s *closingService) ListClosings(ctx context.Context, actor domain.Actor, params dto.ListClosingsParams) (*dto.ListClosingsResponse, error) {
	filter := portsrepo.ClosingListFilter{StoreID: params.StoreID}
	if !actor.IsAdmin {
		// Operators only see their own store regardless of the filter.
		filter.StoreID = actor.StoreID
	}
	if from, ok := utils.ParseDateBR(params.FromDate); ok {
		filter.FromDate = &from
	}
	if to, ok := utils.ParseDateBR(params.ToDate); ok {
		filter.ToDate = &to
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	closings, newToken, err := s.closingRepo.ListClosings(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list closings")
		return nil, err
	}
	return &dto.ListClosingsResponse{
		Closings:  dto.ToListClosingResponse(closings),
		NextToken: newToken,
	}, nil
}
