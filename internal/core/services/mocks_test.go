package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
)

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

func (m *MockClosingRepository) FindClosingByID(ctx context.Context, closingID string) (*domain.Closing, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Closing), args.Error(1)
}

func (m *MockClosingRepository) ListClosings(ctx context.Context, filter portsrepo.ClosingListFilter, limit int, nextToken *string) ([]domain.Closing, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var closings []domain.Closing
	if args.Get(0) != nil {
		closings = args.Get(0).([]domain.Closing)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return closings, token, args.Error(2)
}

func (m *MockClosingRepository) FindClosings(ctx context.Context, filter portsrepo.ClosingListFilter) ([]domain.Closing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Closing), args.Error(1)
}

func (m *MockClosingRepository) FindExitsByClosingID(ctx context.Context, closingID string) ([]domain.OperationalExit, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperationalExit), args.Error(1)
}

func (m *MockClosingRepository) SaveClosing(ctx context.Context, closing domain.Closing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

func (m *MockClosingRepository) UpdateClosing(ctx context.Context, closing domain.Closing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

func (m *MockClosingRepository) InsertExits(ctx context.Context, exits []domain.OperationalExit) error {
	args := m.Called(ctx, exits)
	return args.Error(0)
}

func (m *MockClosingRepository) ReplaceExits(ctx context.Context, closingID string, scope domain.ExitScope, exits []domain.OperationalExit) error {
	args := m.Called(ctx, closingID, scope, exits)
	return args.Error(0)
}

// --- Mock ReceivableRepository ---
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivables(ctx context.Context, filter portsrepo.ReceivableListFilter) ([]domain.Receivable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListPendingByStore(ctx context.Context, storeID string) ([]domain.Receivable, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) SumPendingByStore(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockReceivableRepository) FindReceivablesByOriginClosing(ctx context.Context, closingID string) ([]domain.Receivable, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindPaymentsByClosingID(ctx context.Context, closingID string) ([]domain.ReceivedPayment, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceivedPayment), args.Error(1)
}

func (m *MockReceivableRepository) SaveReceivables(ctx context.Context, receivables []domain.Receivable) error {
	args := m.Called(ctx, receivables)
	return args.Error(0)
}

func (m *MockReceivableRepository) InsertReceivedPayments(ctx context.Context, payments []domain.ReceivedPayment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockReceivableRepository) UpdateReceivableStatus(ctx context.Context, receivableID string, fromStatus, toStatus domain.ReceivableStatus, fields portsrepo.ReceivableStatusUpdate) error {
	args := m.Called(ctx, receivableID, fromStatus, toStatus, fields)
	return args.Error(0)
}
