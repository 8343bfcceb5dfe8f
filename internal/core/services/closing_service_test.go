package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/core/services"
	"github.com/topvistorias/cash_closing_app/internal/dto"
)

type ClosingServiceTestSuite struct {
	suite.Suite
	mockClosingRepo    *MockClosingRepository
	mockReceivableRepo *MockReceivableRepository
	service            portssvc.ClosingSvcFacade

	operatorActor domain.Actor
	adminActor    domain.Actor
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.mockReceivableRepo = new(MockReceivableRepository)
	receivableSvc := services.NewReceivableService(suite.mockReceivableRepo)
	suite.service = services.NewClosingService(suite.mockClosingRepo, suite.mockReceivableRepo, receivableSvc)
	suite.operatorActor = domain.Actor{UserID: uuid.NewString(), StoreID: domain.StoreCapao}
	suite.adminActor = domain.Actor{UserID: uuid.NewString(), IsAdmin: true}
}

func baseCreateRequest() dto.CreateClosingRequest {
	return dto.CreateClosingRequest{
		ClosingDate:  "15/03/2025",
		StoreID:      domain.StoreCapao,
		OperatorName: "Maria",
		CommonEntries: map[string]string{
			"carro": "2",
			"moto":  "1",
		},
		ElectronicEntries: dto.ElectronicEntriesRequest{Pix: "100,00"},
	}
}

// --- CreateClosing ---

func (suite *ClosingServiceTestSuite) TestCreateClosing_Success() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.StoreExits = []dto.OperationalExitRequest{
		{Name: "Material de limpeza", Amount: "R$ 40,00", PaymentDate: "15/03/2025"},
	}
	req.NewReceivables = []dto.NewReceivableRequest{
		{ClientName: "Oficina do Zé", Reference: "DEF-5678", Amount: "60,00", DebitDate: "15/03/2025"},
	}
	pending := pendingReceivable(domain.StoreCapao, "50.00")
	req.ReceivedPayments = []dto.ReceivedPaymentRequest{
		{ReceivableID: pending.ReceivableID, AmountReceived: "50,00"},
	}

	// carro 2x120 + moto 1x100 = 340; payments 50 -> gross 390.
	// exits 40 + new receivables 60 -> general exits 100; partial 290.
	// electronic 100 -> reconciliation 190.
	suite.mockClosingRepo.On("SaveClosing", ctx, mock.MatchedBy(func(c domain.Closing) bool {
		return c.StoreID == domain.StoreCapao &&
			c.Totals.TotalGrossEntries.Equal(decimal.NewFromInt(390)) &&
			c.Totals.TotalGeneralExits.Equal(decimal.NewFromInt(100)) &&
			c.Totals.CashReconciliationValue.Equal(decimal.NewFromInt(190)) &&
			c.Totals.TotalAdminOperationalExits == nil
	})).Return(nil).Once()
	suite.mockClosingRepo.On("InsertExits", ctx, mock.MatchedBy(func(exits []domain.OperationalExit) bool {
		return len(exits) == 1 && exits[0].Scope == domain.ExitScopeStore
	})).Return(nil).Once()
	suite.mockReceivableRepo.On("SaveReceivables", ctx, mock.Anything).Return(nil).Once()
	suite.mockReceivableRepo.On("InsertReceivedPayments", ctx, mock.Anything).Return(nil).Once()
	suite.mockReceivableRepo.On("FindReceivableByID", ctx, pending.ReceivableID).Return(pending, nil).Once()
	suite.mockReceivableRepo.On("UpdateReceivableStatus", ctx, pending.ReceivableID,
		domain.ReceivablePending, domain.ReceivablePaidPendingWriteoff, mock.Anything).Return(nil).Once()

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(dto.SyncCompleted, result.Status)
	suite.Empty(result.FailedSteps)
	suite.NotEmpty(result.ClosingID)
	suite.mockClosingRepo.AssertExpectations(suite.T())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_UnknownEntryKind() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.CommonEntries["bicicleta"] = "3"

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "bicicleta")
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "SaveClosing")
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_DuplicateSettlementRejectedBeforeWrite() {
	ctx := context.Background()
	req := baseCreateRequest()
	receivableID := uuid.NewString()
	req.ReceivedPayments = []dto.ReceivedPaymentRequest{
		{ReceivableID: receivableID, AmountReceived: "30,00"},
		{ReceivableID: receivableID, AmountReceived: "20,00"},
	}

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrDuplicateSettlement)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "SaveClosing")
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_OperatorNameRequired() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.OperatorName = ""

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_AdminExitsRejectedForOrdinaryStore() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.AdminExits = []dto.OperationalExitRequest{
		{Name: "Contador", Amount: "500,00", PaymentDate: "15/03/2025"},
	}

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_ForbiddenForOtherStore() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.StoreID = domain.StoreGuapiara

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_ClosingRowFailureIsFatal() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.StoreExits = []dto.OperationalExitRequest{
		{Name: "Troco", Amount: "10,00", PaymentDate: "15/03/2025"},
	}
	expectedErr := assert.AnError

	suite.mockClosingRepo.On("SaveClosing", ctx, mock.Anything).Return(expectedErr).Once()

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, expectedErr)
	// No sub-step runs once the closing row fails.
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "InsertExits")
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_SubStepFailureReportsPartial() {
	ctx := context.Background()
	req := baseCreateRequest()
	req.StoreExits = []dto.OperationalExitRequest{
		{Name: "Combustível", Amount: "80,00", PaymentDate: "15/03/2025"},
	}
	req.NewReceivables = []dto.NewReceivableRequest{
		{ClientName: "Transportadora", Reference: "GHI-9012", Amount: "250,00", DebitDate: "15/03/2025"},
	}

	suite.mockClosingRepo.On("SaveClosing", ctx, mock.Anything).Return(nil).Once()
	suite.mockClosingRepo.On("InsertExits", ctx, mock.Anything).Return(assert.AnError).Once()
	// Later sub-steps still run after an earlier one fails.
	suite.mockReceivableRepo.On("SaveReceivables", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.CreateClosing(ctx, suite.operatorActor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(dto.SyncPartial, result.Status)
	suite.Equal([]string{"store_exits"}, result.FailedSteps)
	suite.mockClosingRepo.AssertExpectations(suite.T())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCreateClosing_AdminStoreCarriesAdminExits() {
	ctx := context.Background()
	req := dto.CreateClosingRequest{
		ClosingDate:  "20/03/2025",
		StoreID:      domain.StoreAdmin,
		OperatorName: "João",
		AdminExits: []dto.OperationalExitRequest{
			{Name: "Aluguel", Amount: "1.500,00", PaymentDate: "20/03/2025"},
		},
	}

	suite.mockClosingRepo.On("SaveClosing", ctx, mock.MatchedBy(func(c domain.Closing) bool {
		return c.Totals.TotalAdminOperationalExits != nil &&
			c.Totals.TotalAdminOperationalExits.Equal(decimal.NewFromInt(1500)) &&
			c.Totals.CashReconciliationValue.Equal(decimal.NewFromInt(-1500))
	})).Return(nil).Once()
	suite.mockClosingRepo.On("InsertExits", ctx, mock.MatchedBy(func(exits []domain.OperationalExit) bool {
		return len(exits) == 1 && exits[0].Scope == domain.ExitScopeAdmin
	})).Return(nil).Once()

	result, err := suite.service.CreateClosing(ctx, suite.adminActor, req)

	suite.Require().NoError(err)
	suite.Equal(dto.SyncCompleted, result.Status)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

// --- UpdateClosing ---

func existingClosing(storeID string) *domain.Closing {
	return &domain.Closing{
		ClosingID:    uuid.NewString(),
		StoreID:      storeID,
		OperatorName: "Maria",
		CommonEntries: map[domain.EntryKind]int64{
			domain.EntryCarro: 1,
		},
	}
}

func (suite *ClosingServiceTestSuite) TestUpdateClosing_ReplacesExitsAndReusesStoredChildren() {
	ctx := context.Background()
	existing := existingClosing(domain.StoreCapao)
	storedReceivables := []domain.Receivable{*pendingReceivable(domain.StoreCapao, "60.00")}
	storedPayments := []domain.ReceivedPayment{{
		PaymentID:      uuid.NewString(),
		ClosingID:      existing.ClosingID,
		ReceivableID:   uuid.NewString(),
		AmountReceived: decimal.RequireFromString("50.00"),
	}}

	req := dto.UpdateClosingRequest{
		ClosingDate:  "16/03/2025",
		OperatorName: "Maria",
		CommonEntries: map[string]string{
			"carro": "2",
		},
		ElectronicEntries: dto.ElectronicEntriesRequest{Pix: "100,00"},
		StoreExits: []dto.OperationalExitRequest{
			{Name: "Frete", Amount: "40,00", PaymentDate: "16/03/2025"},
		},
	}

	suite.mockClosingRepo.On("FindClosingByID", ctx, existing.ClosingID).Return(existing, nil).Once()
	suite.mockReceivableRepo.On("FindReceivablesByOriginClosing", ctx, existing.ClosingID).Return(storedReceivables, nil).Once()
	suite.mockReceivableRepo.On("FindPaymentsByClosingID", ctx, existing.ClosingID).Return(storedPayments, nil).Once()
	// carro 2x120 + stored payments 50 -> gross 290; exits 40 + stored
	// receivables 60 -> general exits 100; electronic 100 -> reconciliation 90.
	suite.mockClosingRepo.On("UpdateClosing", ctx, mock.MatchedBy(func(c domain.Closing) bool {
		return c.ClosingID == existing.ClosingID &&
			c.Totals.TotalGrossEntries.Equal(decimal.NewFromInt(290)) &&
			c.Totals.CashReconciliationValue.Equal(decimal.NewFromInt(90))
	})).Return(nil).Once()
	suite.mockClosingRepo.On("ReplaceExits", ctx, existing.ClosingID, domain.ExitScopeStore, mock.Anything).Return(nil).Once()

	result, err := suite.service.UpdateClosing(ctx, suite.operatorActor, existing.ClosingID, req)

	suite.Require().NoError(err)
	suite.Equal(dto.SyncCompleted, result.Status)
	// Receivables and payments are read, never rewritten, on edit.
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "SaveReceivables")
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "InsertReceivedPayments")
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestUpdateClosing_ReplaceFailureReportsPartial() {
	ctx := context.Background()
	existing := existingClosing(domain.StoreCapao)
	req := dto.UpdateClosingRequest{
		ClosingDate:   "16/03/2025",
		OperatorName:  "Maria",
		CommonEntries: map[string]string{"carro": "1"},
	}

	suite.mockClosingRepo.On("FindClosingByID", ctx, existing.ClosingID).Return(existing, nil).Once()
	suite.mockReceivableRepo.On("FindReceivablesByOriginClosing", ctx, existing.ClosingID).Return([]domain.Receivable{}, nil).Once()
	suite.mockReceivableRepo.On("FindPaymentsByClosingID", ctx, existing.ClosingID).Return([]domain.ReceivedPayment{}, nil).Once()
	suite.mockClosingRepo.On("UpdateClosing", ctx, mock.Anything).Return(nil).Once()
	suite.mockClosingRepo.On("ReplaceExits", ctx, existing.ClosingID, domain.ExitScopeStore, mock.Anything).Return(assert.AnError).Once()

	result, err := suite.service.UpdateClosing(ctx, suite.operatorActor, existing.ClosingID, req)

	suite.Require().NoError(err)
	suite.Equal(dto.SyncPartial, result.Status)
	suite.Equal([]string{"store_exits"}, result.FailedSteps)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestUpdateClosing_NotFound() {
	ctx := context.Background()
	closingID := uuid.NewString()

	suite.mockClosingRepo.On("FindClosingByID", ctx, closingID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.UpdateClosing(ctx, suite.operatorActor, closingID, dto.UpdateClosingRequest{ClosingDate: "16/03/2025", OperatorName: "Maria"})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
