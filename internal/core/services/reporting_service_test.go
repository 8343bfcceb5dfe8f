package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/core/services"
)

func closingWithTotals(storeID string, gross, storeExits, cashRecon int64) domain.Closing {
	return domain.Closing{
		ClosingID: uuid.NewString(),
		StoreID:   storeID,
		Totals: domain.CalculatedTotals{
			TotalGrossEntries:          decimal.NewFromInt(gross),
			TotalStoreOperationalExits: decimal.NewFromInt(storeExits),
			CashReconciliationValue:    decimal.NewFromInt(cashRecon),
		},
	}
}

// --- AggregateClosings (pure reducer) ---

func TestAggregateClosings_OrdinaryStoreNetsPendingReceivables(t *testing.T) {
	closings := []domain.Closing{
		closingWithTotals(domain.StoreCapao, 500, 50, 380),
		closingWithTotals(domain.StoreCapao, 300, 20, 250),
	}
	pending := map[string]decimal.Decimal{
		domain.StoreCapao: decimal.NewFromInt(40),
	}

	stats := services.AggregateClosings(closings, pending)

	if assert.Len(t, stats.Stores, 1) {
		st := stats.Stores[0]
		assert.Equal(t, domain.StoreCapao, st.StoreID)
		assert.Equal(t, "Top Capão Bonito", st.StoreName)
		assert.Equal(t, 2, st.ClosingCount)
		assert.True(t, st.Totals.TotalGrossEntries.Equal(decimal.NewFromInt(800)))
		assert.True(t, st.PendingReceivables.Equal(decimal.NewFromInt(40)))
		// (500+300) - (50+20) - 40 = 690
		assert.True(t, st.NetReconciliationValue.Equal(decimal.NewFromInt(690)), "net was %s", st.NetReconciliationValue)
	}
}

func TestAggregateClosings_AdminStoreUsesCashReconciliation(t *testing.T) {
	closings := []domain.Closing{
		closingWithTotals(domain.StoreAdmin, 0, 0, -1200),
		closingWithTotals(domain.StoreAdmin, 0, 0, 300),
	}

	stats := services.AggregateClosings(closings, nil)

	if assert.Len(t, stats.Stores, 1) {
		st := stats.Stores[0]
		// The administrative box nets its own reconciliation values; pending
		// receivables never enter it.
		assert.True(t, st.NetReconciliationValue.Equal(decimal.NewFromInt(-900)), "net was %s", st.NetReconciliationValue)
	}
}

func TestAggregateClosings_UnknownStoreGetsAdHocBucket(t *testing.T) {
	closings := []domain.Closing{
		closingWithTotals(domain.StoreCapao, 100, 0, 100),
		closingWithTotals("loja_nova", 200, 10, 190),
	}

	stats := services.AggregateClosings(closings, nil)

	if assert.Len(t, stats.Stores, 2) {
		// Registry stores come first; ad hoc buckets after.
		assert.Equal(t, domain.StoreCapao, stats.Stores[0].StoreID)
		assert.Equal(t, "loja_nova", stats.Stores[1].StoreID)
		assert.Equal(t, "loja_nova", stats.Stores[1].StoreName)
		assert.True(t, stats.Stores[1].Totals.TotalGrossEntries.Equal(decimal.NewFromInt(200)))
	}
	assert.Equal(t, 2, stats.Overall.ClosingCount)
	assert.True(t, stats.Overall.Totals.TotalGrossEntries.Equal(decimal.NewFromInt(300)))
}

func TestAggregateClosings_OverallSumsElementWise(t *testing.T) {
	adminExits := decimal.NewFromInt(700)
	closings := []domain.Closing{
		closingWithTotals(domain.StoreCapao, 500, 50, 380),
		closingWithTotals(domain.StoreGuapiara, 250, 30, 180),
		{
			ClosingID: uuid.NewString(),
			StoreID:   domain.StoreAdmin,
			Totals: domain.CalculatedTotals{
				TotalAdminOperationalExits: &adminExits,
				CashReconciliationValue:    decimal.NewFromInt(-700),
			},
		},
	}
	pending := map[string]decimal.Decimal{
		domain.StoreCapao:    decimal.NewFromInt(40),
		domain.StoreGuapiara: decimal.NewFromInt(10),
	}

	stats := services.AggregateClosings(closings, pending)

	assert.Equal(t, 3, stats.Overall.ClosingCount)
	assert.True(t, stats.Overall.Totals.TotalGrossEntries.Equal(decimal.NewFromInt(750)))
	if assert.NotNil(t, stats.Overall.Totals.TotalAdminOperationalExits) {
		assert.True(t, stats.Overall.Totals.TotalAdminOperationalExits.Equal(adminExits))
	}
	// capao 500-50-40=410, guapiara 250-30-10=210, admin -700 -> -80.
	assert.True(t, stats.Overall.NetReconciliationValue.Equal(decimal.NewFromInt(-80)), "net was %s", stats.Overall.NetReconciliationValue)
}

func TestAggregateClosings_EmptyInput(t *testing.T) {
	stats := services.AggregateClosings(nil, nil)

	assert.Empty(t, stats.Stores)
	assert.Equal(t, 0, stats.Overall.ClosingCount)
	assert.True(t, stats.Overall.NetReconciliationValue.IsZero())
}

// --- DashboardStats service ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockClosingRepo    *MockClosingRepository
	mockReceivableRepo *MockReceivableRepository
	service            portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.service = services.NewReportingService(suite.mockClosingRepo, suite.mockReceivableRepo)
}

func (suite *ReportingServiceTestSuite) TestDashboardStats_RequiresAdmin() {
	ctx := context.Background()
	operator := domain.Actor{UserID: uuid.NewString(), StoreID: domain.StoreCapao}

	stats, err := suite.service.DashboardStats(ctx, operator, nil, nil, "")

	suite.Require().Error(err)
	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "FindClosings")
}

func (suite *ReportingServiceTestSuite) TestDashboardStats_AggregatesLivePending() {
	ctx := context.Background()
	admin := domain.Actor{UserID: uuid.NewString(), IsAdmin: true}
	closings := []domain.Closing{closingWithTotals(domain.StoreCapao, 500, 50, 380)}
	pending := map[string]decimal.Decimal{domain.StoreCapao: decimal.NewFromInt(40)}

	suite.mockClosingRepo.On("FindClosings", ctx, portsrepo.ClosingListFilter{}).Return(closings, nil).Once()
	suite.mockReceivableRepo.On("SumPendingByStore", ctx).Return(pending, nil).Once()

	stats, err := suite.service.DashboardStats(ctx, admin, nil, nil, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(stats)
	suite.Require().Len(stats.Stores, 1)
	suite.True(stats.Stores[0].NetReconciliationValue.Equal(decimal.NewFromInt(410)))
	suite.mockClosingRepo.AssertExpectations(suite.T())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
