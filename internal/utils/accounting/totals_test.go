package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateTotalsOrdinaryStore(t *testing.T) {
	in := TotalsInput{
		StoreID: domain.StoreGuapiara,
		CommonEntries: map[domain.EntryKind]int64{
			domain.EntryCarro: 3, // 3 * 120 = 360
			domain.EntryMoto:  2, // 2 * 100 = 200
		},
		ElectronicEntries: domain.ElectronicEntries{
			Pix:  dec("150.50"),
			Card: dec("99.50"),
		},
		StoreExits: []domain.OperationalExit{
			{Name: "combustível", Amount: dec("45.00")},
			{Name: "almoço", Amount: dec("30.00")},
		},
		NewReceivables: []domain.Receivable{
			{ClientName: "João", Amount: dec("120.00")},
		},
		ReceivedPayments: []domain.ReceivedPayment{
			{ClientName: "Maria", AmountReceived: dec("220.00")},
		},
	}

	got := CalculateTotals(in)

	assert.True(t, dec("560").Equal(got.TotalCommonEntries))
	assert.True(t, dec("220").Equal(got.TotalReceivedPayments))
	assert.True(t, dec("780").Equal(got.TotalGrossEntries))
	assert.True(t, dec("250").Equal(got.TotalElectronicEntries))
	assert.True(t, dec("75").Equal(got.TotalStoreOperationalExits))
	assert.Nil(t, got.TotalAdminOperationalExits, "admin bucket must be absent for an ordinary store")
	assert.True(t, dec("120").Equal(got.TotalNewReceivables))
	assert.True(t, dec("195").Equal(got.TotalGeneralExits))
	assert.True(t, dec("585").Equal(got.PartialResult))
	assert.True(t, dec("335").Equal(got.CashReconciliationValue))
}

func TestCalculateTotalsAdminStore(t *testing.T) {
	in := TotalsInput{
		StoreID: domain.StoreAdmin,
		CommonEntries: map[domain.EntryKind]int64{
			domain.EntryCautelar: 1, // 220
		},
		StoreExits: []domain.OperationalExit{
			{Name: "material", Amount: dec("20.00")},
		},
		AdminExits: []domain.OperationalExit{
			{Name: "contador", Amount: dec("500.00")},
			{Name: "aluguel", Amount: dec("1200.00")},
		},
	}

	got := CalculateTotals(in)

	require.NotNil(t, got.TotalAdminOperationalExits)
	assert.True(t, dec("1700").Equal(*got.TotalAdminOperationalExits))
	// generalExits = store 20 + admin 1700 + receivables 0
	assert.True(t, dec("1720").Equal(got.TotalGeneralExits))
	assert.True(t, dec("-1500").Equal(got.PartialResult))
	assert.True(t, dec("-1500").Equal(got.CashReconciliationValue))
}

func TestCalculateTotalsAdminExitsIgnoredForOrdinaryStore(t *testing.T) {
	in := TotalsInput{
		StoreID: domain.StoreRibeirao,
		AdminExits: []domain.OperationalExit{
			{Name: "should not count", Amount: dec("999.00")},
		},
	}

	got := CalculateTotals(in)

	assert.Nil(t, got.TotalAdminOperationalExits)
	assert.True(t, got.TotalGeneralExits.IsZero())
	assert.True(t, got.CashReconciliationValue.IsZero())
}

func TestCalculateTotalsInvariants(t *testing.T) {
	in := TotalsInput{
		StoreID: domain.StoreCapao,
		CommonEntries: map[domain.EntryKind]int64{
			domain.EntryCaminhonete:         4,
			domain.EntryPesquisaProcedencia: 7,
		},
		ElectronicEntries: domain.ElectronicEntries{Pix: dec("321.47")},
		StoreExits: []domain.OperationalExit{
			{Name: "frete", Amount: dec("18.35")},
		},
		ReceivedPayments: []domain.ReceivedPayment{
			{AmountReceived: dec("142.73")},
		},
	}

	got := CalculateTotals(in)

	// totalGrossEntries = totalCommonEntries + totalReceivedPayments
	assert.True(t, got.TotalCommonEntries.Add(got.TotalReceivedPayments).Equal(got.TotalGrossEntries))
	// cashReconciliationValue = totalGrossEntries - totalGeneralExits - totalElectronicEntries
	want := got.TotalGrossEntries.Sub(got.TotalGeneralExits).Sub(got.TotalElectronicEntries)
	assert.True(t, want.Equal(got.CashReconciliationValue))
}

func TestCalculateTotalsEdgeCases(t *testing.T) {
	// Empty input yields all zeros.
	got := CalculateTotals(TotalsInput{StoreID: domain.StoreCapao})
	assert.True(t, got.TotalGrossEntries.IsZero())
	assert.True(t, got.CashReconciliationValue.IsZero())

	// Zero and absent quantities contribute nothing; negative amounts are
	// excluded from sums rather than rejected.
	got = CalculateTotals(TotalsInput{
		StoreID: domain.StoreCapao,
		CommonEntries: map[domain.EntryKind]int64{
			domain.EntryCarro: 0,
			domain.EntryMoto:  -2,
		},
		StoreExits: []domain.OperationalExit{
			{Name: "estorno", Amount: dec("-10.00")},
			{Name: "zero", Amount: decimal.Zero},
		},
		NewReceivables: []domain.Receivable{
			{Amount: dec("-5.00")},
		},
		ReceivedPayments: []domain.ReceivedPayment{
			{AmountReceived: dec("-1.00")},
		},
	})
	assert.True(t, got.TotalCommonEntries.IsZero())
	assert.True(t, got.TotalStoreOperationalExits.IsZero())
	assert.True(t, got.TotalNewReceivables.IsZero())
	assert.True(t, got.TotalReceivedPayments.IsZero())
}
