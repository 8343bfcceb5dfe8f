package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// TotalsInput is everything a closing's totals derive from. Amount validation
// happens upstream; here non-positive amounts are simply excluded from sums.
type TotalsInput struct {
	StoreID           string
	CommonEntries     map[domain.EntryKind]int64
	ElectronicEntries domain.ElectronicEntries
	StoreExits        []domain.OperationalExit
	AdminExits        []domain.OperationalExit
	NewReceivables    []domain.Receivable
	ReceivedPayments  []domain.ReceivedPayment
}

// CalculateTotals derives a closing's totals from its raw inputs. It is pure
// and deterministic: the same input always produces the same totals.
//
// An entry kind absent from CommonEntries counts as zero quantity. The
// administrative exits bucket is included only when the closing belongs to
// the administrative cash box; for every other store the field stays nil and
// contributes nothing.
func CalculateTotals(in TotalsInput) domain.CalculatedTotals {
	totalCommon := decimal.Zero
	for kind, qty := range in.CommonEntries {
		if qty <= 0 || !kind.IsValid() {
			continue
		}
		totalCommon = totalCommon.Add(kind.Price().Mul(decimal.NewFromInt(qty)))
	}

	totalPayments := decimal.Zero
	for _, p := range in.ReceivedPayments {
		if p.AmountReceived.IsPositive() {
			totalPayments = totalPayments.Add(p.AmountReceived)
		}
	}

	totalGross := totalCommon.Add(totalPayments)
	totalElectronic := sumPositiveElectronic(in.ElectronicEntries)
	totalStoreExits := sumExits(in.StoreExits)

	totalNewReceivables := decimal.Zero
	for _, r := range in.NewReceivables {
		if r.Amount.IsPositive() {
			totalNewReceivables = totalNewReceivables.Add(r.Amount)
		}
	}

	totalGeneralExits := totalStoreExits.Add(totalNewReceivables)

	var adminExits *decimal.Decimal
	if domain.IsAdminStore(in.StoreID) {
		sum := sumExits(in.AdminExits)
		adminExits = &sum
		totalGeneralExits = totalGeneralExits.Add(sum)
	}

	partialResult := totalGross.Sub(totalGeneralExits)

	return domain.CalculatedTotals{
		TotalCommonEntries:         totalCommon,
		TotalReceivedPayments:      totalPayments,
		TotalGrossEntries:          totalGross,
		TotalElectronicEntries:     totalElectronic,
		TotalStoreOperationalExits: totalStoreExits,
		TotalAdminOperationalExits: adminExits,
		TotalNewReceivables:        totalNewReceivables,
		TotalGeneralExits:          totalGeneralExits,
		PartialResult:              partialResult,
		CashReconciliationValue:    partialResult.Sub(totalElectronic),
	}
}

func sumExits(exits []domain.OperationalExit) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range exits {
		if e.Amount.IsPositive() {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

func sumPositiveElectronic(e domain.ElectronicEntries) decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range []decimal.Decimal{e.Pix, e.Card, e.Deposit} {
		if amount.IsPositive() {
			sum = sum.Add(amount)
		}
	}
	return sum
}
