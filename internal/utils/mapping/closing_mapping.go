package mapping

import (
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	"github.com/topvistorias/cash_closing_app/internal/models"
)

// ToModelClosing converts a domain Closing to a model Closing
func ToModelClosing(d domain.Closing) models.Closing {
	entries := make(map[string]int64, len(d.CommonEntries))
	for kind, qty := range d.CommonEntries {
		entries[string(kind)] = qty
	}
	return models.Closing{
		ClosingID:    d.ClosingID,
		ClosingDate:  d.ClosingDate,
		StoreID:      d.StoreID,
		OperatorName: d.OperatorName,
		CommonEntries: entries,
		ElectronicEntries: models.ElectronicEntries{
			Pix:     d.ElectronicEntries.Pix,
			Card:    d.ElectronicEntries.Card,
			Deposit: d.ElectronicEntries.Deposit,
		},
		Totals:      ToModelCalculatedTotals(d.Totals),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClosing converts a model Closing to a domain Closing
func ToDomainClosing(m models.Closing) domain.Closing {
	entries := make(map[domain.EntryKind]int64, len(m.CommonEntries))
	for kind, qty := range m.CommonEntries {
		entries[domain.EntryKind(kind)] = qty
	}
	return domain.Closing{
		ClosingID:    m.ClosingID,
		ClosingDate:  m.ClosingDate,
		StoreID:      m.StoreID,
		OperatorName: m.OperatorName,
		CommonEntries: entries,
		ElectronicEntries: domain.ElectronicEntries{
			Pix:     m.ElectronicEntries.Pix,
			Card:    m.ElectronicEntries.Card,
			Deposit: m.ElectronicEntries.Deposit,
		},
		Totals:      ToDomainCalculatedTotals(m.Totals),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCalculatedTotals converts domain CalculatedTotals to the model form
func ToModelCalculatedTotals(d domain.CalculatedTotals) models.CalculatedTotals {
	return models.CalculatedTotals{
		TotalCommonEntries:         d.TotalCommonEntries,
		TotalReceivedPayments:      d.TotalReceivedPayments,
		TotalGrossEntries:          d.TotalGrossEntries,
		TotalElectronicEntries:     d.TotalElectronicEntries,
		TotalStoreOperationalExits: d.TotalStoreOperationalExits,
		TotalAdminOperationalExits: d.TotalAdminOperationalExits,
		TotalNewReceivables:        d.TotalNewReceivables,
		TotalGeneralExits:          d.TotalGeneralExits,
		PartialResult:              d.PartialResult,
		CashReconciliationValue:    d.CashReconciliationValue,
	}
}

// ToDomainCalculatedTotals converts model CalculatedTotals to the domain form
func ToDomainCalculatedTotals(m models.CalculatedTotals) domain.CalculatedTotals {
	return domain.CalculatedTotals{
		TotalCommonEntries:         m.TotalCommonEntries,
		TotalReceivedPayments:      m.TotalReceivedPayments,
		TotalGrossEntries:          m.TotalGrossEntries,
		TotalElectronicEntries:     m.TotalElectronicEntries,
		TotalStoreOperationalExits: m.TotalStoreOperationalExits,
		TotalAdminOperationalExits: m.TotalAdminOperationalExits,
		TotalNewReceivables:        m.TotalNewReceivables,
		TotalGeneralExits:          m.TotalGeneralExits,
		PartialResult:              m.PartialResult,
		CashReconciliationValue:    m.CashReconciliationValue,
	}
}

// ToModelOperationalExit converts a domain OperationalExit to a model OperationalExit
func ToModelOperationalExit(d domain.OperationalExit) models.OperationalExit {
	return models.OperationalExit{
		ExitID:      d.ExitID,
		ClosingID:   d.ClosingID,
		Scope:       string(d.Scope),
		Name:        d.Name,
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
	}
}

// ToDomainOperationalExit converts a model OperationalExit to a domain OperationalExit
func ToDomainOperationalExit(m models.OperationalExit) domain.OperationalExit {
	return domain.OperationalExit{
		ExitID:      m.ExitID,
		ClosingID:   m.ClosingID,
		Scope:       domain.ExitScope(m.Scope),
		Name:        m.Name,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
	}
}

// ToDomainOperationalExitSlice converts a slice of model exits to domain exits
func ToDomainOperationalExitSlice(ms []models.OperationalExit) []domain.OperationalExit {
	ds := make([]domain.OperationalExit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOperationalExit(m)
	}
	return ds
}
