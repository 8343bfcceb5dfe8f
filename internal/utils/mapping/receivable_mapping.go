package mapping

import (
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	"github.com/topvistorias/cash_closing_app/internal/models"
)

// ToModelReceivable converts a domain Receivable to a model Receivable
func ToModelReceivable(d domain.Receivable) models.Receivable {
	return models.Receivable{
		ReceivableID:         d.ReceivableID,
		StoreID:              d.StoreID,
		ClientName:           d.ClientName,
		Reference:            d.Reference,
		Amount:               d.Amount,
		DebitDate:            d.DebitDate,
		Status:               models.ReceivableStatus(d.Status),
		OriginClosingID:      d.OriginClosingID,
		PaymentClosingID:     d.PaymentClosingID,
		EffectivePaymentDate: d.EffectivePaymentDate,
		WriteoffDate:         d.WriteoffDate,
		WrittenOffBy:         d.WrittenOffBy,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceivable converts a model Receivable to a domain Receivable
func ToDomainReceivable(m models.Receivable) domain.Receivable {
	return domain.Receivable{
		ReceivableID:         m.ReceivableID,
		StoreID:              m.StoreID,
		ClientName:           m.ClientName,
		Reference:            m.Reference,
		Amount:               m.Amount,
		DebitDate:            m.DebitDate,
		Status:               domain.ReceivableStatus(m.Status),
		OriginClosingID:      m.OriginClosingID,
		PaymentClosingID:     m.PaymentClosingID,
		EffectivePaymentDate: m.EffectivePaymentDate,
		WriteoffDate:         m.WriteoffDate,
		WrittenOffBy:         m.WrittenOffBy,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReceivableSlice converts a slice of model Receivables to domain Receivables
func ToDomainReceivableSlice(ms []models.Receivable) []domain.Receivable {
	ds := make([]domain.Receivable, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceivable(m)
	}
	return ds
}

// ToModelReceivedPayment converts a domain ReceivedPayment to a model ReceivedPayment
func ToModelReceivedPayment(d domain.ReceivedPayment) models.ReceivedPayment {
	return models.ReceivedPayment{
		PaymentID:      d.PaymentID,
		ClosingID:      d.ClosingID,
		ReceivableID:   d.ReceivableID,
		ClientName:     d.ClientName,
		AmountReceived: d.AmountReceived,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceivedPayment converts a model ReceivedPayment to a domain ReceivedPayment
func ToDomainReceivedPayment(m models.ReceivedPayment) domain.ReceivedPayment {
	return domain.ReceivedPayment{
		PaymentID:      m.PaymentID,
		ClosingID:      m.ClosingID,
		ReceivableID:   m.ReceivableID,
		ClientName:     m.ClientName,
		AmountReceived: m.AmountReceived,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReceivedPaymentSlice converts a slice of model payments to domain payments
func ToDomainReceivedPaymentSlice(ms []models.ReceivedPayment) []domain.ReceivedPayment {
	ds := make([]domain.ReceivedPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceivedPayment(m)
	}
	return ds
}
