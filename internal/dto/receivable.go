package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// ReceivableResponse defines the data returned for a receivable.
type ReceivableResponse struct {
	ReceivableID         string          `json:"receivableID"`
	StoreID              string          `json:"storeID"`
	StoreName            string          `json:"storeName"`
	ClientName           string          `json:"clientName"`
	Reference            string          `json:"reference,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	DebitDate            time.Time       `json:"debitDate"`
	Status               string          `json:"status"`
	OriginClosingID      string          `json:"originClosingID"`
	PaymentClosingID     *string         `json:"paymentClosingID,omitempty"`
	EffectivePaymentDate *time.Time      `json:"effectivePaymentDate,omitempty"`
	WriteoffDate         *time.Time      `json:"writeoffDate,omitempty"`
	WrittenOffBy         *string         `json:"writtenOffBy,omitempty"`
}

// ReceivedPaymentResponse defines the data returned for a settlement record.
type ReceivedPaymentResponse struct {
	PaymentID      string          `json:"paymentID"`
	ClosingID      string          `json:"closingID"`
	ReceivableID   string          `json:"receivableID"`
	ClientName     string          `json:"clientName"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
}

// ListReceivablesParams defines query parameters for the administrative
// receivable list. Status "all" (or empty) disables the status filter.
type ListReceivablesParams struct {
	StoreID string `form:"storeID"`
	Status  string `form:"status" binding:"omitempty,oneof=pending paid_pending_writeoff written_off all"`
}

// PendingReceivablesResponse wraps a store's currently pending receivables
// together with their outstanding total.
type PendingReceivablesResponse struct {
	Receivables []ReceivableResponse `json:"receivables"`
	Total       decimal.Decimal      `json:"total"`
}

// ListReceivablesResponse wraps the administrative receivable list.
type ListReceivablesResponse struct {
	Receivables []ReceivableResponse `json:"receivables"`
}

// ToReceivableResponse converts a domain.Receivable to ReceivableResponse DTO.
func ToReceivableResponse(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ReceivableID:         r.ReceivableID,
		StoreID:              r.StoreID,
		StoreName:            domain.StoreName(r.StoreID),
		ClientName:           r.ClientName,
		Reference:            r.Reference,
		Amount:               r.Amount,
		DebitDate:            r.DebitDate,
		Status:               string(r.Status),
		OriginClosingID:      r.OriginClosingID,
		PaymentClosingID:     r.PaymentClosingID,
		EffectivePaymentDate: r.EffectivePaymentDate,
		WriteoffDate:         r.WriteoffDate,
		WrittenOffBy:         r.WrittenOffBy,
	}
}

// ToReceivableResponses converts a slice of domain.Receivable to response DTOs.
func ToReceivableResponses(receivables []domain.Receivable) []ReceivableResponse {
	res := make([]ReceivableResponse, len(receivables))
	for i, r := range receivables {
		res[i] = ToReceivableResponse(&r)
	}
	return res
}

// ToReceivedPaymentResponses converts a slice of domain.ReceivedPayment to response DTOs.
func ToReceivedPaymentResponses(payments []domain.ReceivedPayment) []ReceivedPaymentResponse {
	res := make([]ReceivedPaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ReceivedPaymentResponse{
			PaymentID:      p.PaymentID,
			ClosingID:      p.ClosingID,
			ReceivableID:   p.ReceivableID,
			ClientName:     p.ClientName,
			AmountReceived: p.AmountReceived,
		}
	}
	return res
}
