package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus indicates where a receivable sits in its lifecycle.
// Transitions only move forward: pending → paid_pending_writeoff → written_off.
type ReceivableStatus string

const (
	ReceivablePending            ReceivableStatus = "pending"
	ReceivablePaidPendingWriteoff ReceivableStatus = "paid_pending_writeoff"
	ReceivableWrittenOff         ReceivableStatus = "written_off"
)

// IsValid reports whether the status is one of the lifecycle states.
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivablePending, ReceivablePaidPendingWriteoff, ReceivableWrittenOff:
		return true
	}
	return false
}

// Receivable is credit extended to a customer at closing time, collected later.
type Receivable struct {
	ReceivableID         string           `json:"receivableID"` // Primary Key (UUID)
	StoreID              string           `json:"storeID"`
	ClientName           string           `json:"clientName"`
	Reference            string           `json:"reference,omitempty"` // e.g. vehicle plate
	Amount               decimal.Decimal  `json:"amount"`
	DebitDate            time.Time        `json:"debitDate"`
	Status               ReceivableStatus `json:"status"`
	OriginClosingID      string           `json:"originClosingID"`
	PaymentClosingID     *string          `json:"paymentClosingID,omitempty"`
	EffectivePaymentDate *time.Time       `json:"effectivePaymentDate,omitempty"`
	WriteoffDate         *time.Time       `json:"writeoffDate,omitempty"`
	WrittenOffBy         *string          `json:"writtenOffBy,omitempty"` // UserID Reference
	AuditFields
}

// ReceivedPayment records the settlement of a pending receivable during a
// closing. A receivable is referenced by at most one payment.
type ReceivedPayment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	ClosingID      string          `json:"closingID"`
	ReceivableID   string          `json:"receivableID"`
	ClientName     string          `json:"clientName"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	AuditFields
}
