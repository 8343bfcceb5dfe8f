package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus mirrors the literal status values stored in the DB.
type ReceivableStatus string

const (
	ReceivablePending             ReceivableStatus = "pending"
	ReceivablePaidPendingWriteoff ReceivableStatus = "paid_pending_writeoff"
	ReceivableWrittenOff          ReceivableStatus = "written_off"
)

// Receivable represents credit extended to a customer at closing time.
type Receivable struct {
	ReceivableID         string           `json:"receivableID"` // Primary Key (UUID)
	StoreID              string           `json:"storeID"`
	ClientName           string           `json:"clientName"`
	Reference            string           `json:"reference"`
	Amount               decimal.Decimal  `json:"amount"`
	DebitDate            time.Time        `json:"debitDate"`
	Status               ReceivableStatus `json:"status"`
	OriginClosingID      string           `json:"originClosingID"`
	PaymentClosingID     *string          `json:"paymentClosingID"`
	EffectivePaymentDate *time.Time       `json:"effectivePaymentDate"`
	WriteoffDate         *time.Time       `json:"writeoffDate"`
	WrittenOffBy         *string          `json:"writtenOffBy"`
	AuditFields
}

// ReceivedPayment records the settlement of a pending receivable inside one
// closing submission.
type ReceivedPayment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	ClosingID      string          `json:"closingID"`
	ReceivableID   string          `json:"receivableID"`
	ClientName     string          `json:"clientName"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	AuditFields
}
