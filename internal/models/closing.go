package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ElectronicEntries is stored as a JSONB column on the closing row.
type ElectronicEntries struct {
	Pix     decimal.Decimal `json:"pix"`
	Card    decimal.Decimal `json:"card"`
	Deposit decimal.Decimal `json:"deposit"`
}

// CalculatedTotals is stored as a JSONB column on the closing row. It is
// always rewritten wholesale from a fresh calculation, never patched.
type CalculatedTotals struct {
	TotalCommonEntries         decimal.Decimal  `json:"totalCommonEntries"`
	TotalReceivedPayments      decimal.Decimal  `json:"totalReceivedPayments"`
	TotalGrossEntries          decimal.Decimal  `json:"totalGrossEntries"`
	TotalElectronicEntries     decimal.Decimal  `json:"totalElectronicEntries"`
	TotalStoreOperationalExits decimal.Decimal  `json:"totalStoreOperationalExits"`
	TotalAdminOperationalExits *decimal.Decimal `json:"totalAdminOperationalExits,omitempty"`
	TotalNewReceivables        decimal.Decimal  `json:"totalNewReceivables"`
	TotalGeneralExits          decimal.Decimal  `json:"totalGeneralExits"`
	PartialResult              decimal.Decimal  `json:"partialResult"`
	CashReconciliationValue    decimal.Decimal  `json:"cashReconciliationValue"`
}

// Closing represents one store's end-of-day reconciliation row.
type Closing struct {
	ClosingID         string            `json:"closingID"` // Primary Key (UUID)
	ClosingDate       time.Time         `json:"closingDate"`
	StoreID           string            `json:"storeID"`
	OperatorName      string            `json:"operatorName"`
	CommonEntries     map[string]int64  `json:"commonEntries"`     // JSONB, entry kind -> quantity
	ElectronicEntries ElectronicEntries `json:"electronicEntries"` // JSONB
	Totals            CalculatedTotals  `json:"calculatedTotals"`  // JSONB
	AuditFields
}

// OperationalExit is a child row of one closing, partitioned by scope into
// the store-level and administrative-only namespaces.
type OperationalExit struct {
	ExitID      string          `json:"exitID"` // Primary Key (UUID)
	ClosingID   string          `json:"closingID"`
	Scope       string          `json:"scope"` // "store" or "admin"
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
}
