package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ElectronicEntries holds the day's non-cash receipt channels.
type ElectronicEntries struct {
	Pix     decimal.Decimal `json:"pix"`
	Card    decimal.Decimal `json:"card"`
	Deposit decimal.Decimal `json:"deposit"`
}

// Total sums the electronic channels.
func (e ElectronicEntries) Total() decimal.Decimal {
	return e.Pix.Add(e.Card).Add(e.Deposit)
}

// ExitScope partitions operational exits between the store-level and
// administrative-only namespaces.
type ExitScope string

const (
	ExitScopeStore ExitScope = "store"
	ExitScopeAdmin ExitScope = "admin"
)

// OperationalExit is a cash expense paid during the day, owned by one closing.
type OperationalExit struct {
	ExitID      string          `json:"exitID"`
	ClosingID   string          `json:"closingID"`
	Scope       ExitScope       `json:"scope"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
}

// CalculatedTotals is fully derived from a closing's raw inputs and children;
// it is never edited independently.
type CalculatedTotals struct {
	TotalCommonEntries         decimal.Decimal  `json:"totalCommonEntries"`
	TotalReceivedPayments      decimal.Decimal  `json:"totalReceivedPayments"`
	TotalGrossEntries          decimal.Decimal  `json:"totalGrossEntries"`
	TotalElectronicEntries     decimal.Decimal  `json:"totalElectronicEntries"`
	TotalStoreOperationalExits decimal.Decimal  `json:"totalStoreOperationalExits"`
	// TotalAdminOperationalExits is present only for the administrative cash box.
	TotalAdminOperationalExits *decimal.Decimal `json:"totalAdminOperationalExits,omitempty"`
	TotalNewReceivables        decimal.Decimal  `json:"totalNewReceivables"`
	TotalGeneralExits          decimal.Decimal  `json:"totalGeneralExits"`
	PartialResult              decimal.Decimal  `json:"partialResult"`
	CashReconciliationValue    decimal.Decimal  `json:"cashReconciliationValue"`
}

// Closing is a store's end-of-day cash reconciliation record.
type Closing struct {
	ClosingID         string              `json:"closingID"` // Primary Key (UUID)
	ClosingDate       time.Time           `json:"closingDate"`
	StoreID           string              `json:"storeID"`
	OperatorName      string              `json:"operatorName,omitempty"`
	CommonEntries     map[EntryKind]int64 `json:"commonEntries"`
	ElectronicEntries ElectronicEntries   `json:"electronicEntries"`
	Totals            CalculatedTotals    `json:"calculatedTotals"`
	AuditFields
}
