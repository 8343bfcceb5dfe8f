package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/core/domain"
)

// ElectronicEntriesRequest carries the raw electronic amounts as typed on the
// form; the normalizer turns them into canonical decimals.
type ElectronicEntriesRequest struct {
	Pix     string `json:"pix"`
	Card    string `json:"card"`
	Deposit string `json:"deposit"`
}

// OperationalExitRequest defines one cash expense entered on the closing form.
type OperationalExitRequest struct {
	Name        string `json:"name" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"paymentDate" binding:"required,brdate"`
}

// NewReceivableRequest defines credit extended to a customer at closing time.
type NewReceivableRequest struct {
	ClientName string `json:"clientName" binding:"required"`
	Reference  string `json:"reference" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	DebitDate  string `json:"debitDate" binding:"required,brdate"`
}

// ReceivedPaymentRequest selects a pending receivable settled during this closing.
type ReceivedPaymentRequest struct {
	ReceivableID   string `json:"receivableID" binding:"required"`
	AmountReceived string `json:"amountReceived" binding:"required"`
}

// CreateClosingRequest defines the data needed to submit a day's closing.
// Numeric fields arrive as the raw strings the operator typed.
type CreateClosingRequest struct {
	ClosingDate       string                   `json:"closingDate" binding:"required,brdate"`
	StoreID           string                   `json:"storeID" binding:"required"`
	OperatorName      string                   `json:"operatorName"`
	CommonEntries     map[string]string        `json:"commonEntries"` // entry kind -> quantity
	ElectronicEntries ElectronicEntriesRequest `json:"electronicEntries"`
	StoreExits        []OperationalExitRequest `json:"storeExits"`
	AdminExits        []OperationalExitRequest `json:"adminExits"`
	NewReceivables    []NewReceivableRequest   `json:"newReceivables"`
	ReceivedPayments  []ReceivedPaymentRequest `json:"receivedPayments"`
}

// UpdateClosingRequest defines the fields an edit may change. Receivables and
// payments created by the original submission are never re-derived here.
type UpdateClosingRequest struct {
	ClosingDate       string                   `json:"closingDate" binding:"required,brdate"`
	OperatorName      string                   `json:"operatorName"`
	CommonEntries     map[string]string        `json:"commonEntries"`
	ElectronicEntries ElectronicEntriesRequest `json:"electronicEntries"`
	StoreExits        []OperationalExitRequest `json:"storeExits"`
	AdminExits        []OperationalExitRequest `json:"adminExits"`
}

// Sync result statuses. Partial means the closing row was saved but at least
// one sub-step failed and needs human verification.
const (
	SyncCompleted = "completed"
	SyncPartial   = "partial"
)

// ClosingSyncResult reports the outcome of a closing submission or edit.
type ClosingSyncResult struct {
	ClosingID   string   `json:"closingID"`
	Status      string   `json:"status"`
	FailedSteps []string `json:"failedSteps,omitempty"`
}

// ClosingResponse defines the data returned for a closing.
type ClosingResponse struct {
	ClosingID         string                 `json:"closingID"`
	ClosingDate       time.Time              `json:"closingDate"`
	StoreID           string                 `json:"storeID"`
	StoreName         string                 `json:"storeName"`
	OperatorName      string                 `json:"operatorName,omitempty"`
	CommonEntries     map[string]int64       `json:"commonEntries"`
	ElectronicEntries ElectronicEntriesData  `json:"electronicEntries"`
	Totals            CalculatedTotalsData   `json:"calculatedTotals"`
	CreatedAt         time.Time              `json:"createdAt"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
}

// ElectronicEntriesData mirrors domain.ElectronicEntries in responses.
type ElectronicEntriesData struct {
	Pix     decimal.Decimal `json:"pix"`
	Card    decimal.Decimal `json:"card"`
	Deposit decimal.Decimal `json:"deposit"`
}

// CalculatedTotalsData mirrors domain.CalculatedTotals in responses.
type CalculatedTotalsData struct {
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

// OperationalExitResponse defines the data returned for a child exit row.
type OperationalExitResponse struct {
	ExitID      string          `json:"exitID"`
	Scope       string          `json:"scope"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
}

// ClosingDetailResponse joins a closing with its child rows, the shape used
// by the history screen.
type ClosingDetailResponse struct {
	Closing          ClosingResponse           `json:"closing"`
	Exits            []OperationalExitResponse `json:"exits"`
	NewReceivables   []ReceivableResponse      `json:"newReceivables"`
	ReceivedPayments []ReceivedPaymentResponse `json:"receivedPayments"`
}

// ListClosingsParams defines query parameters for listing closings.
type ListClosingsParams struct {
	StoreID   string `form:"storeID"`
	FromDate  string `form:"fromDate" binding:"omitempty,brdate"`
	ToDate    string `form:"toDate" binding:"omitempty,brdate"`
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListClosingsResponse wraps the paginated list of closings.
type ListClosingsResponse struct {
	Closings  []ClosingResponse `json:"closings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToClosingResponse converts a domain.Closing to ClosingResponse DTO.
func ToClosingResponse(c *domain.Closing) ClosingResponse {
	entries := make(map[string]int64, len(c.CommonEntries))
	for kind, qty := range c.CommonEntries {
		entries[string(kind)] = qty
	}
	return ClosingResponse{
		ClosingID:     c.ClosingID,
		ClosingDate:   c.ClosingDate,
		StoreID:       c.StoreID,
		StoreName:     domain.StoreName(c.StoreID),
		OperatorName:  c.OperatorName,
		CommonEntries: entries,
		ElectronicEntries: ElectronicEntriesData{
			Pix:     c.ElectronicEntries.Pix,
			Card:    c.ElectronicEntries.Card,
			Deposit: c.ElectronicEntries.Deposit,
		},
		Totals:        ToCalculatedTotalsData(c.Totals),
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClosingResponse converts a slice of domain.Closing to response DTOs.
func ToListClosingResponse(closings []domain.Closing) []ClosingResponse {
	res := make([]ClosingResponse, len(closings))
	for i, c := range closings {
		res[i] = ToClosingResponse(&c)
	}
	return res
}

// ToCalculatedTotalsData converts domain.CalculatedTotals to the response form.
func ToCalculatedTotalsData(t domain.CalculatedTotals) CalculatedTotalsData {
	return CalculatedTotalsData{
		TotalCommonEntries:         t.TotalCommonEntries,
		TotalReceivedPayments:      t.TotalReceivedPayments,
		TotalGrossEntries:          t.TotalGrossEntries,
		TotalElectronicEntries:     t.TotalElectronicEntries,
		TotalStoreOperationalExits: t.TotalStoreOperationalExits,
		TotalAdminOperationalExits: t.TotalAdminOperationalExits,
		TotalNewReceivables:        t.TotalNewReceivables,
		TotalGeneralExits:          t.TotalGeneralExits,
		PartialResult:              t.PartialResult,
		CashReconciliationValue:    t.CashReconciliationValue,
	}
}

// ToOperationalExitResponses converts domain exits to response DTOs.
func ToOperationalExitResponses(exits []domain.OperationalExit) []OperationalExitResponse {
	res := make([]OperationalExitResponse, len(exits))
	for i, e := range exits {
		res[i] = OperationalExitResponse{
			ExitID:      e.ExitID,
			Scope:       string(e.Scope),
			Name:        e.Name,
			Amount:      e.Amount,
			PaymentDate: e.PaymentDate,
		}
	}
	return res
}
