package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractRental ContractType = "RENTAL"
	ContractSale   ContractType = "SALE"
)

func (t ContractType) IsValid() bool {
	return t == ContractRental || t == ContractSale
}

type ContractStatus string

const (
	ContractDraft     ContractStatus = "DRAFT"
	ContractSigned    ContractStatus = "SIGNED"
	ContractInvoiced  ContractStatus = "INVOICED"
	ContractCompleted ContractStatus = "COMPLETED"
	ContractCancelled ContractStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodCredit       PaymentMethod = "CREDIT" // purchases on supplier credit only
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodCredit:
		return true
	}
	return false
}

// Contract is a rental or sale agreement with a customer.
type Contract struct {
	ContractID     string          `json:"contractID"`
	ContractNumber string          `json:"contractNumber"`
	CustomerID     string          `json:"customerID"`
	ContractType   ContractType    `json:"contractType"`
	Status         ContractStatus  `json:"status"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"` // Rental only
	Items          []ContractItem  `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	SignedAt       *time.Time      `json:"signedAt,omitempty"`
	SignedBy       *string         `json:"signedBy,omitempty"`
	InvoiceNumber  *string         `json:"invoiceNumber,omitempty"`
	InvoicedAt     *time.Time      `json:"invoicedAt,omitempty"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
	Notes          string          `json:"notes"`
	AuditFields
}

// Outstanding is the amount still owed by the customer.
func (c Contract) Outstanding() decimal.Decimal {
	return c.TotalAmount.Sub(c.PaidAmount)
}

// RentalDays is the billed day count of a rental; 1 for sales.
func (c Contract) RentalDays() int {
	if c.ContractType != ContractRental || c.EndDate == nil {
		return 1
	}
	return InclusiveDays(c.StartDate, *c.EndDate)
}

// PaymentStatusFor derives the payment status from paid vs total.
func PaymentStatusFor(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.IsZero() || paid.IsNegative():
		return PaymentUnpaid
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// ContractItem is one equipment line of a contract.
type ContractItem struct {
	ItemID     string          `json:"itemID"`
	ContractID string          `json:"contractID"`
	ScaffoldID string          `json:"scaffoldID"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Days       int             `json:"days"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}

// Payment is money received against a contract.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	ContractID  string          `json:"contractID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	AuditFields
}
