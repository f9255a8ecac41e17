package domain

import "github.com/shopspring/decimal"

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Opposite flips a debit into a credit and vice versa.
func (t TransactionType) Opposite() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// Transaction represents a single line item within a Journal, affecting one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	TransactionType TransactionType `json:"transactionType"`
	CurrencyCode    string          `json:"currencyCode"` // Must match Journal currency
	Notes           string          `json:"notes"`
	// RunningBalance is the account balance right after this line, stamped when the journal is posted.
	RunningBalance *decimal.Decimal `json:"runningBalance,omitempty"`
	AuditFields
}
