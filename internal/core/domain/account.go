package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account is a node of the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Chart code, unique (e.g. "1100")
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID *string         `json:"parentAccountID"` // Nullable FK -> accounts.account_id (Self-referencing)
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	IsSystem        bool            `json:"isSystem"` // Seeded accounts used by posting rules
	Balance         decimal.Decimal `json:"balance"`  // Persisted balance of posted lines, signed by normal side
	AuditFields
}
