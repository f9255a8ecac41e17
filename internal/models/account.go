package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID *string         `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	IsSystem        bool            `db:"is_system"`
	Balance         decimal.Decimal `db:"balance"` // Persisted balance of posted lines
	AuditFields
}
