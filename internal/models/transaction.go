package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string           `db:"transaction_id"`
	JournalID       string           `db:"journal_id"`
	AccountID       string           `db:"account_id"`
	Amount          decimal.Decimal  `db:"amount"`
	TransactionType TransactionType  `db:"transaction_type"`
	CurrencyCode    string           `db:"currency_code"`
	Notes           string           `db:"notes"`
	RunningBalance  *decimal.Decimal `db:"running_balance"` // NULL until the journal is posted
	AuditFields

	// JournalDate is joined from journals for cursor pagination; it is not a column of transactions.
	JournalDate time.Time `db:"-"`
}
