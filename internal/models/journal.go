package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// Journal is a row of the journals table. Lines live in transactions.
type Journal struct {
	JournalID          string          `db:"journal_id"`
	JournalNumber      string          `db:"journal_number"`
	JournalDate        time.Time       `db:"journal_date"`
	Description        string          `db:"description"`
	Reference          string          `db:"reference"`
	SourceType         string          `db:"source_type"`
	SourceID           *string         `db:"source_id"`
	CurrencyCode       string          `db:"currency_code"`
	Status             JournalStatus   `db:"status"`
	OriginalJournalID  *string         `db:"original_journal_id"`
	ReversingJournalID *string         `db:"reversing_journal_id"`
	Amount             decimal.Decimal `db:"amount"`
	PostedAt           *time.Time      `db:"posted_at"`
	PostedBy           *string         `db:"posted_by"`
	AuditFields
}
