package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalSourceType records what created a journal.
type JournalSourceType string

const (
	SourceManual          JournalSourceType = "MANUAL"
	SourceContractInvoice JournalSourceType = "CONTRACT_INVOICE"
	SourcePayment         JournalSourceType = "PAYMENT"
	SourcePurchase        JournalSourceType = "PURCHASE"
	SourceSalary          JournalSourceType = "SALARY"
	SourceSaleCost        JournalSourceType = "CONTRACT_SALE_COST"
	SourceReversal        JournalSourceType = "REVERSAL"
)

// IsValid reports whether s is a known source type.
func (s JournalSourceType) IsValid() bool {
	switch s {
	case SourceManual, SourceContractInvoice, SourcePayment, SourcePurchase, SourceSalary, SourceSaleCost, SourceReversal:
		return true
	}
	return false
}

// Journal represents a single, balanced financial event composed of multiple transactions.
type Journal struct {
	JournalID          string            `json:"journalID"`
	JournalNumber      string            `json:"journalNumber"` // JE-YYYYMMDD-XXXXXX
	JournalDate        time.Time         `json:"journalDate"`
	Description        string            `json:"description"`
	Reference          string            `json:"reference"`
	SourceType         JournalSourceType `json:"sourceType"`
	SourceID           *string           `json:"sourceID,omitempty"`
	CurrencyCode       string            `json:"currencyCode"`
	Status             JournalStatus     `json:"status"`
	OriginalJournalID  *string           `json:"originalJournalID,omitempty"`  // Set on a reversal, points at the reversed journal
	ReversingJournalID *string           `json:"reversingJournalID,omitempty"` // Set on a reversed journal
	Amount             decimal.Decimal   `json:"amount"`                       // Sum of debits
	PostedAt           *time.Time        `json:"postedAt,omitempty"`
	PostedBy           *string           `json:"postedBy,omitempty"`
	Transactions       []Transaction     `json:"transactions,omitempty"`
	AuditFields
}

// IsEditable reports whether the journal may still be changed or deleted.
func (j Journal) IsEditable() bool {
	return j.Status == Draft
}

// IsReversal reports whether the journal was created to reverse another one.
func (j Journal) IsReversal() bool {
	return j.OriginalJournalID != nil && *j.OriginalJournalID != ""
}
