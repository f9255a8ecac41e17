package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// JournalFilter narrows ListJournals. Nil fields are not applied.
type JournalFilter struct {
	Status     *domain.JournalStatus
	SourceType *domain.JournalSourceType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	NextToken  *string
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its transactions.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalBySource returns the non-reversal journal created for a business source, or ErrNotFound.
	FindJournalBySource(ctx context.Context, sourceType domain.JournalSourceType, sourceID string) (*domain.Journal, error)

	// ListJournals returns journals newest first (without transactions) and a token for the next page.
	ListJournals(ctx context.Context, filter JournalFilter) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data.
// Posted journals are never updated except for the REVERSED status and link.
type JournalWriter interface {
	// SaveDraftJournal inserts a DRAFT journal and its transactions.
	SaveDraftJournal(ctx context.Context, journal domain.Journal) error

	// ReplaceDraftJournal updates the header and replaces all transactions of a DRAFT journal.
	// Returns ErrConflict when the journal is no longer a draft.
	ReplaceDraftJournal(ctx context.Context, journal domain.Journal) error

	// DeleteDraftJournal removes a DRAFT journal. Returns ErrConflict when it is not a draft.
	DeleteDraftJournal(ctx context.Context, journalID string) error

	// PostJournal moves a DRAFT journal to POSTED: locks the affected accounts, applies
	// balance changes and stamps running balances, all in one DB transaction.
	PostJournal(ctx context.Context, journalID string, userID string, now time.Time) (*domain.Journal, error)

	// SavePostedJournal inserts and posts a new journal in one DB transaction.
	SavePostedJournal(ctx context.Context, journal domain.Journal) error

	// ReverseJournal inserts and posts the reversal, marks the original REVERSED and links both,
	// in one DB transaction. Returns ErrConflict if the original is not POSTED.
	ReverseJournal(ctx context.Context, originalJournalID string, reversal domain.Journal) error
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactionsByAccountID lists lines of posted journals for an account, newest first.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	TransactionReader
}
