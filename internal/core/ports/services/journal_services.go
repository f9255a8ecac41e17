package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its lines.
	GetJournalByID(ctx context.Context, journalID string, actorID string) (*domain.Journal, error)

	// ListJournals retrieves a cursor-paginated list of journals, newest first.
	ListJournals(ctx context.Context, params dto.ListJournalsParams, actorID string) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal stores a draft, or stores and posts it when req.Post is set.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error)

	// UpdateDraftJournal replaces the header and lines of a draft journal.
	UpdateDraftJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*domain.Journal, error)

	DeleteDraftJournal(ctx context.Context, journalID string, actorID string) error

	// PostJournal moves a draft to POSTED and applies it to account balances.
	PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error)

	// ReverseJournal posts a mirror journal and marks the original REVERSED.
	ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest, actorID string) (*domain.Journal, error)
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactionsByAccount retrieves posted lines of an account.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams, actorID string) (*dto.ListTransactionsResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	TransactionReaderSvc
}
