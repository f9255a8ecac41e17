package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string, actorID string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts, optionally filtered.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams, actorID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}

// AccountSeederSvc installs the default chart of accounts.
type AccountSeederSvc interface {
	// SeedChartOfAccounts inserts missing chart accounts and returns how many were added.
	SeedChartOfAccounts(ctx context.Context, actorID string) (*dto.SeedAccountsResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountSeederSvc
}
