package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows ListAccounts. Nil fields are not applied.
type AccountFilter struct {
	AccountType *domain.AccountType
	IsActive    *bool
}

// AccountReader defines read operations for account data
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	// FindAccountsByIDs returns the accounts found, keyed by ID. Missing IDs are simply absent.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// FindAccountsByCodes returns the accounts found, keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	// HasTransactions reports whether any journal line (draft or posted) references the account.
	HasTransactions(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
	// SeedAccounts inserts accounts whose code does not exist yet and returns how many were inserted.
	SeedAccounts(ctx context.Context, accounts []domain.Account) (int, error)
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx updates the balance for multiple accounts within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
