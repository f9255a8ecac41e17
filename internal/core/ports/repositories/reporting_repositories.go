package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// LedgerLineRow is a ledger line tagged with its account.
type LedgerLineRow struct {
	AccountID string
	domain.LedgerLine
}

// ReportingRepository aggregates POSTED and REVERSED journals for financial reports.
// Drafts never contribute.
type ReportingRepository interface {
	// GetAccountActivity sums debits and credits per account for journals dated in [from, to].
	// A nil from means "since the beginning". Accounts without activity are omitted.
	GetAccountActivity(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountActivity, error)

	// GetLedgerLines returns lines dated in [from, to], ordered by account code, journal date,
	// creation time and transaction ID. A nil accountID returns lines for all accounts.
	GetLedgerLines(ctx context.Context, accountID *string, from, to time.Time) ([]LedgerLineRow, error)
}
