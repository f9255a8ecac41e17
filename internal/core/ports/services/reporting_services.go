package services

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// ReportingSvc builds financial reports from posted and reversed journals.
type ReportingSvc interface {
	TrialBalance(ctx context.Context, asOf time.Time, actorID string) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time, actorID string) (*domain.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context, from, to time.Time, actorID string) (*domain.IncomeStatementReport, error)
	GeneralLedger(ctx context.Context, from, to time.Time, accountID *string, actorID string) (*domain.GeneralLedgerReport, error)
	AccountStatement(ctx context.Context, accountID string, from, to time.Time, actorID string) (*domain.AccountStatement, error)
}

// SystemReportingSvc is the unauthenticated entry used by the CLI.
type SystemReportingSvc interface {
	SystemTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)
}
