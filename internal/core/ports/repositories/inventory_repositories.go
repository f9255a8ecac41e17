package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

type ScaffoldFilter struct {
	Category string
	IsActive *bool
	Page
}

type ScaffoldReader interface {
	FindScaffoldByID(ctx context.Context, scaffoldID string) (*domain.Scaffold, error)
	// FindScaffoldsByIDs returns the scaffolds found keyed by ID.
	FindScaffoldsByIDs(ctx context.Context, scaffoldIDs []string) (map[string]domain.Scaffold, error)
	ListScaffolds(ctx context.Context, filter ScaffoldFilter) ([]domain.Scaffold, error)
	ListStockMovements(ctx context.Context, scaffoldID string, page Page) ([]domain.StockMovement, error)
}

type ScaffoldWriter interface {
	SaveScaffold(ctx context.Context, scaffold domain.Scaffold) error
	UpdateScaffold(ctx context.Context, scaffold domain.Scaffold) error
	SetScaffoldActive(ctx context.Context, scaffoldID string, active bool, userID string, now time.Time) error
	// ApplyStockChanges runs ApplyStockChangesInTx in its own DB transaction.
	ApplyStockChanges(ctx context.Context, changes []domain.StockChange, userID string, now time.Time) error
}

// ScaffoldTransactionSupport lets other repositories move stock inside their own DB transaction.
type ScaffoldTransactionSupport interface {
	// ApplyStockChangesInTx locks the scaffolds, applies the deltas and records a stock movement per change.
	// It returns ErrConflict when a change would push available below zero or above total.
	ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.StockChange, userID string, now time.Time) error
}

type ScaffoldRepositoryFacade interface {
	ScaffoldReader
	ScaffoldWriter
	ScaffoldTransactionSupport
}
