package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type InventoryReaderSvc interface {
	GetScaffold(ctx context.Context, scaffoldID string, actorID string) (*domain.Scaffold, error)
	ListScaffolds(ctx context.Context, params dto.ListScaffoldsParams, actorID string) ([]domain.Scaffold, error)
	ListStockMovements(ctx context.Context, scaffoldID string, params dto.ListParams, actorID string) ([]domain.StockMovement, error)
}

type InventoryWriterSvc interface {
	CreateScaffold(ctx context.Context, req dto.CreateScaffoldRequest, actorID string) (*domain.Scaffold, error)
	UpdateScaffold(ctx context.Context, scaffoldID string, req dto.UpdateScaffoldRequest, actorID string) (*domain.Scaffold, error)
	DeactivateScaffold(ctx context.Context, scaffoldID string, actorID string) error

	// AdjustStock applies a manual correction to the total (and available) quantity.
	AdjustStock(ctx context.Context, scaffoldID string, req dto.AdjustStockRequest, actorID string) (*domain.Scaffold, error)
}

type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
