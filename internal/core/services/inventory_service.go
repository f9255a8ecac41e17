package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

// InventoryService manages scaffold items and their stock.
type InventoryService struct {
	BaseService
	repo portsrepo.ScaffoldRepositoryFacade
}

func NewInventoryService(repo portsrepo.ScaffoldRepositoryFacade, opts ...BaseOption) *InventoryService {
	return &InventoryService{BaseService: newBaseService(opts), repo: repo}
}

var _ portssvc.InventorySvcFacade = (*InventoryService)(nil)

func nonNegative(name string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperrors.NewValidationFailedError(name + " must not be negative")
	}
	return nil
}

func (s *InventoryService) CreateScaffold(ctx context.Context, req dto.CreateScaffoldRequest, actorID string) (*domain.Scaffold, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryWrite); err != nil {
		return nil, err
	}
	if req.TotalQuantity < 0 {
		return nil, apperrors.NewValidationFailedError("total quantity must not be negative")
	}
	for name, price := range map[string]decimal.Decimal{
		"daily rental price": req.DailyRentalPrice,
		"sale price":         req.SalePrice,
		"unit cost":          req.UnitCost,
	} {
		if err := nonNegative(name, price); err != nil {
			return nil, err
		}
	}
	condition := req.Condition
	if condition == "" {
		condition = domain.ConditionNew
	}
	if !condition.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown condition %q", condition))
	}

	scaffold := domain.Scaffold{
		ScaffoldID:        uuid.NewString(),
		Code:              normalizeCode(req.Code),
		Name:              strings.TrimSpace(req.Name),
		Category:          strings.TrimSpace(req.Category),
		Unit:              strings.TrimSpace(req.Unit),
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.TotalQuantity,
		Condition:         condition,
		DailyRentalPrice:  req.DailyRentalPrice,
		SalePrice:         req.SalePrice,
		UnitCost:          req.UnitCost,
		IsActive:          true,
		AuditFields:       domain.NewAuditFields(actorID, s.now()),
	}
	if scaffold.Code == "" || scaffold.Name == "" {
		return nil, apperrors.NewValidationFailedError("scaffold code and name are required")
	}
	if err := s.repo.SaveScaffold(ctx, scaffold); err != nil {
		s.LogError(ctx, err, "Failed to save scaffold", slog.String("code", scaffold.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Scaffold created", slog.String("scaffold_id", scaffold.ScaffoldID), slog.Int("quantity", scaffold.TotalQuantity))
	return &scaffold, nil
}

func (s *InventoryService) GetScaffold(ctx context.Context, scaffoldID string, actorID string) (*domain.Scaffold, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryRead); err != nil {
		return nil, err
	}
	scaffold, err := s.repo.FindScaffoldByID(ctx, scaffoldID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find scaffold", slog.String("scaffold_id", scaffoldID))
		return nil, err
	}
	return scaffold, nil
}

func (s *InventoryService) ListScaffolds(ctx context.Context, params dto.ListScaffoldsParams, actorID string) ([]domain.Scaffold, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryRead); err != nil {
		return nil, err
	}
	scaffolds, err := s.repo.ListScaffolds(ctx, portsrepo.ScaffoldFilter{
		Category: strings.TrimSpace(params.Category),
		IsActive: params.IsActive,
		Page:     toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list scaffolds")
		return nil, err
	}
	return scaffolds, nil
}

func (s *InventoryService) UpdateScaffold(ctx context.Context, scaffoldID string, req dto.UpdateScaffoldRequest, actorID string) (*domain.Scaffold, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryWrite); err != nil {
		return nil, err
	}
	scaffold, err := s.repo.FindScaffoldByID(ctx, scaffoldID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find scaffold for update", slog.String("scaffold_id", scaffoldID))
		return nil, err
	}

	setIfPresent(&scaffold.Name, req.Name)
	setIfPresent(&scaffold.Category, req.Category)
	setIfPresent(&scaffold.Unit, req.Unit)
	if req.Condition != nil {
		if !req.Condition.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown condition %q", *req.Condition))
		}
		scaffold.Condition = *req.Condition
	}
	prices := []struct {
		name string
		src  *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"daily rental price", req.DailyRentalPrice, &scaffold.DailyRentalPrice},
		{"sale price", req.SalePrice, &scaffold.SalePrice},
		{"unit cost", req.UnitCost, &scaffold.UnitCost},
	}
	for _, p := range prices {
		if p.src == nil {
			continue
		}
		if err := nonNegative(p.name, *p.src); err != nil {
			return nil, err
		}
		*p.dst = *p.src
	}
	if scaffold.Name == "" {
		return nil, apperrors.NewValidationFailedError("scaffold name cannot be empty")
	}
	scaffold.Touch(actorID, s.now())

	if err := s.repo.UpdateScaffold(ctx, *scaffold); err != nil {
		s.LogError(ctx, err, "Failed to update scaffold", slog.String("scaffold_id", scaffoldID))
		return nil, err
	}
	return scaffold, nil
}

func (s *InventoryService) DeactivateScaffold(ctx context.Context, scaffoldID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryWrite); err != nil {
		return err
	}
	if err := s.repo.SetScaffoldActive(ctx, scaffoldID, false, actorID, s.now()); err != nil {
		s.logLookupError(ctx, err, "Failed to deactivate scaffold", slog.String("scaffold_id", scaffoldID))
		return err
	}
	s.LogInfo(ctx, "Scaffold deactivated", slog.String("scaffold_id", scaffoldID))
	return nil
}

// AdjustStock moves total and available quantity together. Units out on rent cannot be
// written off, so the new total must stay at or above the rented-out count.
func (s *InventoryService) AdjustStock(ctx context.Context, scaffoldID string, req dto.AdjustStockRequest, actorID string) (*domain.Scaffold, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryWrite); err != nil {
		return nil, err
	}
	if req.Delta == 0 {
		return nil, apperrors.NewValidationFailedError("delta must not be zero")
	}
	scaffold, err := s.repo.FindScaffoldByID(ctx, scaffoldID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find scaffold for adjustment", slog.String("scaffold_id", scaffoldID))
		return nil, err
	}
	newTotal := scaffold.TotalQuantity + req.Delta
	if newTotal < 0 || scaffold.AvailableQuantity+req.Delta < 0 {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf(
			"adjustment of %d would leave %d units with %d rented out", req.Delta, newTotal, scaffold.RentedOut()))
	}

	now := s.now()
	change := domain.StockChange{
		ScaffoldID:     scaffoldID,
		TotalDelta:     req.Delta,
		AvailableDelta: req.Delta,
		Reason:         domain.MovementAdjustment,
		Notes:          req.Notes,
	}
	if err := s.repo.ApplyStockChanges(ctx, []domain.StockChange{change}, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to adjust stock", slog.String("scaffold_id", scaffoldID), slog.Int("delta", req.Delta))
		return nil, err
	}

	scaffold.TotalQuantity = newTotal
	scaffold.AvailableQuantity += req.Delta
	scaffold.Touch(actorID, now)
	s.LogInfo(ctx, "Stock adjusted", slog.String("scaffold_id", scaffoldID), slog.Int("delta", req.Delta))
	return scaffold, nil
}

func (s *InventoryService) ListStockMovements(ctx context.Context, scaffoldID string, params dto.ListParams, actorID string) ([]domain.StockMovement, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermInventoryRead); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindScaffoldByID(ctx, scaffoldID); err != nil {
		s.logLookupError(ctx, err, "Failed to find scaffold", slog.String("scaffold_id", scaffoldID))
		return nil, err
	}
	movements, err := s.repo.ListStockMovements(ctx, scaffoldID, toPage(params))
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements", slog.String("scaffold_id", scaffoldID))
		return nil, err
	}
	return movements, nil
}
