package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
	"github.com/SscSPs/scaffold_erp/internal/utils"
)

type PurchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	supplierRepo portsrepo.SupplierRepository
	scaffoldRepo portsrepo.ScaffoldReader
	publisher    events.Publisher
}

func NewPurchaseService(
	purchaseRepo portsrepo.PurchaseRepositoryFacade,
	supplierRepo portsrepo.SupplierRepository,
	scaffoldRepo portsrepo.ScaffoldReader,
	publisher events.Publisher,
	opts ...BaseOption,
) *PurchaseService {
	return &PurchaseService{
		BaseService:  newBaseService(opts),
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		scaffoldRepo: scaffoldRepo,
		publisher:    publisher,
	}
}

var _ portssvc.PurchaseSvc = (*PurchaseService)(nil)

func (s *PurchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, actorID string) (*domain.Purchase, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPurchasesWrite); err != nil {
		return nil, err
	}
	switch req.PaymentMethod {
	case domain.MethodCash, domain.MethodBankTransfer, domain.MethodCredit:
	default:
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("payment method %q is not accepted for purchases", req.PaymentMethod))
	}
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationFailedError("a purchase needs at least one item")
	}

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find supplier for purchase", slog.String("supplier_id", req.SupplierID))
		return nil, apperrors.NewValidationFailedError("supplier not found")
	}
	if !supplier.IsActive {
		return nil, apperrors.NewValidationFailedError("supplier is inactive")
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apperrors.NewValidationFailedError("item quantity must be positive")
		}
		if it.UnitCost.IsNegative() {
			return nil, apperrors.NewValidationFailedError("unit cost must not be negative")
		}
		ids = append(ids, it.ScaffoldID)
	}
	scaffolds, err := s.scaffoldRepo.FindScaffoldsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load scaffolds for purchase")
		return nil, err
	}

	now := s.now()
	number, err := utils.NewDocumentNumber(utils.PrefixPurchase, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to number purchase", err)
	}
	orderDate := req.OrderDate.Time
	if orderDate.IsZero() {
		orderDate = domain.DateOnly(now)
	}
	purchase := domain.Purchase{
		PurchaseID:     uuid.NewString(),
		PurchaseNumber: number,
		SupplierID:     supplier.SupplierID,
		Status:         domain.PurchaseDraft,
		OrderDate:      orderDate,
		TotalAmount:    decimal.Zero,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		AuditFields:    domain.NewAuditFields(actorID, now),
	}
	for _, it := range req.Items {
		if _, ok := scaffolds[it.ScaffoldID]; !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("scaffold %s not found", it.ScaffoldID))
		}
		line := it.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity)))
		purchase.Items = append(purchase.Items, domain.PurchaseItem{
			ItemID:     uuid.NewString(),
			PurchaseID: purchase.PurchaseID,
			ScaffoldID: it.ScaffoldID,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
			LineTotal:  line,
		})
		purchase.TotalAmount = purchase.TotalAmount.Add(line)
	}

	if err := s.purchaseRepo.SavePurchase(ctx, purchase); err != nil {
		s.LogError(ctx, err, "Failed to save purchase", slog.String("purchase_number", number))
		return nil, err
	}
	s.LogInfo(ctx, "Purchase created",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("purchase_number", number))
	return &purchase, nil
}

func (s *PurchaseService) GetPurchase(ctx context.Context, purchaseID string, actorID string) (*domain.Purchase, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPurchasesRead); err != nil {
		return nil, err
	}
	return s.loadPurchase(ctx, purchaseID)
}

func (s *PurchaseService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams, actorID string) ([]domain.Purchase, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPurchasesRead); err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.ListPurchases(ctx, portsrepo.PurchaseFilter{
		Status:     params.Status,
		SupplierID: params.SupplierID,
		Page:       toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases")
		return nil, err
	}
	return purchases, nil
}

// CompletePurchase receives the ordered units into stock. The latest purchase cost
// becomes the scaffold's unit cost.
func (s *PurchaseService) CompletePurchase(ctx context.Context, purchaseID string, actorID string) (*domain.Purchase, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPurchasesWrite); err != nil {
		return nil, err
	}
	purchase, err := s.loadPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchaseDraft {
		return nil, transitionError("purchase", "complete", purchase.Status)
	}

	now := s.now()
	purchase.Status = domain.PurchaseCompleted
	purchase.CompletedAt = &now
	purchase.Touch(actorID, now)

	stock := make([]domain.StockChange, 0, len(purchase.Items))
	for _, it := range purchase.Items {
		cost := it.UnitCost
		stock = append(stock, domain.StockChange{
			ScaffoldID:     it.ScaffoldID,
			TotalDelta:     it.Quantity,
			AvailableDelta: it.Quantity,
			Reason:         domain.MovementPurchase,
			ReferenceID:    purchase.PurchaseID,
			Notes:          "received on " + purchase.PurchaseNumber,
			UnitCost:       &cost,
		})
	}
	if err := s.purchaseRepo.TransitionPurchase(ctx, *purchase, domain.PurchaseDraft, stock); err != nil {
		s.LogError(ctx, err, "Failed to complete purchase", slog.String("purchase_id", purchaseID))
		return nil, err
	}
	s.LogInfo(ctx, "Purchase completed",
		slog.String("purchase_id", purchaseID),
		slog.String("total", purchase.TotalAmount.String()))

	if purchase.TotalAmount.IsPositive() {
		s.publishEvent(ctx, s.publisher, purchaseCompletedEvent(*purchase, actorID))
	}
	return purchase, nil
}

func (s *PurchaseService) CancelPurchase(ctx context.Context, purchaseID string, actorID string) (*domain.Purchase, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPurchasesWrite); err != nil {
		return nil, err
	}
	purchase, err := s.loadPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchaseDraft {
		return nil, transitionError("purchase", "cancel", purchase.Status)
	}
	purchase.Status = domain.PurchaseCancelled
	purchase.Touch(actorID, s.now())

	if err := s.purchaseRepo.TransitionPurchase(ctx, *purchase, domain.PurchaseDraft, nil); err != nil {
		s.LogError(ctx, err, "Failed to cancel purchase", slog.String("purchase_id", purchaseID))
		return nil, err
	}
	return purchase, nil
}

func (s *PurchaseService) loadPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find purchase", slog.String("purchase_id", purchaseID))
		return nil, err
	}
	return purchase, nil
}
