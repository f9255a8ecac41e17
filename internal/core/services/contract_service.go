package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

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

// ContractService runs rental and sale contracts from draft to completion.
type ContractService struct {
	BaseService
	contractRepo portsrepo.ContractRepositoryFacade
	customerRepo portsrepo.CustomerRepository
	scaffoldRepo portsrepo.ScaffoldReader
	publisher    events.Publisher
}

func NewContractService(
	contractRepo portsrepo.ContractRepositoryFacade,
	customerRepo portsrepo.CustomerRepository,
	scaffoldRepo portsrepo.ScaffoldReader,
	publisher events.Publisher,
	opts ...BaseOption,
) *ContractService {
	return &ContractService{
		BaseService:  newBaseService(opts),
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		scaffoldRepo: scaffoldRepo,
		publisher:    publisher,
	}
}

var _ portssvc.ContractSvcFacade = (*ContractService)(nil)

// contractTerms is the validated, priced content of a create or update request.
type contractTerms struct {
	start    time.Time
	end      *time.Time
	items    []domain.ContractItem
	subtotal decimal.Decimal
	discount decimal.Decimal
}

func (s *ContractService) priceContract(ctx context.Context, contractType domain.ContractType, start, end dto.Date, reqItems []dto.ContractItemRequest, discount decimal.Decimal) (*contractTerms, error) {
	if start.IsZero() {
		return nil, apperrors.NewValidationFailedError("start date is required")
	}
	terms := &contractTerms{start: start.Time, discount: discount}
	days := 1
	if contractType == domain.ContractRental {
		if end.IsZero() {
			return nil, apperrors.NewValidationFailedError("rental contracts need an end date")
		}
		if end.Before(start.Time) {
			return nil, apperrors.NewValidationFailedError("end date must not be before start date")
		}
		terms.end = end.Ptr()
		days = domain.InclusiveDays(start.Time, end.Time)
	}

	if len(reqItems) == 0 {
		return nil, apperrors.NewValidationFailedError("a contract needs at least one item")
	}
	ids := make([]string, 0, len(reqItems))
	for _, it := range reqItems {
		if it.Quantity <= 0 {
			return nil, apperrors.NewValidationFailedError("item quantity must be positive")
		}
		ids = append(ids, it.ScaffoldID)
	}
	scaffolds, err := s.scaffoldRepo.FindScaffoldsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load scaffolds for contract")
		return nil, err
	}

	terms.subtotal = decimal.Zero
	for _, it := range reqItems {
		sc, ok := scaffolds[it.ScaffoldID]
		if !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("scaffold %s not found", it.ScaffoldID))
		}
		if !sc.IsActive {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("scaffold %s is inactive", sc.Code))
		}
		price := sc.DailyRentalPrice
		if contractType == domain.ContractSale {
			price = sc.SalePrice
		}
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		if price.IsNegative() {
			return nil, apperrors.NewValidationFailedError("unit price must not be negative")
		}
		line := price.Mul(decimal.NewFromInt(int64(it.Quantity))).Mul(decimal.NewFromInt(int64(days)))
		terms.items = append(terms.items, domain.ContractItem{
			ItemID:     uuid.NewString(),
			ScaffoldID: it.ScaffoldID,
			Quantity:   it.Quantity,
			UnitPrice:  price,
			Days:       days,
			LineTotal:  line,
		})
		terms.subtotal = terms.subtotal.Add(line)
	}

	if discount.IsNegative() || discount.GreaterThan(terms.subtotal) {
		return nil, apperrors.NewValidationFailedError("discount must be between zero and the subtotal")
	}
	return terms, nil
}

func (t *contractTerms) applyTo(c *domain.Contract) {
	c.StartDate = t.start
	c.EndDate = t.end
	c.Items = t.items
	for i := range c.Items {
		c.Items[i].ContractID = c.ContractID
	}
	c.Subtotal = t.subtotal
	c.Discount = t.discount
	c.TotalAmount = t.subtotal.Sub(t.discount)
	c.PaymentStatus = domain.PaymentStatusFor(c.TotalAmount, c.PaidAmount)
}

func (s *ContractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsWrite); err != nil {
		return nil, err
	}
	if !req.ContractType.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown contract type %q", req.ContractType))
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find customer for contract", slog.String("customer_id", req.CustomerID))
		return nil, apperrors.NewValidationFailedError("customer not found")
	}
	if !customer.IsActive {
		return nil, apperrors.NewValidationFailedError("customer is inactive")
	}

	terms, err := s.priceContract(ctx, req.ContractType, req.StartDate, req.EndDate, req.Items, req.Discount)
	if err != nil {
		return nil, err
	}

	now := s.now()
	number, err := utils.NewDocumentNumber(utils.PrefixContract, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to number contract", err)
	}
	contract := domain.Contract{
		ContractID:     uuid.NewString(),
		ContractNumber: number,
		CustomerID:     customer.CustomerID,
		ContractType:   req.ContractType,
		Status:         domain.ContractDraft,
		PaidAmount:     decimal.Zero,
		Notes:          req.Notes,
		AuditFields:    domain.NewAuditFields(actorID, now),
	}
	terms.applyTo(&contract)

	if err := s.contractRepo.SaveContract(ctx, contract); err != nil {
		s.LogError(ctx, err, "Failed to save contract", slog.String("contract_number", number))
		return nil, err
	}
	s.LogInfo(ctx, "Contract created",
		slog.String("contract_id", contract.ContractID),
		slog.String("contract_number", number),
		slog.String("total", contract.TotalAmount.String()))
	return &contract, nil
}

func (s *ContractService) UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsWrite); err != nil {
		return nil, err
	}
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractDraft {
		return nil, transitionError("contract", "update", contract.Status)
	}

	terms, err := s.priceContract(ctx, contract.ContractType, req.StartDate, req.EndDate, req.Items, req.Discount)
	if err != nil {
		return nil, err
	}
	terms.applyTo(contract)
	if req.Notes != nil {
		contract.Notes = *req.Notes
	}
	contract.Touch(actorID, s.now())

	if err := s.contractRepo.UpdateDraftContract(ctx, *contract); err != nil {
		s.LogError(ctx, err, "Failed to update contract", slog.String("contract_id", contractID))
		return nil, err
	}
	return contract, nil
}

// reservationChanges builds the stock moves for items, aggregated per scaffold.
func reservationChanges(c *domain.Contract, sign int, reason domain.StockMovementReason, notes string, onTotal bool) []domain.StockChange {
	qty := map[string]int{}
	var order []string
	for _, it := range c.Items {
		if _, seen := qty[it.ScaffoldID]; !seen {
			order = append(order, it.ScaffoldID)
		}
		qty[it.ScaffoldID] += it.Quantity
	}
	changes := make([]domain.StockChange, 0, len(order))
	for _, id := range order {
		ch := domain.StockChange{ScaffoldID: id, Reason: reason, ReferenceID: c.ContractID, Notes: notes}
		if onTotal {
			ch.TotalDelta = sign * qty[id]
		} else {
			ch.AvailableDelta = sign * qty[id]
		}
		changes = append(changes, ch)
	}
	return changes
}

func movementFor(t domain.ContractType, rental domain.StockMovementReason) domain.StockMovementReason {
	if t == domain.ContractSale {
		return domain.MovementSale
	}
	return rental
}

// SignContract reserves availability for every item. A shortage on any item fails the
// whole signature with ErrConflict.
func (s *ContractService) SignContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsSign); err != nil {
		return nil, err
	}
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractDraft {
		return nil, transitionError("contract", "sign", contract.Status)
	}

	now := s.now()
	contract.Status = domain.ContractSigned
	contract.SignedAt = &now
	contract.SignedBy = &actorID
	contract.Touch(actorID, now)

	stock := reservationChanges(contract, -1, movementFor(contract.ContractType, domain.MovementRentalOut), "reserved on signature "+contract.ContractNumber, false)
	if err := s.contractRepo.TransitionContract(ctx, *contract, domain.ContractDraft, stock); err != nil {
		s.LogError(ctx, err, "Failed to sign contract", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract signed", slog.String("contract_id", contractID))
	return contract, nil
}

func (s *ContractService) InvoiceContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsWrite); err != nil {
		return nil, err
	}
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractSigned {
		return nil, transitionError("contract", "invoice", contract.Status)
	}

	now := s.now()
	invoiceNumber, err := utils.NewDocumentNumber(utils.PrefixInvoice, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to number invoice", err)
	}
	contract.Status = domain.ContractInvoiced
	contract.InvoiceNumber = &invoiceNumber
	contract.InvoicedAt = &now
	contract.Touch(actorID, now)

	if err := s.contractRepo.TransitionContract(ctx, *contract, domain.ContractSigned, nil); err != nil {
		s.LogError(ctx, err, "Failed to invoice contract", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract invoiced", slog.String("contract_id", contractID), slog.String("invoice_number", invoiceNumber))

	if contract.TotalAmount.IsPositive() {
		s.publishEvent(ctx, s.publisher, contractInvoicedEvent(*contract, actorID))
	}
	return contract, nil
}

func (s *ContractService) RecordPayment(ctx context.Context, contractID string, req dto.RecordPaymentRequest, actorID string) (*domain.Payment, *domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsWrite); err != nil {
		return nil, nil, err
	}
	switch req.Method {
	case domain.MethodCash, domain.MethodBankTransfer, domain.MethodCheque:
	default:
		return nil, nil, apperrors.NewValidationFailedError(fmt.Sprintf("payment method %q is not accepted for contracts", req.Method))
	}
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationFailedError("payment amount must be positive")
	}

	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, nil, err
	}
	if contract.Status != domain.ContractInvoiced && contract.Status != domain.ContractCompleted {
		return nil, nil, transitionError("contract", "record a payment on", contract.Status)
	}
	if req.Amount.GreaterThan(contract.Outstanding()) {
		return nil, nil, apperrors.NewValidationFailedError(fmt.Sprintf(
			"payment %s exceeds outstanding balance %s", req.Amount.String(), contract.Outstanding().String()))
	}

	now := s.now()
	payDate := req.PaymentDate.Time
	if payDate.IsZero() {
		payDate = domain.DateOnly(now)
	}
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		ContractID:  contractID,
		Amount:      req.Amount,
		PaymentDate: payDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	updated, err := s.contractRepo.AddPayment(ctx, payment)
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("contract_id", contractID))
		return nil, nil, err
	}
	s.LogInfo(ctx, "Payment recorded",
		slog.String("contract_id", contractID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()))

	s.publishEvent(ctx, s.publisher, paymentReceivedEvent(payment, *updated))
	return &payment, updated, nil
}

// CompleteContract returns rented units to availability, or removes sold units from stock.
func (s *ContractService) CompleteContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsWrite); err != nil {
		return nil, err
	}
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractInvoiced {
		return nil, transitionError("contract", "complete", contract.Status)
	}

	now := s.now()
	contract.Status = domain.ContractCompleted
	contract.CompletedAt = &now
	contract.Touch(actorID, now)

	var stock []domain.StockChange
	if contract.ContractType == domain.ContractRental {
		stock = reservationChanges(contract, 1, domain.MovementRentalReturn, "returned from "+contract.ContractNumber, false)
	} else {
		stock = reservationChanges(contract, -1, domain.MovementSale, "sold on "+contract.ContractNumber, true)
	}
	if err := s.contractRepo.TransitionContract(ctx, *contract, domain.ContractInvoiced, stock); err != nil {
		s.LogError(ctx, err, "Failed to complete contract", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract completed", slog.String("contract_id", contractID))

	if contract.ContractType == domain.ContractSale {
		s.publishSaleCost(ctx, contract, actorID)
	}
	return contract, nil
}

func (s *ContractService) publishSaleCost(ctx context.Context, contract *domain.Contract, actorID string) {
	ids := make([]string, 0, len(contract.Items))
	for _, it := range contract.Items {
		ids = append(ids, it.ScaffoldID)
	}
	scaffolds, err := s.scaffoldRepo.FindScaffoldsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to value sold units", slog.String("contract_id", contract.ContractID))
		return
	}
	if cost := saleCost(contract.Items, scaffolds); cost.IsPositive() {
		s.publishEvent(ctx, s.publisher, saleDeliveredEvent(*contract, cost, actorID))
	}
}

func (s *ContractService) CancelContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsWrite); err != nil {
		return nil, err
	}
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	from := contract.Status
	if from != domain.ContractDraft && from != domain.ContractSigned {
		return nil, transitionError("contract", "cancel", from)
	}

	contract.Status = domain.ContractCancelled
	contract.Touch(actorID, s.now())

	var stock []domain.StockChange
	if from == domain.ContractSigned {
		stock = reservationChanges(contract, 1, movementFor(contract.ContractType, domain.MovementRentalReturn), "released on cancellation of "+contract.ContractNumber, false)
	}
	if err := s.contractRepo.TransitionContract(ctx, *contract, from, stock); err != nil {
		s.LogError(ctx, err, "Failed to cancel contract", slog.String("contract_id", contractID))
		return nil, err
	}
	s.LogInfo(ctx, "Contract cancelled", slog.String("contract_id", contractID), slog.String("from", string(from)))
	return contract, nil
}

func (s *ContractService) GetContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsRead); err != nil {
		return nil, err
	}
	return s.loadContract(ctx, contractID)
}

func (s *ContractService) ListContracts(ctx context.Context, params dto.ListContractsParams, actorID string) ([]domain.Contract, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsRead); err != nil {
		return nil, err
	}
	contracts, err := s.contractRepo.ListContracts(ctx, portsrepo.ContractFilter{
		Status:     params.Status,
		CustomerID: params.CustomerID,
		Page:       toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list contracts")
		return nil, err
	}
	return contracts, nil
}

func (s *ContractService) ListPayments(ctx context.Context, contractID string, actorID string) ([]domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermContractsRead); err != nil {
		return nil, err
	}
	if _, err := s.loadContract(ctx, contractID); err != nil {
		return nil, err
	}
	payments, err := s.contractRepo.ListPayments(ctx, contractID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("contract_id", contractID))
		return nil, err
	}
	return payments, nil
}

func (s *ContractService) loadContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find contract", slog.String("contract_id", contractID))
		return nil, err
	}
	return contract, nil
}
