package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

// CustomerService manages the customer book.
type CustomerService struct {
	BaseService
	repo portsrepo.CustomerRepository
}

func NewCustomerService(repo portsrepo.CustomerRepository, opts ...BaseOption) *CustomerService {
	return &CustomerService{BaseService: newBaseService(opts), repo: repo}
}

var _ portssvc.CustomerSvc = (*CustomerService)(nil)

func partyFilter(p dto.ListPartiesParams) portsrepo.PartyFilter {
	return portsrepo.PartyFilter{
		IsActive: p.IsActive,
		Search:   strings.TrimSpace(p.Search),
		Page:     toPage(p.ListParams),
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actorID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMWrite); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || normalizeCode(req.Code) == "" {
		return nil, apperrors.NewValidationFailedError("customer code and name are required")
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Code:        normalizeCode(req.Code),
		Name:        strings.TrimSpace(req.Name),
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		TaxID:       req.TaxID,
		Notes:       req.Notes,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.repo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("code", customer.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string, actorID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMRead); err != nil {
		return nil, err
	}
	customer, err := s.repo.FindCustomerByID(ctx, customerID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, params dto.ListPartiesParams, actorID string) ([]domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMRead); err != nil {
		return nil, err
	}
	customers, err := s.repo.ListCustomers(ctx, partyFilter(params))
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actorID string) (*domain.Customer, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMWrite); err != nil {
		return nil, err
	}
	customer, err := s.repo.FindCustomerByID(ctx, customerID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find customer for update", slog.String("customer_id", customerID))
		return nil, err
	}

	setIfPresent(&customer.Name, req.Name)
	setIfPresent(&customer.CompanyName, req.CompanyName)
	setIfPresent(&customer.Email, req.Email)
	setIfPresent(&customer.Phone, req.Phone)
	setIfPresent(&customer.Address, req.Address)
	setIfPresent(&customer.TaxID, req.TaxID)
	setIfPresent(&customer.Notes, req.Notes)
	if customer.Name == "" {
		return nil, apperrors.NewValidationFailedError("customer name cannot be empty")
	}
	customer.Touch(actorID, s.now())

	if err := s.repo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) DeactivateCustomer(ctx context.Context, customerID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMWrite); err != nil {
		return err
	}
	if err := s.repo.SetCustomerActive(ctx, customerID, false, actorID, s.now()); err != nil {
		s.logLookupError(ctx, err, "Failed to deactivate customer", slog.String("customer_id", customerID))
		return err
	}
	s.LogInfo(ctx, "Customer deactivated", slog.String("customer_id", customerID))
	return nil
}

// SupplierService manages the supplier book.
type SupplierService struct {
	BaseService
	repo portsrepo.SupplierRepository
}

func NewSupplierService(repo portsrepo.SupplierRepository, opts ...BaseOption) *SupplierService {
	return &SupplierService{BaseService: newBaseService(opts), repo: repo}
}

var _ portssvc.SupplierSvc = (*SupplierService)(nil)

func (s *SupplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, actorID string) (*domain.Supplier, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMWrite); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || normalizeCode(req.Code) == "" {
		return nil, apperrors.NewValidationFailedError("supplier code and name are required")
	}

	supplier := domain.Supplier{
		SupplierID:    uuid.NewString(),
		Code:          normalizeCode(req.Code),
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		Notes:         req.Notes,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.repo.SaveSupplier(ctx, supplier); err != nil {
		s.LogError(ctx, err, "Failed to save supplier", slog.String("code", supplier.Code))
		return nil, err
	}
	s.LogInfo(ctx, "Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, supplierID string, actorID string) (*domain.Supplier, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMRead); err != nil {
		return nil, err
	}
	supplier, err := s.repo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find supplier", slog.String("supplier_id", supplierID))
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) ListSuppliers(ctx context.Context, params dto.ListPartiesParams, actorID string) ([]domain.Supplier, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMRead); err != nil {
		return nil, err
	}
	suppliers, err := s.repo.ListSuppliers(ctx, partyFilter(params))
	if err != nil {
		s.LogError(ctx, err, "Failed to list suppliers")
		return nil, err
	}
	return suppliers, nil
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, actorID string) (*domain.Supplier, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMWrite); err != nil {
		return nil, err
	}
	supplier, err := s.repo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find supplier for update", slog.String("supplier_id", supplierID))
		return nil, err
	}

	setIfPresent(&supplier.Name, req.Name)
	setIfPresent(&supplier.ContactPerson, req.ContactPerson)
	setIfPresent(&supplier.Email, req.Email)
	setIfPresent(&supplier.Phone, req.Phone)
	setIfPresent(&supplier.Address, req.Address)
	setIfPresent(&supplier.TaxID, req.TaxID)
	setIfPresent(&supplier.Notes, req.Notes)
	if supplier.Name == "" {
		return nil, apperrors.NewValidationFailedError("supplier name cannot be empty")
	}
	supplier.Touch(actorID, s.now())

	if err := s.repo.UpdateSupplier(ctx, *supplier); err != nil {
		s.LogError(ctx, err, "Failed to update supplier", slog.String("supplier_id", supplierID))
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) DeactivateSupplier(ctx context.Context, supplierID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermCRMWrite); err != nil {
		return err
	}
	if err := s.repo.SetSupplierActive(ctx, supplierID, false, actorID, s.now()); err != nil {
		s.logLookupError(ctx, err, "Failed to deactivate supplier", slog.String("supplier_id", supplierID))
		return err
	}
	s.LogInfo(ctx, "Supplier deactivated", slog.String("supplier_id", supplierID))
	return nil
}
