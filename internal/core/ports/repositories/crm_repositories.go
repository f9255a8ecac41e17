package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// PartyFilter narrows customer and supplier lists.
type PartyFilter struct {
	IsActive *bool
	Search   string // Case-insensitive match on code or name
	Page
}

type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, filter PartyFilter) ([]domain.Customer, error)
	SetCustomerActive(ctx context.Context, customerID string, active bool, userID string, now time.Time) error
}

type SupplierRepository interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, filter PartyFilter) ([]domain.Supplier, error)
	SetSupplierActive(ctx context.Context, supplierID string, active bool, userID string, now time.Time) error
}
