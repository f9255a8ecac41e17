package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type CustomerSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actorID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string, actorID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListPartiesParams, actorID string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actorID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID string, actorID string) error
}

type SupplierSvc interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, actorID string) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, supplierID string, actorID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params dto.ListPartiesParams, actorID string) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, actorID string) (*domain.Supplier, error)
	DeactivateSupplier(ctx context.Context, supplierID string, actorID string) error
}
