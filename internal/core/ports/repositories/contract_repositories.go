package repositories

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

type ContractFilter struct {
	Status     *domain.ContractStatus
	CustomerID *string
	Page
}

type ContractReader interface {
	// FindContractByID returns the contract with its items.
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, filter ContractFilter) ([]domain.Contract, error)
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, contractID string) ([]domain.Payment, error)
}

type ContractWriter interface {
	SaveContract(ctx context.Context, contract domain.Contract) error
	// UpdateDraftContract rewrites header and items of a DRAFT contract. ErrConflict otherwise.
	UpdateDraftContract(ctx context.Context, contract domain.Contract) error
	// TransitionContract persists the new status and lifecycle fields of contract, only if the stored
	// status still equals from, and applies stock changes in the same DB transaction.
	TransitionContract(ctx context.Context, contract domain.Contract, from domain.ContractStatus, stock []domain.StockChange) error
	// AddPayment locks the contract, checks the amount against the outstanding balance, stores the
	// payment and updates paid amount and payment status. It returns the updated contract.
	AddPayment(ctx context.Context, payment domain.Payment) (*domain.Contract, error)
}

type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}

type PurchaseFilter struct {
	Status     *domain.PurchaseStatus
	SupplierID *string
	Page
}

type PurchaseReader interface {
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, filter PurchaseFilter) ([]domain.Purchase, error)
}

type PurchaseWriter interface {
	SavePurchase(ctx context.Context, purchase domain.Purchase) error
	// TransitionPurchase works like TransitionContract for purchases.
	TransitionPurchase(ctx context.Context, purchase domain.Purchase, from domain.PurchaseStatus, stock []domain.StockChange) error
}

type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
