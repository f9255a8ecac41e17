package services

import (
	"context"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type ContractReaderSvc interface {
	GetContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
	ListContracts(ctx context.Context, params dto.ListContractsParams, actorID string) ([]domain.Contract, error)
	ListPayments(ctx context.Context, contractID string, actorID string) ([]domain.Payment, error)
}

// ContractWriterSvc drives the contract lifecycle DRAFT -> SIGNED -> INVOICED -> COMPLETED.
type ContractWriterSvc interface {
	CreateContract(ctx context.Context, req dto.CreateContractRequest, actorID string) (*domain.Contract, error)
	UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, actorID string) (*domain.Contract, error)
	SignContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
	InvoiceContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
	RecordPayment(ctx context.Context, contractID string, req dto.RecordPaymentRequest, actorID string) (*domain.Payment, *domain.Contract, error)
	CompleteContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
	CancelContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error)
}

type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}

type PurchaseSvc interface {
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, actorID string) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string, actorID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, params dto.ListPurchasesParams, actorID string) ([]domain.Purchase, error)
	CompletePurchase(ctx context.Context, purchaseID string, actorID string) (*domain.Purchase, error)
	CancelPurchase(ctx context.Context, purchaseID string, actorID string) (*domain.Purchase, error)
}
