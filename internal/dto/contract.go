package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// ContractItemRequest is one equipment line. A nil UnitPrice takes the scaffold's list price.
type ContractItemRequest struct {
	ScaffoldID string           `json:"scaffoldID" binding:"required,uuid"`
	Quantity   int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unitPrice" binding:"omitempty,decimal_gte0"`
}

type CreateContractRequest struct {
	CustomerID   string                `json:"customerID" binding:"required,uuid"`
	ContractType domain.ContractType   `json:"contractType" binding:"required,oneof=RENTAL SALE"`
	StartDate    Date                  `json:"startDate"`
	EndDate      Date                  `json:"endDate"`
	Items        []ContractItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal       `json:"discount" binding:"decimal_gte0"`
	Notes        string                `json:"notes"`
}

type UpdateContractRequest struct {
	StartDate Date                  `json:"startDate"`
	EndDate   Date                  `json:"endDate"`
	Items     []ContractItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount  decimal.Decimal       `json:"discount" binding:"decimal_gte0"`
	Notes     *string               `json:"notes"`
}

type RecordPaymentRequest struct {
	Amount      decimal.Decimal      `json:"amount" binding:"decimal_gt0"`
	PaymentDate Date                 `json:"paymentDate"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
}

type ListContractsParams struct {
	ListParams
	Status     *domain.ContractStatus `form:"status" binding:"omitempty,oneof=DRAFT SIGNED INVOICED COMPLETED CANCELLED"`
	CustomerID *string                `form:"customerID" binding:"omitempty,uuid"`
}

type ListContractsResponse = ListResponse[domain.Contract]

// RecordPaymentResponse returns the stored payment with the contract's new balance.
type RecordPaymentResponse struct {
	Payment  domain.Payment  `json:"payment"`
	Contract domain.Contract `json:"contract"`
}
