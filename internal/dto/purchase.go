package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

type PurchaseItemRequest struct {
	ScaffoldID string          `json:"scaffoldID" binding:"required,uuid"`
	Quantity   int             `json:"quantity" binding:"required,gt=0"`
	UnitCost   decimal.Decimal `json:"unitCost" binding:"decimal_gte0"`
}

type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplierID" binding:"required,uuid"`
	OrderDate     Date                  `json:"orderDate"`
	PaymentMethod domain.PaymentMethod  `json:"paymentMethod" binding:"required,oneof=CASH BANK_TRANSFER CREDIT"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes         string                `json:"notes"`
}

type ListPurchasesParams struct {
	ListParams
	Status     *domain.PurchaseStatus `form:"status" binding:"omitempty,oneof=DRAFT COMPLETED CANCELLED"`
	SupplierID *string                `form:"supplierID" binding:"omitempty,uuid"`
}

type ListPurchasesResponse = ListResponse[domain.Purchase]
