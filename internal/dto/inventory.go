package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

type CreateScaffoldRequest struct {
	Code             string                   `json:"code" binding:"required,max=30"`
	Name             string                   `json:"name" binding:"required,max=150"`
	Category         string                   `json:"category" binding:"required"`
	Unit             string                   `json:"unit" binding:"required"`
	TotalQuantity    int                      `json:"totalQuantity" binding:"min=0"`
	Condition        domain.ScaffoldCondition `json:"condition" binding:"omitempty,oneof=NEW GOOD DAMAGED UNDER_REPAIR"`
	DailyRentalPrice decimal.Decimal          `json:"dailyRentalPrice" binding:"decimal_gte0"`
	SalePrice        decimal.Decimal          `json:"salePrice" binding:"decimal_gte0"`
	UnitCost         decimal.Decimal          `json:"unitCost" binding:"decimal_gte0"`
}

type UpdateScaffoldRequest struct {
	Name             *string                   `json:"name" binding:"omitempty,min=1,max=150"`
	Category         *string                   `json:"category"`
	Unit             *string                   `json:"unit"`
	Condition        *domain.ScaffoldCondition `json:"condition" binding:"omitempty,oneof=NEW GOOD DAMAGED UNDER_REPAIR"`
	DailyRentalPrice *decimal.Decimal          `json:"dailyRentalPrice" binding:"omitempty,decimal_gte0"`
	SalePrice        *decimal.Decimal          `json:"salePrice" binding:"omitempty,decimal_gte0"`
	UnitCost         *decimal.Decimal          `json:"unitCost" binding:"omitempty,decimal_gte0"`
}

// AdjustStockRequest changes total (and available) quantity by a signed delta.
type AdjustStockRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Notes string `json:"notes" binding:"required"`
}

type ListScaffoldsParams struct {
	ListParams
	Category string `form:"category"`
	IsActive *bool  `form:"active"`
}

type ListScaffoldsResponse = ListResponse[domain.Scaffold]
type ListStockMovementsResponse = ListResponse[domain.StockMovement]
