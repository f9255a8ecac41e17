package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,numeric,min=4,max=10"`
	Name            string             `json:"name" binding:"required,max=150"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID" binding:"omitempty,uuid"`
	Description     string             `json:"description"`
}

// UpdateAccountRequest uses pointers to distinguish between zero-value updates and omitted fields.
type UpdateAccountRequest struct {
	Name            *string             `json:"name" binding:"omitempty,min=1,max=150"`
	Description     *string             `json:"description"`
	ParentAccountID *string             `json:"parentAccountID" binding:"omitempty,uuid"`
	AccountType     *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

type ListAccountsParams struct {
	AccountType *domain.AccountType `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsActive    *bool               `form:"active"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID *string            `json:"parentAccountID,omitempty"`
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	IsSystem        bool               `json:"isSystem"`
	Balance         decimal.Decimal    `json:"balance"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		IsSystem:        acc.IsSystem,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

func ToListAccountResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// SeedAccountsResponse reports how many chart accounts were inserted.
type SeedAccountsResponse struct {
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}
