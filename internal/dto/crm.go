package dto

import "github.com/SscSPs/scaffold_erp/internal/core/domain"

type CreateCustomerRequest struct {
	Code        string `json:"code" binding:"required,max=30"`
	Name        string `json:"name" binding:"required,max=150"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	TaxID       string `json:"taxID"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest uses pointers so omitted fields stay untouched.
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	CompanyName *string `json:"companyName"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	TaxID       *string `json:"taxID"`
	Notes       *string `json:"notes"`
}

type CreateSupplierRequest struct {
	Code          string `json:"code" binding:"required,max=30"`
	Name          string `json:"name" binding:"required,max=150"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"taxID"`
	Notes         string `json:"notes"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=150"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	TaxID         *string `json:"taxID"`
	Notes         *string `json:"notes"`
}

// ListPartiesParams filters customers and suppliers.
type ListPartiesParams struct {
	ListParams
	Search   string `form:"q"`
	IsActive *bool  `form:"active"`
}

type ListCustomersResponse = ListResponse[domain.Customer]
type ListSuppliersResponse = ListResponse[domain.Supplier]
