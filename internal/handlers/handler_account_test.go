package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type AccountHandlerTestSuite struct {
	apiSuite
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

// decimalPtr returns a pointer to the provided decimal.Decimal value.
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func (s *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1020", Name: "Petty Cash", AccountType: domain.Asset}
	s.accountService.On("CreateAccount", mock.Anything, req, testUserID).Return(&domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1020",
		Name:        "Petty Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/accounting/accounts", req)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AccountResponse
	s.decode(w, &resp)
	s.Equal("1020", resp.Code)
	s.True(resp.Balance.IsZero())
}

func (s *AccountHandlerTestSuite) TestCreateAccount_BindingRejectsUnknownType() {
	w := s.do(http.MethodPost, "/api/v1/accounting/accounts", `{"code":"1020","name":"Petty Cash","accountType":"CASH"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.accountService.AssertNotCalled(s.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountHandlerTestSuite) TestCreateAccount_ServiceErrors() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"parent type mismatch", apperrors.NewValidationFailedError("parent account must have type ASSET"), http.StatusBadRequest, "parent account"},
		{"duplicate code", apperrors.NewDuplicateError("account code 1020 already exists"), http.StatusConflict, "1020"},
		{"forbidden", apperrors.NewForbiddenError("missing permission accounting:write"), http.StatusForbidden, "accounting:write"},
		{"database failure", errors.New("connection reset by peer"), http.StatusInternalServerError, "Failed to create account"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.accountService.On("CreateAccount", mock.Anything, mock.Anything, testUserID).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/api/v1/accounting/accounts",
				dto.CreateAccountRequest{Code: "1020", Name: "Petty Cash", AccountType: domain.Asset})

			s.Equal(tt.wantStatus, w.Code)
			msg := s.errorMessage(w)
			s.Contains(msg, tt.wantError)
			s.NotContains(msg, "connection reset")
		})
	}
}

func (s *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	s.accountService.On("GetAccountByID", mock.Anything, accountID, testUserID).
		Return(nil, apperrors.NewNotFoundError("account "+accountID+" not found")).Once()

	w := s.do(http.MethodGet, "/api/v1/accounting/accounts/"+accountID, nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AccountHandlerTestSuite) TestListAccounts_FiltersByType() {
	revenue := domain.Revenue
	s.accountService.On("ListAccounts", mock.Anything, mock.MatchedBy(func(p dto.ListAccountsParams) bool {
		return p.AccountType != nil && *p.AccountType == revenue && p.IsActive == nil
	}), testUserID).Return([]domain.Account{
		{AccountID: uuid.NewString(), Code: "4000", Name: "Rental Revenue", AccountType: domain.Revenue},
		{AccountID: uuid.NewString(), Code: "4100", Name: "Sales Revenue", AccountType: domain.Revenue},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounting/accounts?type=REVENUE", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	s.decode(w, &resp)
	s.Len(resp.Accounts, 2)
	s.Equal("4100", resp.Accounts[1].Code)
}

func (s *AccountHandlerTestSuite) TestDeactivateAccount_SystemAccountConflict() {
	accountID := uuid.NewString()
	s.accountService.On("DeactivateAccount", mock.Anything, accountID, testUserID).
		Return(apperrors.NewConflictError("system account 1200 cannot be deactivated")).Once()

	w := s.do(http.MethodDelete, "/api/v1/accounting/accounts/"+accountID, nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *AccountHandlerTestSuite) TestSeedAccounts() {
	s.accountService.On("SeedChartOfAccounts", mock.Anything, testUserID).
		Return(&dto.SeedAccountsResponse{Inserted: 13, Total: 14}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/accounting/accounts/seed", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.SeedAccountsResponse
	s.decode(w, &resp)
	s.Equal(dto.SeedAccountsResponse{Inserted: 13, Total: 14}, resp)
}

func (s *AccountHandlerTestSuite) TestListTransactionsByAccount_Success() {
	accountID := uuid.NewString()
	limit := 10
	next := "MjAyNi0wNS0wMXwyMDI2LTA1LTAxVDEwOjAwOjAwWg=="

	expectedTransactions := []dto.TransactionResponse{
		{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Amount:          decimal.NewFromInt(100),
			TransactionType: domain.Debit,
			RunningBalance:  decimalPtr(decimal.NewFromInt(150)),
			CreatedAt:       time.Now(),
		},
		{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Amount:          decimal.NewFromInt(50),
			TransactionType: domain.Credit,
			RunningBalance:  decimalPtr(decimal.NewFromInt(50)),
			CreatedAt:       time.Now().Add(-time.Hour),
		},
	}
	s.journalService.On("ListTransactionsByAccount",
		mock.Anything,
		accountID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit && p.NextToken == ""
		}),
		testUserID,
	).Return(&dto.ListTransactionsResponse{Transactions: expectedTransactions, NextToken: &next}, nil).Once()

	w := s.do(http.MethodGet, fmt.Sprintf("/api/v1/accounting/accounts/%s/transactions?limit=%d", accountID, limit), nil)

	s.Require().Equal(http.StatusOK, w.Code, "Expected status OK")
	var responseBody dto.ListTransactionsResponse
	s.decode(w, &responseBody)
	s.Require().Len(responseBody.Transactions, len(expectedTransactions))
	s.Equal(expectedTransactions[0].TransactionID, responseBody.Transactions[0].TransactionID)
	s.True(responseBody.Transactions[0].RunningBalance.Equal(decimal.NewFromInt(150)))
	s.Require().NotNil(responseBody.NextToken)
	s.Equal(next, *responseBody.NextToken)
	s.accountService.AssertNotCalled(s.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountHandlerTestSuite) TestListTransactionsByAccount_LimitTooLarge() {
	w := s.do(http.MethodGet, "/api/v1/accounting/accounts/"+uuid.NewString()+"/transactions?limit=500", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorMessage(w), "Invalid query parameters")
}
