package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	chart       *ledgerconfig.Chart
	service     *services.AccountService
	ctx         context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	chart, err := ledgerconfig.DefaultChart()
	s.Require().NoError(err)
	s.chart = chart
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.accountRepo, chart)
	s.ctx = context.Background()
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	s.accountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1020" && a.Name == "Petty Cash" && a.IsActive && !a.IsSystem && a.Balance.IsZero()
	})).Return(nil)

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code: " 1020 ", Name: "Petty Cash", AccountType: domain.Asset,
	}, "user-1")

	s.Require().NoError(err)
	s.Equal("1020", account.Code)
	s.accountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	parentID := "acc-5900"
	s.accountRepo.On("FindAccountByID", s.ctx, parentID).Return(&domain.Account{AccountID: parentID, Code: "5900", AccountType: domain.Expense}, nil)

	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code: "1021", Name: "Till", AccountType: domain.Asset, ParentAccountID: &parentID,
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.accountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	s.accountRepo.On("SaveAccount", s.ctx, mock.Anything).Return(apperrors.NewDuplicateError("account code 1000 exists"))

	_, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}, "user-1")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_TypeLockedOnceUsed() {
	revenue := domain.Revenue
	s.accountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1", Name: "Misc", AccountType: domain.Expense}, nil)
	s.accountRepo.On("HasTransactions", s.ctx, "acc-1").Return(true, nil)

	_, err := s.service.UpdateAccount(s.ctx, "acc-1", dto.UpdateAccountRequest{AccountType: &revenue}, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.accountRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_SelfParent() {
	self := "acc-1"
	s.accountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1", Name: "Misc", AccountType: domain.Expense}, nil)

	_, err := s.service.UpdateAccount(s.ctx, "acc-1", dto.UpdateAccountRequest{ParentAccountID: &self}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_SystemAccountRefused() {
	s.accountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1", Code: "1000", IsSystem: true, Balance: decimal.Zero}, nil)

	err := s.service.DeactivateAccount(s.ctx, "acc-1", "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.accountRepo.AssertNotCalled(s.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalanceRefused() {
	s.accountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1", Code: "1020", Balance: decimal.NewFromInt(5)}, nil)

	err := s.service.DeactivateAccount(s.ctx, "acc-1", "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	s.accountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(&domain.Account{AccountID: "acc-1", Code: "1020", Balance: decimal.Zero}, nil)
	s.accountRepo.On("DeactivateAccount", s.ctx, "acc-1", "user-1", mock.Anything).Return(nil)

	s.NoError(s.service.DeactivateAccount(s.ctx, "acc-1", "user-1"))
	s.accountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestSeedChartOfAccounts_SkipsExistingCodes() {
	existing := map[string]domain.Account{
		"1000": {AccountID: "acc-cash", Code: "1000"},
	}
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(existing, nil)
	s.accountRepo.On("SeedAccounts", s.ctx, mock.MatchedBy(func(accs []domain.Account) bool {
		if len(accs) != len(s.chart.Accounts)-1 {
			return false
		}
		for _, a := range accs {
			if a.Code == "1000" || !a.IsSystem {
				return false
			}
		}
		return true
	})).Return(len(s.chart.Accounts)-1, nil)

	resp, err := s.service.SeedChartOfAccounts(s.ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(len(s.chart.Accounts)-1, resp.Inserted)
	s.Equal(len(s.chart.Accounts), resp.Total)
}
