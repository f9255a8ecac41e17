package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

type AutoPostingServiceTestSuite struct {
	suite.Suite
	accountRepo  *MockAccountRepository
	journalRepo  *MockJournalRepository
	contractRepo *MockContractRepository
	service      *services.AutoPostingService
	ctx          context.Context
	occurred     time.Time
}

func (s *AutoPostingServiceTestSuite) SetupTest() {
	rules, err := ledgerconfig.LoadPostingRules("")
	s.Require().NoError(err)

	s.accountRepo = new(MockAccountRepository)
	s.journalRepo = new(MockJournalRepository)
	s.contractRepo = new(MockContractRepository)
	s.service = services.NewAutoPostingService(rules, services.AutoPostingRepos{
		Accounts:  s.accountRepo,
		Journals:  s.journalRepo,
		Contracts: s.contractRepo,
	}, "IDR", services.WithClock(fixedClock(time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC))))
	s.ctx = context.Background()
	s.occurred = time.Date(2026, 5, 1, 16, 45, 0, 0, time.UTC)
}

func TestAutoPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutoPostingServiceTestSuite))
}

func chartAccountsByCode(codes ...string) map[string]domain.Account {
	out := make(map[string]domain.Account, len(codes))
	for _, c := range codes {
		out[c] = domain.Account{AccountID: "acc-" + c, Code: c, Name: "Account " + c, IsActive: true}
	}
	return out
}

func (s *AutoPostingServiceTestSuite) paymentEvent(method domain.PaymentMethod) events.Envelope {
	env := events.New(events.PaymentReceived, "pay-1", decimal.NewFromInt(400000), "user-1", s.occurred)
	env.Method = string(method)
	env.Reference = "INV-20260420-ABCD"
	env.Description = "Payment for contract CT-20260401-WXYZ"
	return env
}

func (s *AutoPostingServiceTestSuite) TestHandle_PaymentByBankDebitsBank() {
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(nil, apperrors.ErrNotFound)
	s.accountRepo.On("FindAccountsByCodes", s.ctx, []string{"1010", "1200"}).Return(chartAccountsByCode("1010", "1200"), nil)
	s.journalRepo.On("SavePostedJournal", s.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Status == domain.Posted &&
			j.SourceType == domain.SourcePayment &&
			j.SourceID != nil && *j.SourceID == "pay-1" &&
			j.JournalDate.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) &&
			j.Description == "Payment received INV-20260420-ABCD" &&
			len(j.Transactions) == 2 &&
			j.Transactions[0].AccountID == "acc-1010" && j.Transactions[0].TransactionType == domain.Debit &&
			j.Transactions[1].AccountID == "acc-1200" && j.Transactions[1].TransactionType == domain.Credit &&
			j.Transactions[0].Amount.Equal(decimal.NewFromInt(400000))
	})).Return(nil)

	err := s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodBankTransfer))

	s.Require().NoError(err)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *AutoPostingServiceTestSuite) TestHandle_PaymentInCashDebitsCash() {
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(nil, apperrors.ErrNotFound)
	s.accountRepo.On("FindAccountsByCodes", s.ctx, []string{"1000", "1200"}).Return(chartAccountsByCode("1000", "1200"), nil)
	s.journalRepo.On("SavePostedJournal", s.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Transactions[0].AccountID == "acc-1000"
	})).Return(nil)

	s.Require().NoError(s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodCash)))
	s.journalRepo.AssertExpectations(s.T())
}

func (s *AutoPostingServiceTestSuite) TestHandle_AlreadyPostedIsNoOp() {
	sourceID := "pay-1"
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").
		Return(&domain.Journal{JournalID: "j-9", SourceID: &sourceID, Status: domain.Posted}, nil)

	err := s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodCash))

	s.NoError(err)
	s.journalRepo.AssertNotCalled(s.T(), "SavePostedJournal", mock.Anything, mock.Anything)
	s.accountRepo.AssertNotCalled(s.T(), "FindAccountsByCodes", mock.Anything, mock.Anything)
}

func (s *AutoPostingServiceTestSuite) TestHandle_DuplicateRaceReturnsStoredJournal() {
	stored := &domain.Journal{JournalID: "j-7", Status: domain.Posted}
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(nil, apperrors.ErrNotFound).Once()
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(stored, nil).Once()
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(chartAccountsByCode("1000", "1200"), nil)
	s.journalRepo.On("SavePostedJournal", s.ctx, mock.Anything).Return(apperrors.NewDuplicateError("journal for source exists"))

	err := s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodCash))

	s.NoError(err)
	s.journalRepo.AssertNumberOfCalls(s.T(), "FindJournalBySource", 2)
}

func (s *AutoPostingServiceTestSuite) TestHandle_MissingAccountFails() {
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(nil, apperrors.ErrNotFound)
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(chartAccountsByCode("1000"), nil)

	err := s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodCash))

	s.ErrorIs(err, apperrors.ErrValidation)
	s.journalRepo.AssertNotCalled(s.T(), "SavePostedJournal", mock.Anything, mock.Anything)
}

func (s *AutoPostingServiceTestSuite) TestHandle_InactiveAccountFails() {
	accounts := chartAccountsByCode("1000", "1200")
	cash := accounts["1000"]
	cash.IsActive = false
	accounts["1000"] = cash
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(nil, apperrors.ErrNotFound)
	s.accountRepo.On("FindAccountsByCodes", s.ctx, mock.Anything).Return(accounts, nil)

	err := s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodCash))

	s.ErrorIs(err, services.ErrInactiveAccount)
}

func (s *AutoPostingServiceTestSuite) TestHandle_UnknownEventTypeIsSkipped() {
	env := events.New(events.Type("inventory.counted"), "cnt-1", decimal.NewFromInt(1), "user-1", s.occurred)

	s.NoError(s.service.HandleBusinessEvent(s.ctx, env))
	s.journalRepo.AssertNotCalled(s.T(), "FindJournalBySource", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AutoPostingServiceTestSuite) TestHandle_LookupFailurePropagates() {
	boom := errors.New("connection reset")
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourcePayment, "pay-1").Return(nil, boom)

	err := s.service.HandleBusinessEvent(s.ctx, s.paymentEvent(domain.MethodCash))

	s.ErrorIs(err, boom)
}

func (s *AutoPostingServiceTestSuite) TestReplay_SaleInvoiceCreditsEquipmentSales() {
	inv := "INV-20260420-ABCD"
	invoicedAt := s.occurred
	contract := &domain.Contract{
		ContractID:     "c-1",
		ContractNumber: "CT-20260401-WXYZ",
		ContractType:   domain.ContractSale,
		Status:         domain.ContractInvoiced,
		TotalAmount:    decimal.NewFromInt(900000),
		InvoiceNumber:  &inv,
		InvoicedAt:     &invoicedAt,
	}
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(contract, nil)
	s.journalRepo.On("FindJournalBySource", s.ctx, domain.SourceContractInvoice, "c-1").Return(nil, apperrors.ErrNotFound)
	s.accountRepo.On("FindAccountsByCodes", s.ctx, []string{"1200", "4100"}).Return(chartAccountsByCode("1200", "4100"), nil)
	s.journalRepo.On("SavePostedJournal", s.ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Reference == inv && j.Transactions[1].AccountID == "acc-4100"
	})).Return(nil)

	journal, created, err := s.service.Replay(s.ctx, dto.ReplayAutoPostingRequest{
		SourceType: domain.SourceContractInvoice,
		SourceID:   "c-1",
	}, "user-1")

	s.Require().NoError(err)
	s.True(created)
	s.Equal(domain.SourceContractInvoice, journal.SourceType)
}

func (s *AutoPostingServiceTestSuite) TestReplay_UninvoicedContractIsConflict() {
	s.contractRepo.On("FindContractByID", s.ctx, "c-1").Return(&domain.Contract{ContractID: "c-1", Status: domain.ContractSigned}, nil)

	_, _, err := s.service.Replay(s.ctx, dto.ReplayAutoPostingRequest{
		SourceType: domain.SourceContractInvoice,
		SourceID:   "c-1",
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *AutoPostingServiceTestSuite) TestReplay_ManualSourceRejected() {
	_, _, err := s.service.Replay(s.ctx, dto.ReplayAutoPostingRequest{
		SourceType: domain.SourceManual,
		SourceID:   "x",
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}
