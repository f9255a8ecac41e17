package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams, actorID string) ([]domain.Account, error) {
	args := m.Called(ctx, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	args := m.Called(ctx, accountID, actorID)
	return args.Error(0)
}

func (m *MockAccountService) SeedChartOfAccounts(ctx context.Context, actorID string) (*dto.SeedAccountsResponse, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SeedAccountsResponse), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string, actorID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams, actorID string) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actorID string) (*domain.Journal, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) UpdateDraftJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) DeleteDraftJournal(ctx context.Context, journalID string, actorID string) error {
	args := m.Called(ctx, journalID, actorID)
	return args.Error(0)
}

func (m *MockJournalService) PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest, actorID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams, actorID string) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Mock AutoPostingService ---
type MockAutoPostingService struct {
	mock.Mock
}

func (m *MockAutoPostingService) HandleBusinessEvent(ctx context.Context, env events.Envelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

func (m *MockAutoPostingService) Replay(ctx context.Context, req dto.ReplayAutoPostingRequest, actorID string) (*domain.Journal, bool, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Journal), args.Bool(1), args.Error(2)
}

// --- Mock ContractService ---
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) contractResult(args mock.Arguments) (*domain.Contract, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractService) GetContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, contractID, actorID))
}

func (m *MockContractService) ListContracts(ctx context.Context, params dto.ListContractsParams, actorID string) ([]domain.Contract, error) {
	args := m.Called(ctx, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractService) ListPayments(ctx context.Context, contractID string, actorID string) ([]domain.Payment, error) {
	args := m.Called(ctx, contractID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockContractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, req, actorID))
}

func (m *MockContractService) UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, contractID, req, actorID))
}

func (m *MockContractService) SignContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, contractID, actorID))
}

func (m *MockContractService) InvoiceContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, contractID, actorID))
}

func (m *MockContractService) RecordPayment(ctx context.Context, contractID string, req dto.RecordPaymentRequest, actorID string) (*domain.Payment, *domain.Contract, error) {
	args := m.Called(ctx, contractID, req, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Contract), args.Error(2)
}

func (m *MockContractService) CompleteContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, contractID, actorID))
}

func (m *MockContractService) CancelContract(ctx context.Context, contractID string, actorID string) (*domain.Contract, error) {
	return m.contractResult(m.Called(ctx, contractID, actorID))
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time, actorID string) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, asOf, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time, actorID string) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, from, to time.Time, actorID string) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, from, to, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}

func (m *MockReportingService) GeneralLedger(ctx context.Context, from, to time.Time, accountID *string, actorID string) (*domain.GeneralLedgerReport, error) {
	args := m.Called(ctx, from, to, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedgerReport), args.Error(1)
}

func (m *MockReportingService) AccountStatement(ctx context.Context, accountID string, from, to time.Time, actorID string) (*domain.AccountStatement, error) {
	args := m.Called(ctx, accountID, from, to, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStatement), args.Error(1)
}

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) GenerateSalary(ctx context.Context, req dto.GenerateSalaryRequest, actorID string) (*domain.Salary, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockPayrollService) PaySalary(ctx context.Context, salaryID string, req dto.PaySalaryRequest, actorID string) (*domain.Salary, error) {
	args := m.Called(ctx, salaryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockPayrollService) GetSalary(ctx context.Context, salaryID string, actorID string) (*domain.Salary, error) {
	args := m.Called(ctx, salaryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockPayrollService) ListSalaries(ctx context.Context, params dto.ListSalariesParams, actorID string) ([]domain.Salary, error) {
	args := m.Called(ctx, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Salary), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.AuthSvc           = (*MockAuthService)(nil)
	_ portssvc.AccountSvcFacade  = (*MockAccountService)(nil)
	_ portssvc.JournalSvcFacade  = (*MockJournalService)(nil)
	_ portssvc.AutoPostingSvc    = (*MockAutoPostingService)(nil)
	_ portssvc.ContractSvcFacade = (*MockContractService)(nil)
	_ portssvc.ReportingSvc      = (*MockReportingService)(nil)
	_ portssvc.PayrollSvc        = (*MockPayrollService)(nil)
)
