package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	"github.com/SscSPs/scaffold_erp/internal/events"
)

// --- Users and roles ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, page portsrepo.Page) ([]domain.User, error) {
	args := m.Called(ctx, page)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user domain.User, firstUserRole string) (*domain.Role, error) {
	args := m.Called(ctx, user, firstUserRole)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, now time.Time) error {
	return m.Called(ctx, userID, active, updatedBy, now).Error(0)
}

type MockRoleRepository struct{ mock.Mock }

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	var roles []domain.Role
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.Role)
	}
	return roles, args.Error(1)
}

func (m *MockRoleRepository) FindRolesByUserID(ctx context.Context, userID string) ([]domain.Role, error) {
	args := m.Called(ctx, userID)
	var roles []domain.Role
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.Role)
	}
	return roles, args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockRoleRepository) ReplaceRolePermissions(ctx context.Context, roleID string, permissions []domain.Permission, updatedBy string, now time.Time) error {
	return m.Called(ctx, roleID, permissions, updatedBy, now).Error(0)
}

func (m *MockRoleRepository) AssignRole(ctx context.Context, userID, roleID, assignedBy string, now time.Time) error {
	return m.Called(ctx, userID, roleID, assignedBy, now).Error(0)
}

func (m *MockRoleRepository) RevokeRole(ctx context.Context, userID, roleID string) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

// --- Accounting ---

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	var accs map[string]domain.Account
	if args.Get(0) != nil {
		accs = args.Get(0).(map[string]domain.Account)
	}
	return accs, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	var accs map[string]domain.Account
	if args.Get(0) != nil {
		accs = args.Get(0).(map[string]domain.Account)
	}
	return accs, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	var accs []domain.Account
	if args.Get(0) != nil {
		accs = args.Get(0).([]domain.Account)
	}
	return accs, args.Error(1)
}

func (m *MockAccountRepository) HasTransactions(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	return m.Called(ctx, accountID, userID, now).Error(0)
}

func (m *MockAccountRepository) SeedAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	args := m.Called(ctx, accounts)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	var accs map[string]domain.Account
	if args.Get(0) != nil {
		accs = args.Get(0).(map[string]domain.Account)
	}
	return accs, args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, tx, balanceChanges, userID, now).Error(0)
}

type MockJournalRepository struct{ mock.Mock }

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) FindJournalBySource(ctx context.Context, sourceType domain.JournalSourceType, sourceID string) (*domain.Journal, error) {
	args := m.Called(ctx, sourceType, sourceID)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, filter)
	var js []domain.Journal
	if args.Get(0) != nil {
		js = args.Get(0).([]domain.Journal)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return js, next, args.Error(2)
}

func (m *MockJournalRepository) SaveDraftJournal(ctx context.Context, journal domain.Journal) error {
	return m.Called(ctx, journal).Error(0)
}

func (m *MockJournalRepository) ReplaceDraftJournal(ctx context.Context, journal domain.Journal) error {
	return m.Called(ctx, journal).Error(0)
}

func (m *MockJournalRepository) DeleteDraftJournal(ctx context.Context, journalID string) error {
	return m.Called(ctx, journalID).Error(0)
}

func (m *MockJournalRepository) PostJournal(ctx context.Context, journalID string, userID string, now time.Time) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, userID, now)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) SavePostedJournal(ctx context.Context, journal domain.Journal) error {
	return m.Called(ctx, journal).Error(0)
}

func (m *MockJournalRepository) ReverseJournal(ctx context.Context, originalJournalID string, reversal domain.Journal) error {
	return m.Called(ctx, originalJournalID, reversal).Error(0)
}

func (m *MockJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

type MockReportingRepository struct{ mock.Mock }

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, from, to)
	var rows []domain.AccountActivity
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.AccountActivity)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetLedgerLines(ctx context.Context, accountID *string, from, to time.Time) ([]portsrepo.LedgerLineRow, error) {
	args := m.Called(ctx, accountID, from, to)
	var rows []portsrepo.LedgerLineRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]portsrepo.LedgerLineRow)
	}
	return rows, args.Error(1)
}

// --- CRM, inventory and contracts ---

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	var c *domain.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, filter portsrepo.PartyFilter) ([]domain.Customer, error) {
	args := m.Called(ctx, filter)
	var cs []domain.Customer
	if args.Get(0) != nil {
		cs = args.Get(0).([]domain.Customer)
	}
	return cs, args.Error(1)
}

func (m *MockCustomerRepository) SetCustomerActive(ctx context.Context, customerID string, active bool, userID string, now time.Time) error {
	return m.Called(ctx, customerID, active, userID, now).Error(0)
}

type MockSupplierRepository struct{ mock.Mock }

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	var sp *domain.Supplier
	if args.Get(0) != nil {
		sp = args.Get(0).(*domain.Supplier)
	}
	return sp, args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, filter portsrepo.PartyFilter) ([]domain.Supplier, error) {
	args := m.Called(ctx, filter)
	var sps []domain.Supplier
	if args.Get(0) != nil {
		sps = args.Get(0).([]domain.Supplier)
	}
	return sps, args.Error(1)
}

func (m *MockSupplierRepository) SetSupplierActive(ctx context.Context, supplierID string, active bool, userID string, now time.Time) error {
	return m.Called(ctx, supplierID, active, userID, now).Error(0)
}

type MockPurchaseRepository struct{ mock.Mock }

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	var p *domain.Purchase
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Purchase)
	}
	return p, args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, filter portsrepo.PurchaseFilter) ([]domain.Purchase, error) {
	args := m.Called(ctx, filter)
	var ps []domain.Purchase
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Purchase)
	}
	return ps, args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	return m.Called(ctx, purchase).Error(0)
}

func (m *MockPurchaseRepository) TransitionPurchase(ctx context.Context, purchase domain.Purchase, from domain.PurchaseStatus, stock []domain.StockChange) error {
	return m.Called(ctx, purchase, from, stock).Error(0)
}

type MockScaffoldRepository struct{ mock.Mock }

func (m *MockScaffoldRepository) FindScaffoldByID(ctx context.Context, scaffoldID string) (*domain.Scaffold, error) {
	args := m.Called(ctx, scaffoldID)
	var s *domain.Scaffold
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Scaffold)
	}
	return s, args.Error(1)
}

func (m *MockScaffoldRepository) FindScaffoldsByIDs(ctx context.Context, scaffoldIDs []string) (map[string]domain.Scaffold, error) {
	args := m.Called(ctx, scaffoldIDs)
	var s map[string]domain.Scaffold
	if args.Get(0) != nil {
		s = args.Get(0).(map[string]domain.Scaffold)
	}
	return s, args.Error(1)
}

func (m *MockScaffoldRepository) ListScaffolds(ctx context.Context, filter portsrepo.ScaffoldFilter) ([]domain.Scaffold, error) {
	args := m.Called(ctx, filter)
	var s []domain.Scaffold
	if args.Get(0) != nil {
		s = args.Get(0).([]domain.Scaffold)
	}
	return s, args.Error(1)
}

func (m *MockScaffoldRepository) ListStockMovements(ctx context.Context, scaffoldID string, page portsrepo.Page) ([]domain.StockMovement, error) {
	args := m.Called(ctx, scaffoldID, page)
	var s []domain.StockMovement
	if args.Get(0) != nil {
		s = args.Get(0).([]domain.StockMovement)
	}
	return s, args.Error(1)
}

func (m *MockScaffoldRepository) SaveScaffold(ctx context.Context, scaffold domain.Scaffold) error {
	return m.Called(ctx, scaffold).Error(0)
}

func (m *MockScaffoldRepository) UpdateScaffold(ctx context.Context, scaffold domain.Scaffold) error {
	return m.Called(ctx, scaffold).Error(0)
}

func (m *MockScaffoldRepository) SetScaffoldActive(ctx context.Context, scaffoldID string, active bool, userID string, now time.Time) error {
	return m.Called(ctx, scaffoldID, active, userID, now).Error(0)
}

func (m *MockScaffoldRepository) ApplyStockChanges(ctx context.Context, changes []domain.StockChange, userID string, now time.Time) error {
	return m.Called(ctx, changes, userID, now).Error(0)
}

func (m *MockScaffoldRepository) ApplyStockChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.StockChange, userID string, now time.Time) error {
	return m.Called(ctx, tx, changes, userID, now).Error(0)
}

type MockContractRepository struct{ mock.Mock }

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	var c *domain.Contract
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Contract)
	}
	return c, args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, filter portsrepo.ContractFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, filter)
	var cs []domain.Contract
	if args.Get(0) != nil {
		cs = args.Get(0).([]domain.Contract)
	}
	return cs, args.Error(1)
}

func (m *MockContractRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	var p *domain.Payment
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Payment)
	}
	return p, args.Error(1)
}

func (m *MockContractRepository) ListPayments(ctx context.Context, contractID string) ([]domain.Payment, error) {
	args := m.Called(ctx, contractID)
	var ps []domain.Payment
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Payment)
	}
	return ps, args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) UpdateDraftContract(ctx context.Context, contract domain.Contract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *MockContractRepository) TransitionContract(ctx context.Context, contract domain.Contract, from domain.ContractStatus, stock []domain.StockChange) error {
	return m.Called(ctx, contract, from, stock).Error(0)
}

func (m *MockContractRepository) AddPayment(ctx context.Context, payment domain.Payment) (*domain.Contract, error) {
	args := m.Called(ctx, payment)
	var c *domain.Contract
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Contract)
	}
	return c, args.Error(1)
}

// --- HR ---

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	var e *domain.Employee
	if args.Get(0) != nil {
		e = args.Get(0).(*domain.Employee)
	}
	return e, args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, filter portsrepo.EmployeeFilter) ([]domain.Employee, error) {
	args := m.Called(ctx, filter)
	var es []domain.Employee
	if args.Get(0) != nil {
		es = args.Get(0).([]domain.Employee)
	}
	return es, args.Error(1)
}

func (m *MockEmployeeRepository) SetEmployeeActive(ctx context.Context, employeeID string, active bool, userID string, now time.Time) error {
	return m.Called(ctx, employeeID, active, userID, now).Error(0)
}

type MockAttendanceRepository struct{ mock.Mock }

func (m *MockAttendanceRepository) UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error) {
	args := m.Called(ctx, attendance)
	var a *domain.Attendance
	if args.Get(0) != nil {
		a = args.Get(0).(*domain.Attendance)
	}
	return a, args.Error(1)
}

func (m *MockAttendanceRepository) ListAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, employeeID, from, to)
	var as []domain.Attendance
	if args.Get(0) != nil {
		as = args.Get(0).([]domain.Attendance)
	}
	return as, args.Error(1)
}

func (m *MockAttendanceRepository) CountAttendanceByStatus(ctx context.Context, employeeID string, from, to time.Time) (map[domain.AttendanceStatus]int, error) {
	args := m.Called(ctx, employeeID, from, to)
	var counts map[domain.AttendanceStatus]int
	if args.Get(0) != nil {
		counts = args.Get(0).(map[domain.AttendanceStatus]int)
	}
	return counts, args.Error(1)
}

type MockLeaveRepository struct{ mock.Mock }

func (m *MockLeaveRepository) SaveLeave(ctx context.Context, leave domain.LeaveRequest) error {
	return m.Called(ctx, leave).Error(0)
}

func (m *MockLeaveRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, leaveID)
	var l *domain.LeaveRequest
	if args.Get(0) != nil {
		l = args.Get(0).(*domain.LeaveRequest)
	}
	return l, args.Error(1)
}

func (m *MockLeaveRepository) ListLeaves(ctx context.Context, filter portsrepo.LeaveFilter) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, filter)
	var ls []domain.LeaveRequest
	if args.Get(0) != nil {
		ls = args.Get(0).([]domain.LeaveRequest)
	}
	return ls, args.Error(1)
}

func (m *MockLeaveRepository) FindOverlappingLeaves(ctx context.Context, employeeID string, from, to time.Time, statuses []domain.LeaveStatus) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, employeeID, from, to, statuses)
	var ls []domain.LeaveRequest
	if args.Get(0) != nil {
		ls = args.Get(0).([]domain.LeaveRequest)
	}
	return ls, args.Error(1)
}

func (m *MockLeaveRepository) UpdateLeaveStatus(ctx context.Context, leave domain.LeaveRequest, from domain.LeaveStatus) error {
	return m.Called(ctx, leave, from).Error(0)
}

type MockIncentiveRepository struct{ mock.Mock }

func (m *MockIncentiveRepository) SaveIncentive(ctx context.Context, incentive domain.Incentive) error {
	return m.Called(ctx, incentive).Error(0)
}

func (m *MockIncentiveRepository) FindIncentiveByID(ctx context.Context, incentiveID string) (*domain.Incentive, error) {
	args := m.Called(ctx, incentiveID)
	var i *domain.Incentive
	if args.Get(0) != nil {
		i = args.Get(0).(*domain.Incentive)
	}
	return i, args.Error(1)
}

func (m *MockIncentiveRepository) ListIncentives(ctx context.Context, filter portsrepo.IncentiveFilter) ([]domain.Incentive, error) {
	args := m.Called(ctx, filter)
	var is []domain.Incentive
	if args.Get(0) != nil {
		is = args.Get(0).([]domain.Incentive)
	}
	return is, args.Error(1)
}

func (m *MockIncentiveRepository) ListUnsettledIncentives(ctx context.Context, employeeID, period string) ([]domain.Incentive, error) {
	args := m.Called(ctx, employeeID, period)
	var is []domain.Incentive
	if args.Get(0) != nil {
		is = args.Get(0).([]domain.Incentive)
	}
	return is, args.Error(1)
}

func (m *MockIncentiveRepository) DeleteUnsettledIncentive(ctx context.Context, incentiveID string) error {
	return m.Called(ctx, incentiveID).Error(0)
}

type MockSalaryRepository struct{ mock.Mock }

func (m *MockSalaryRepository) SaveSalary(ctx context.Context, salary domain.Salary, incentiveIDs []string) error {
	return m.Called(ctx, salary, incentiveIDs).Error(0)
}

func (m *MockSalaryRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	args := m.Called(ctx, salaryID)
	var s *domain.Salary
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Salary)
	}
	return s, args.Error(1)
}

func (m *MockSalaryRepository) ListSalaries(ctx context.Context, filter portsrepo.SalaryFilter) ([]domain.Salary, error) {
	args := m.Called(ctx, filter)
	var ss []domain.Salary
	if args.Get(0) != nil {
		ss = args.Get(0).([]domain.Salary)
	}
	return ss, args.Error(1)
}

func (m *MockSalaryRepository) MarkSalaryPaid(ctx context.Context, salary domain.Salary) error {
	return m.Called(ctx, salary).Error(0)
}

// --- Events ---

// recordingPublisher keeps every published envelope.
type recordingPublisher struct {
	published []events.Envelope
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, env events.Envelope) error {
	p.published = append(p.published, env)
	return p.err
}

// fixedClock returns a clock option pinned to at.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

var (
	_ portsrepo.UserRepositoryFacade     = (*MockUserRepository)(nil)
	_ portsrepo.RoleRepositoryFacade     = (*MockRoleRepository)(nil)
	_ portsrepo.AccountRepositoryFacade  = (*MockAccountRepository)(nil)
	_ portsrepo.JournalRepositoryFacade  = (*MockJournalRepository)(nil)
	_ portsrepo.ReportingRepository      = (*MockReportingRepository)(nil)
	_ portsrepo.CustomerRepository       = (*MockCustomerRepository)(nil)
	_ portsrepo.SupplierRepository       = (*MockSupplierRepository)(nil)
	_ portsrepo.PurchaseRepositoryFacade = (*MockPurchaseRepository)(nil)
	_ portsrepo.ScaffoldRepositoryFacade = (*MockScaffoldRepository)(nil)
	_ portsrepo.ContractRepositoryFacade = (*MockContractRepository)(nil)
	_ portsrepo.EmployeeRepository       = (*MockEmployeeRepository)(nil)
	_ portsrepo.AttendanceRepository     = (*MockAttendanceRepository)(nil)
	_ portsrepo.LeaveRepository          = (*MockLeaveRepository)(nil)
	_ portsrepo.IncentiveRepository      = (*MockIncentiveRepository)(nil)
	_ portsrepo.SalaryRepository         = (*MockSalaryRepository)(nil)
	_ events.Publisher                   = (*recordingPublisher)(nil)
)
