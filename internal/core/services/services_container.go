package services

import (
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/events"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

// Ledger bundles the chart of accounts and the posting rules.
type Ledger struct {
	Chart *ledgerconfig.Chart
	Rules *ledgerconfig.PostingRules
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher receives the business events of contracts, purchases and payroll; the caller
// connects it to the AutoPosting service (in-process bus subscription or Kafka consumer).
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ledger Ledger, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The role service is the permission checker of every other service
	roleSvc := NewRoleService(repos.RoleRepo, repos.UserRepo)
	auth := WithAuthorizer(roleSvc)
	container.Role = roleSvc

	container.Auth = NewAuthService(cfg, repos.UserRepo, repos.RoleRepo)
	container.User = NewUserService(repos.UserRepo, repos.RoleRepo, auth)

	container.Customer = NewCustomerService(repos.CustomerRepo, auth)
	container.Supplier = NewSupplierService(repos.SupplierRepo, auth)
	container.Inventory = NewInventoryService(repos.ScaffoldRepo, auth)
	container.Contract = NewContractService(repos.ContractRepo, repos.CustomerRepo, repos.ScaffoldRepo, publisher, auth)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, repos.SupplierRepo, repos.ScaffoldRepo, publisher, auth)

	container.Employee = NewEmployeeService(repos.EmployeeRepo, auth)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, repos.EmployeeRepo, auth)
	container.Leave = NewLeaveService(repos.LeaveRepo, repos.EmployeeRepo, auth)
	container.Incentive = NewIncentiveService(repos.IncentiveRepo, repos.EmployeeRepo, auth)
	container.Payroll = NewPayrollService(PayrollRepos{
		Salaries:   repos.SalaryRepo,
		Employees:  repos.EmployeeRepo,
		Attendance: repos.AttendanceRepo,
		Leaves:     repos.LeaveRepo,
		Incentives: repos.IncentiveRepo,
	}, publisher, cfg.PayrollWorkingDays, auth)

	container.Account = NewAccountService(repos.AccountRepo, ledger.Chart, auth)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, cfg.CompanyCurrency, auth)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, auth)
	container.AutoPosting = NewAutoPostingService(ledger.Rules, AutoPostingRepos{
		Accounts:  repos.AccountRepo,
		Journals:  repos.JournalRepo,
		Contracts: repos.ContractRepo,
		Purchases: repos.PurchaseRepo,
		Salaries:  repos.SalaryRepo,
		Employees: repos.EmployeeRepo,
		Scaffolds: repos.ScaffoldRepo,
	}, cfg.CompanyCurrency, auth)

	return container
}
