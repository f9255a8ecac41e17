package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	scaffoldRepo := newPgxScaffoldRepository(dbPool)
	crmRepo := newPgxCRMRepository(dbPool)
	hrRepo := newPgxHRRepository(dbPool)
	payrollRepo := newPgxPayrollRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		RoleRepo:       newPgxRoleRepository(dbPool),
		AccountRepo:    accountRepo,
		JournalRepo:    journalRepo,
		ReportingRepo:  newReportingRepository(dbPool),
		CustomerRepo:   crmRepo,
		SupplierRepo:   crmRepo,
		ScaffoldRepo:   scaffoldRepo,
		ContractRepo:   newPgxContractRepository(dbPool, scaffoldRepo),
		PurchaseRepo:   newPgxPurchaseRepository(dbPool, scaffoldRepo),
		EmployeeRepo:   hrRepo,
		AttendanceRepo: hrRepo,
		LeaveRepo:      hrRepo,
		IncentiveRepo:  payrollRepo,
		SalaryRepo:     payrollRepo,
	}
}
