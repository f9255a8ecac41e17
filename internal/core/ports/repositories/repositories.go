package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	RoleRepo       RoleRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	ReportingRepo  ReportingRepository
	CustomerRepo   CustomerRepository
	SupplierRepo   SupplierRepository
	ScaffoldRepo   ScaffoldRepositoryFacade
	ContractRepo   ContractRepositoryFacade
	PurchaseRepo   PurchaseRepositoryFacade
	EmployeeRepo   EmployeeRepository
	AttendanceRepo AttendanceRepository
	LeaveRepo      LeaveRepository
	IncentiveRepo  IncentiveRepository
	SalaryRepo     SalaryRepository
}
