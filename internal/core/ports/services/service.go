package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth        AuthSvc
	User        UserSvcFacade
	Role        RoleSvcFacade
	Customer    CustomerSvc
	Supplier    SupplierSvc
	Inventory   InventorySvcFacade
	Contract    ContractSvcFacade
	Purchase    PurchaseSvc
	Employee    EmployeeSvc
	Attendance  AttendanceSvc
	Leave       LeaveSvc
	Incentive   IncentiveSvc
	Payroll     PayrollSvc
	Account     AccountSvcFacade
	Journal     JournalSvcFacade
	Reporting   ReportingSvc
	AutoPosting AutoPostingSvc
}
