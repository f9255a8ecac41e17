package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/events"
)

// PayrollRepos groups the repositories a salary run reads from.
type PayrollRepos struct {
	Salaries   portsrepo.SalaryRepository
	Employees  portsrepo.EmployeeRepository
	Attendance portsrepo.AttendanceRepository
	Leaves     portsrepo.LeaveRepository
	Incentives portsrepo.IncentiveRepository
}

// PayrollService computes and pays monthly salaries.
type PayrollService struct {
	BaseService
	repos       PayrollRepos
	publisher   events.Publisher
	workingDays int
}

func NewPayrollService(repos PayrollRepos, publisher events.Publisher, workingDays int, opts ...BaseOption) *PayrollService {
	return &PayrollService{
		BaseService: newBaseService(opts),
		repos:       repos,
		publisher:   publisher,
		workingDays: workingDays,
	}
}

var _ portssvc.PayrollSvc = (*PayrollService)(nil)

// salaryFigures holds the computed amounts of one salary.
type salaryFigures struct {
	base, incentives, deductions, net decimal.Decimal
	absentDays                        decimal.Decimal
	unpaidLeaveDays                   int
}

// computeSalary applies net = base + incentives - (absent + unpaid leave days) * base/workingDays,
// floored at zero and rounded to cents.
func computeSalary(base decimal.Decimal, workingDays int, absentDays decimal.Decimal, unpaidLeaveDays int, incentives decimal.Decimal) salaryFigures {
	dailyRate := base.Div(decimal.NewFromInt(int64(workingDays)))
	missed := absentDays.Add(decimal.NewFromInt(int64(unpaidLeaveDays)))
	deductions := missed.Mul(dailyRate).Round(2)
	net := base.Add(incentives).Sub(deductions)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return salaryFigures{
		base:            base,
		incentives:      incentives,
		deductions:      deductions,
		net:             net.Round(2),
		absentDays:      absentDays,
		unpaidLeaveDays: unpaidLeaveDays,
	}
}

func (s *PayrollService) GenerateSalary(ctx context.Context, req dto.GenerateSalaryRequest, actorID string) (*domain.Salary, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPayrollWrite); err != nil {
		return nil, err
	}
	from, to, err := domain.PeriodBounds(req.Period)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if s.workingDays <= 0 {
		return nil, apperrors.NewAppError(500, "payroll working days are not configured", nil)
	}

	employee, err := s.repos.Employees.FindEmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find employee for salary", slog.String("employee_id", req.EmployeeID))
		return nil, err
	}

	counts, err := s.repos.Attendance.CountAttendanceByStatus(ctx, employee.EmployeeID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count attendance for salary", slog.String("employee_id", employee.EmployeeID))
		return nil, err
	}
	absent := domain.AttendanceSummary{Counts: counts}.AbsentDays()

	leaves, err := s.repos.Leaves.FindOverlappingLeaves(ctx, employee.EmployeeID, from, to, []domain.LeaveStatus{domain.LeaveApproved})
	if err != nil {
		s.LogError(ctx, err, "Failed to load leaves for salary", slog.String("employee_id", employee.EmployeeID))
		return nil, err
	}
	unpaidDays := 0
	for _, l := range leaves {
		if l.LeaveType == domain.LeaveUnpaid {
			unpaidDays += l.DaysWithin(from, to)
		}
	}

	incentives, err := s.repos.Incentives.ListUnsettledIncentives(ctx, employee.EmployeeID, req.Period)
	if err != nil {
		s.LogError(ctx, err, "Failed to load incentives for salary", slog.String("employee_id", employee.EmployeeID))
		return nil, err
	}
	incentiveTotal := decimal.Zero
	incentiveIDs := make([]string, 0, len(incentives))
	for _, inc := range incentives {
		incentiveTotal = incentiveTotal.Add(inc.Amount)
		incentiveIDs = append(incentiveIDs, inc.IncentiveID)
	}

	fig := computeSalary(employee.BaseSalary, s.workingDays, absent, unpaidDays, incentiveTotal)
	salary := domain.Salary{
		SalaryID:        uuid.NewString(),
		EmployeeID:      employee.EmployeeID,
		Period:          req.Period,
		BaseAmount:      fig.base,
		IncentiveAmount: fig.incentives,
		DeductionAmount: fig.deductions,
		NetAmount:       fig.net,
		AbsentDays:      fig.absentDays,
		UnpaidLeaveDays: fig.unpaidLeaveDays,
		Status:          domain.SalaryPending,
		AuditFields:     domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.repos.Salaries.SaveSalary(ctx, salary, incentiveIDs); err != nil {
		s.LogError(ctx, err, "Failed to save salary",
			slog.String("employee_id", employee.EmployeeID),
			slog.String("period", req.Period))
		return nil, err
	}
	s.LogInfo(ctx, "Salary generated",
		slog.String("salary_id", salary.SalaryID),
		slog.String("period", req.Period),
		slog.String("net", salary.NetAmount.String()))
	return &salary, nil
}

func (s *PayrollService) PaySalary(ctx context.Context, salaryID string, req dto.PaySalaryRequest, actorID string) (*domain.Salary, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPayrollWrite); err != nil {
		return nil, err
	}
	if req.Method != domain.MethodCash && req.Method != domain.MethodBankTransfer {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("payment method %q is not accepted for salaries", req.Method))
	}
	salary, err := s.loadSalary(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	if salary.Status != domain.SalaryPending {
		return nil, transitionError("salary", "pay", salary.Status)
	}
	employee, err := s.repos.Employees.FindEmployeeByID(ctx, salary.EmployeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find employee of salary", slog.String("salary_id", salaryID))
		return nil, err
	}

	now := s.now()
	method := req.Method
	salary.Status = domain.SalaryPaid
	salary.PaidAt = &now
	salary.PaymentMethod = &method
	salary.Touch(actorID, now)
	if err := s.repos.Salaries.MarkSalaryPaid(ctx, *salary); err != nil {
		s.LogError(ctx, err, "Failed to mark salary paid", slog.String("salary_id", salaryID))
		return nil, err
	}
	s.LogInfo(ctx, "Salary paid", slog.String("salary_id", salaryID), slog.String("method", string(method)))

	if salary.NetAmount.IsPositive() {
		s.publishEvent(ctx, s.publisher, salaryPaidEvent(*salary, *employee, actorID))
	}
	return salary, nil
}

func (s *PayrollService) GetSalary(ctx context.Context, salaryID string, actorID string) (*domain.Salary, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	return s.loadSalary(ctx, salaryID)
}

func (s *PayrollService) ListSalaries(ctx context.Context, params dto.ListSalariesParams, actorID string) ([]domain.Salary, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	salaries, err := s.repos.Salaries.ListSalaries(ctx, portsrepo.SalaryFilter{
		EmployeeID: params.EmployeeID,
		Period:     params.Period,
		Status:     params.Status,
		Page:       toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list salaries")
		return nil, err
	}
	return salaries, nil
}

func (s *PayrollService) loadSalary(ctx context.Context, salaryID string) (*domain.Salary, error) {
	salary, err := s.repos.Salaries.FindSalaryByID(ctx, salaryID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find salary", slog.String("salary_id", salaryID))
		return nil, err
	}
	return salary, nil
}
