package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

type EmployeeFilter struct {
	Department string
	IsActive   *bool
	Page
}

type EmployeeRepository interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	SetEmployeeActive(ctx context.Context, employeeID string, active bool, userID string, now time.Time) error
}

type AttendanceRepository interface {
	// UpsertAttendance inserts or replaces the record of (employee, work date).
	UpsertAttendance(ctx context.Context, attendance domain.Attendance) (*domain.Attendance, error)
	ListAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Attendance, error)
	CountAttendanceByStatus(ctx context.Context, employeeID string, from, to time.Time) (map[domain.AttendanceStatus]int, error)
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *domain.LeaveStatus
	Page
}

type LeaveRepository interface {
	SaveLeave(ctx context.Context, leave domain.LeaveRequest) error
	FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error)
	// FindOverlappingLeaves returns the employee's leaves in any of statuses that intersect [from, to].
	FindOverlappingLeaves(ctx context.Context, employeeID string, from, to time.Time, statuses []domain.LeaveStatus) ([]domain.LeaveRequest, error)
	// UpdateLeaveStatus saves the review fields if the stored status still equals from. ErrConflict otherwise.
	UpdateLeaveStatus(ctx context.Context, leave domain.LeaveRequest, from domain.LeaveStatus) error
}

type IncentiveFilter struct {
	EmployeeID *string
	Period     *string
	Page
}

type IncentiveRepository interface {
	SaveIncentive(ctx context.Context, incentive domain.Incentive) error
	FindIncentiveByID(ctx context.Context, incentiveID string) (*domain.Incentive, error)
	ListIncentives(ctx context.Context, filter IncentiveFilter) ([]domain.Incentive, error)
	// ListUnsettledIncentives returns incentives of the period not yet attached to a salary.
	ListUnsettledIncentives(ctx context.Context, employeeID, period string) ([]domain.Incentive, error)
	// DeleteUnsettledIncentive deletes an incentive that is not attached to a salary. ErrConflict otherwise.
	DeleteUnsettledIncentive(ctx context.Context, incentiveID string) error
}

type SalaryFilter struct {
	EmployeeID *string
	Period     *string
	Status     *domain.SalaryStatus
	Page
}

type SalaryRepository interface {
	// SaveSalary stores the salary and attaches the given incentives to it in one DB transaction.
	// A second salary for the same employee and period yields ErrDuplicate.
	SaveSalary(ctx context.Context, salary domain.Salary, incentiveIDs []string) error
	FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) ([]domain.Salary, error)
	// MarkSalaryPaid moves a PENDING salary to PAID. ErrConflict when it is not pending.
	MarkSalaryPaid(ctx context.Context, salary domain.Salary) error
}
