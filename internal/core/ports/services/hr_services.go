package services

import (
	"context"
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type EmployeeSvc interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error)
	GetEmployee(ctx context.Context, employeeID string, actorID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, params dto.ListEmployeesParams, actorID string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actorID string) (*domain.Employee, error)
	DeactivateEmployee(ctx context.Context, employeeID string, actorID string) error
}

type AttendanceSvc interface {
	RecordAttendance(ctx context.Context, employeeID string, req dto.RecordAttendanceRequest, actorID string) (*domain.Attendance, error)
	ListAttendance(ctx context.Context, employeeID string, from, to time.Time, actorID string) ([]domain.Attendance, error)
	AttendanceSummary(ctx context.Context, employeeID string, period string, actorID string) (*domain.AttendanceSummary, error)
}

type LeaveSvc interface {
	RequestLeave(ctx context.Context, employeeID string, req dto.CreateLeaveRequest, actorID string) (*domain.LeaveRequest, error)
	GetLeave(ctx context.Context, leaveID string, actorID string) (*domain.LeaveRequest, error)
	ListLeaves(ctx context.Context, params dto.ListLeavesParams, actorID string) ([]domain.LeaveRequest, error)
	ApproveLeave(ctx context.Context, leaveID string, req dto.ReviewLeaveRequest, actorID string) (*domain.LeaveRequest, error)
	RejectLeave(ctx context.Context, leaveID string, req dto.ReviewLeaveRequest, actorID string) (*domain.LeaveRequest, error)
	CancelLeave(ctx context.Context, leaveID string, actorID string) (*domain.LeaveRequest, error)
}

type IncentiveSvc interface {
	CreateIncentive(ctx context.Context, req dto.CreateIncentiveRequest, actorID string) (*domain.Incentive, error)
	ListIncentives(ctx context.Context, params dto.ListIncentivesParams, actorID string) ([]domain.Incentive, error)
	DeleteIncentive(ctx context.Context, incentiveID string, actorID string) error
}

type PayrollSvc interface {
	GenerateSalary(ctx context.Context, req dto.GenerateSalaryRequest, actorID string) (*domain.Salary, error)
	PaySalary(ctx context.Context, salaryID string, req dto.PaySalaryRequest, actorID string) (*domain.Salary, error)
	GetSalary(ctx context.Context, salaryID string, actorID string) (*domain.Salary, error)
	ListSalaries(ctx context.Context, params dto.ListSalariesParams, actorID string) ([]domain.Salary, error)
}
