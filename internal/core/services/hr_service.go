package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/scaffold_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

// EmployeeService manages staff records.
type EmployeeService struct {
	BaseService
	repo portsrepo.EmployeeRepository
}

func NewEmployeeService(repo portsrepo.EmployeeRepository, opts ...BaseOption) *EmployeeService {
	return &EmployeeService{BaseService: newBaseService(opts), repo: repo}
}

var _ portssvc.EmployeeSvc = (*EmployeeService)(nil)

func (s *EmployeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRWrite); err != nil {
		return nil, err
	}
	if normalizeCode(req.EmployeeCode) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationFailedError("employee code and name are required")
	}
	if req.BaseSalary.IsNegative() {
		return nil, apperrors.NewValidationFailedError("base salary must not be negative")
	}

	now := s.now()
	hireDate := req.HireDate.Time
	if hireDate.IsZero() {
		hireDate = domain.DateOnly(now)
	}
	employee := domain.Employee{
		EmployeeID:   uuid.NewString(),
		EmployeeCode: normalizeCode(req.EmployeeCode),
		Name:         strings.TrimSpace(req.Name),
		Position:     req.Position,
		Department:   req.Department,
		Email:        req.Email,
		Phone:        req.Phone,
		HireDate:     hireDate,
		BaseSalary:   req.BaseSalary,
		IsActive:     true,
		UserID:       req.UserID,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}
	if err := s.repo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee", slog.String("employee_code", employee.EmployeeCode))
		return nil, err
	}
	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string, actorID string) (*domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	employee, err := s.repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find employee", slog.String("employee_id", employeeID))
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams, actorID string) ([]domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	employees, err := s.repo.ListEmployees(ctx, portsrepo.EmployeeFilter{
		Department: strings.TrimSpace(params.Department),
		IsActive:   params.IsActive,
		Page:       toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees")
		return nil, err
	}
	return employees, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actorID string) (*domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRWrite); err != nil {
		return nil, err
	}
	employee, err := s.repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find employee for update", slog.String("employee_id", employeeID))
		return nil, err
	}

	setIfPresent(&employee.Name, req.Name)
	setIfPresent(&employee.Position, req.Position)
	setIfPresent(&employee.Department, req.Department)
	setIfPresent(&employee.Email, req.Email)
	setIfPresent(&employee.Phone, req.Phone)
	if req.BaseSalary != nil {
		if req.BaseSalary.IsNegative() {
			return nil, apperrors.NewValidationFailedError("base salary must not be negative")
		}
		employee.BaseSalary = *req.BaseSalary
	}
	if req.UserID != nil {
		employee.UserID = req.UserID
	}
	if employee.Name == "" {
		return nil, apperrors.NewValidationFailedError("employee name cannot be empty")
	}
	employee.Touch(actorID, s.now())

	if err := s.repo.UpdateEmployee(ctx, *employee); err != nil {
		s.LogError(ctx, err, "Failed to update employee", slog.String("employee_id", employeeID))
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) DeactivateEmployee(ctx context.Context, employeeID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRWrite); err != nil {
		return err
	}
	if err := s.repo.SetEmployeeActive(ctx, employeeID, false, actorID, s.now()); err != nil {
		s.logLookupError(ctx, err, "Failed to deactivate employee", slog.String("employee_id", employeeID))
		return err
	}
	s.LogInfo(ctx, "Employee deactivated", slog.String("employee_id", employeeID))
	return nil
}

// AttendanceService records daily attendance.
type AttendanceService struct {
	BaseService
	attendanceRepo portsrepo.AttendanceRepository
	employeeRepo   portsrepo.EmployeeRepository
}

func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepository, employeeRepo portsrepo.EmployeeRepository, opts ...BaseOption) *AttendanceService {
	return &AttendanceService{BaseService: newBaseService(opts), attendanceRepo: attendanceRepo, employeeRepo: employeeRepo}
}

var _ portssvc.AttendanceSvc = (*AttendanceService)(nil)

// RecordAttendance stores the day's record, replacing an earlier one for the same date.
func (s *AttendanceService) RecordAttendance(ctx context.Context, employeeID string, req dto.RecordAttendanceRequest, actorID string) (*domain.Attendance, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRWrite); err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown attendance status %q", req.Status))
	}
	if req.WorkDate.IsZero() {
		return nil, apperrors.NewValidationFailedError("work date is required")
	}
	if req.CheckIn != nil && req.CheckOut != nil && !req.CheckOut.After(*req.CheckIn) {
		return nil, apperrors.NewValidationFailedError("check-out must be after check-in")
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find employee for attendance", slog.String("employee_id", employeeID))
		return nil, err
	}
	if !employee.IsActive {
		return nil, apperrors.NewValidationFailedError("employee is inactive")
	}

	attendance := domain.Attendance{
		AttendanceID: uuid.NewString(),
		EmployeeID:   employeeID,
		WorkDate:     domain.DateOnly(req.WorkDate.Time),
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Status:       req.Status,
		Notes:        req.Notes,
		AuditFields:  domain.NewAuditFields(actorID, s.now()),
	}
	stored, err := s.attendanceRepo.UpsertAttendance(ctx, attendance)
	if err != nil {
		s.LogError(ctx, err, "Failed to record attendance",
			slog.String("employee_id", employeeID),
			slog.Time("work_date", attendance.WorkDate))
		return nil, err
	}
	return stored, nil
}

func (s *AttendanceService) ListAttendance(ctx context.Context, employeeID string, from, to time.Time, actorID string) ([]domain.Attendance, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationFailedError("'to' must not be before 'from'")
	}
	records, err := s.attendanceRepo.ListAttendance(ctx, employeeID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to list attendance", slog.String("employee_id", employeeID))
		return nil, err
	}
	return records, nil
}

func (s *AttendanceService) AttendanceSummary(ctx context.Context, employeeID string, period string, actorID string) (*domain.AttendanceSummary, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	from, to, err := domain.PeriodBounds(period)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	counts, err := s.attendanceRepo.CountAttendanceByStatus(ctx, employeeID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarise attendance", slog.String("employee_id", employeeID), slog.String("period", period))
		return nil, err
	}
	return &domain.AttendanceSummary{EmployeeID: employeeID, Period: period, Counts: counts}, nil
}

// LeaveService handles leave requests and their review.
type LeaveService struct {
	BaseService
	leaveRepo    portsrepo.LeaveRepository
	employeeRepo portsrepo.EmployeeRepository
}

func NewLeaveService(leaveRepo portsrepo.LeaveRepository, employeeRepo portsrepo.EmployeeRepository, opts ...BaseOption) *LeaveService {
	return &LeaveService{BaseService: newBaseService(opts), leaveRepo: leaveRepo, employeeRepo: employeeRepo}
}

var _ portssvc.LeaveSvc = (*LeaveService)(nil)

var blockingLeaveStatuses = []domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved}

func (s *LeaveService) RequestLeave(ctx context.Context, employeeID string, req dto.CreateLeaveRequest, actorID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRWrite); err != nil {
		return nil, err
	}
	if !req.LeaveType.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown leave type %q", req.LeaveType))
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, apperrors.NewValidationFailedError("start and end dates are required")
	}
	start, end := domain.DateOnly(req.StartDate.Time), domain.DateOnly(req.EndDate.Time)
	if end.Before(start) {
		return nil, apperrors.NewValidationFailedError("end date must not be before start date")
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find employee for leave", slog.String("employee_id", employeeID))
		return nil, err
	}
	if !employee.IsActive {
		return nil, apperrors.NewValidationFailedError("employee is inactive")
	}

	overlapping, err := s.leaveRepo.FindOverlappingLeaves(ctx, employeeID, start, end, blockingLeaveStatuses)
	if err != nil {
		s.LogError(ctx, err, "Failed to check overlapping leaves", slog.String("employee_id", employeeID))
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, apperrors.NewConflictError(fmt.Sprintf("leave overlaps request %s", overlapping[0].LeaveID))
	}

	leave := domain.LeaveRequest{
		LeaveID:     uuid.NewString(),
		EmployeeID:  employeeID,
		LeaveType:   req.LeaveType,
		StartDate:   start,
		EndDate:     end,
		Days:        domain.InclusiveDays(start, end),
		Reason:      req.Reason,
		Status:      domain.LeavePending,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.leaveRepo.SaveLeave(ctx, leave); err != nil {
		s.LogError(ctx, err, "Failed to save leave", slog.String("employee_id", employeeID))
		return nil, err
	}
	s.LogInfo(ctx, "Leave requested", slog.String("leave_id", leave.LeaveID), slog.Int("days", leave.Days))
	return &leave, nil
}

func (s *LeaveService) GetLeave(ctx context.Context, leaveID string, actorID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	return s.loadLeave(ctx, leaveID)
}

func (s *LeaveService) ListLeaves(ctx context.Context, params dto.ListLeavesParams, actorID string) ([]domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	leaves, err := s.leaveRepo.ListLeaves(ctx, portsrepo.LeaveFilter{
		EmployeeID: params.EmployeeID,
		Status:     params.Status,
		Page:       toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list leaves")
		return nil, err
	}
	return leaves, nil
}

func (s *LeaveService) ApproveLeave(ctx context.Context, leaveID string, req dto.ReviewLeaveRequest, actorID string) (*domain.LeaveRequest, error) {
	return s.review(ctx, leaveID, domain.LeaveApproved, req.Note, actorID)
}

func (s *LeaveService) RejectLeave(ctx context.Context, leaveID string, req dto.ReviewLeaveRequest, actorID string) (*domain.LeaveRequest, error) {
	return s.review(ctx, leaveID, domain.LeaveRejected, req.Note, actorID)
}

func (s *LeaveService) review(ctx context.Context, leaveID string, to domain.LeaveStatus, note string, actorID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRApprove); err != nil {
		return nil, err
	}
	leave, err := s.loadLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Status != domain.LeavePending {
		return nil, transitionError("leave", "review", leave.Status)
	}

	now := s.now()
	leave.Status = to
	leave.ReviewedBy = &actorID
	leave.ReviewedAt = &now
	leave.ReviewNote = note
	leave.Touch(actorID, now)
	if err := s.leaveRepo.UpdateLeaveStatus(ctx, *leave, domain.LeavePending); err != nil {
		s.LogError(ctx, err, "Failed to review leave", slog.String("leave_id", leaveID))
		return nil, err
	}
	s.LogInfo(ctx, "Leave reviewed", slog.String("leave_id", leaveID), slog.String("status", string(to)))
	return leave, nil
}

// CancelLeave withdraws a pending or approved leave that has not started yet.
func (s *LeaveService) CancelLeave(ctx context.Context, leaveID string, actorID string) (*domain.LeaveRequest, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRWrite); err != nil {
		return nil, err
	}
	leave, err := s.loadLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	from := leave.Status
	if from != domain.LeavePending && from != domain.LeaveApproved {
		return nil, transitionError("leave", "cancel", from)
	}
	now := s.now()
	if !domain.DateOnly(now).Before(domain.DateOnly(leave.StartDate)) {
		return nil, apperrors.NewConflictError("leave has already started")
	}

	leave.Status = domain.LeaveCancelled
	leave.Touch(actorID, now)
	if err := s.leaveRepo.UpdateLeaveStatus(ctx, *leave, from); err != nil {
		s.LogError(ctx, err, "Failed to cancel leave", slog.String("leave_id", leaveID))
		return nil, err
	}
	return leave, nil
}

func (s *LeaveService) loadLeave(ctx context.Context, leaveID string) (*domain.LeaveRequest, error) {
	leave, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		s.logLookupError(ctx, err, "Failed to find leave", slog.String("leave_id", leaveID))
		return nil, err
	}
	return leave, nil
}

// IncentiveService grants bonuses that the next salary run picks up.
type IncentiveService struct {
	BaseService
	incentiveRepo portsrepo.IncentiveRepository
	employeeRepo  portsrepo.EmployeeRepository
}

func NewIncentiveService(incentiveRepo portsrepo.IncentiveRepository, employeeRepo portsrepo.EmployeeRepository, opts ...BaseOption) *IncentiveService {
	return &IncentiveService{BaseService: newBaseService(opts), incentiveRepo: incentiveRepo, employeeRepo: employeeRepo}
}

var _ portssvc.IncentiveSvc = (*IncentiveService)(nil)

func (s *IncentiveService) CreateIncentive(ctx context.Context, req dto.CreateIncentiveRequest, actorID string) (*domain.Incentive, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPayrollWrite); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("incentive amount must be positive")
	}
	if _, _, err := domain.PeriodBounds(req.Period); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		s.logLookupError(ctx, err, "Failed to find employee for incentive", slog.String("employee_id", req.EmployeeID))
		return nil, err
	}

	incentive := domain.Incentive{
		IncentiveID: uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		Period:      req.Period,
		Amount:      req.Amount,
		Reason:      req.Reason,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.incentiveRepo.SaveIncentive(ctx, incentive); err != nil {
		s.LogError(ctx, err, "Failed to save incentive", slog.String("employee_id", req.EmployeeID))
		return nil, err
	}
	return &incentive, nil
}

func (s *IncentiveService) ListIncentives(ctx context.Context, params dto.ListIncentivesParams, actorID string) ([]domain.Incentive, error) {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermHRRead); err != nil {
		return nil, err
	}
	incentives, err := s.incentiveRepo.ListIncentives(ctx, portsrepo.IncentiveFilter{
		EmployeeID: params.EmployeeID,
		Period:     params.Period,
		Page:       toPage(params.ListParams),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list incentives")
		return nil, err
	}
	return incentives, nil
}

func (s *IncentiveService) DeleteIncentive(ctx context.Context, incentiveID string, actorID string) error {
	if err := s.AuthorizeUser(ctx, actorID, domain.PermPayrollWrite); err != nil {
		return err
	}
	if err := s.incentiveRepo.DeleteUnsettledIncentive(ctx, incentiveID); err != nil {
		s.logLookupError(ctx, err, "Failed to delete incentive", slog.String("incentive_id", incentiveID))
		return err
	}
	return nil
}
