package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type EmployeeServiceTestSuite struct {
	suite.Suite
	repo    *MockEmployeeRepository
	service *services.EmployeeService
	ctx     context.Context
	now     time.Time
}

func (s *EmployeeServiceTestSuite) SetupTest() {
	s.repo = new(MockEmployeeRepository)
	s.now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	s.service = services.NewEmployeeService(s.repo, services.WithClock(fixedClock(s.now)))
	s.ctx = context.Background()
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}

func (s *EmployeeServiceTestSuite) TestCreateEmployee_DefaultsHireDateToToday() {
	s.repo.On("SaveEmployee", s.ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.EmployeeCode == "EMP-007" && e.HireDate.Equal(day(2026, 6, 1)) && e.IsActive
	})).Return(nil)

	employee, err := s.service.CreateEmployee(s.ctx, dto.CreateEmployeeRequest{
		EmployeeCode: "emp-007",
		Name:         "Tran Van An",
		BaseSalary:   decimal.NewFromInt(9_000_000),
	}, "user-1")

	s.Require().NoError(err)
	s.Equal("EMP-007", employee.EmployeeCode)
	s.repo.AssertExpectations(s.T())
}

func (s *EmployeeServiceTestSuite) TestCreateEmployee_NegativeSalaryRejected() {
	_, err := s.service.CreateEmployee(s.ctx, dto.CreateEmployeeRequest{
		EmployeeCode: "EMP-007",
		Name:         "Tran Van An",
		BaseSalary:   decimal.NewFromInt(-1),
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "SaveEmployee", mock.Anything, mock.Anything)
}

func (s *EmployeeServiceTestSuite) TestCreateEmployee_DuplicateCode() {
	s.repo.On("SaveEmployee", s.ctx, mock.AnythingOfType("domain.Employee")).
		Return(apperrors.NewDuplicateError("employee code already exists"))

	_, err := s.service.CreateEmployee(s.ctx, dto.CreateEmployeeRequest{EmployeeCode: "EMP-007", Name: "Again"}, "user-1")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *EmployeeServiceTestSuite) TestDeactivateEmployee() {
	s.repo.On("SetEmployeeActive", s.ctx, "emp-1", false, "user-1", s.now).Return(nil)

	s.Require().NoError(s.service.DeactivateEmployee(s.ctx, "emp-1", "user-1"))
	s.repo.AssertExpectations(s.T())
}

type AttendanceServiceTestSuite struct {
	suite.Suite
	attendanceRepo *MockAttendanceRepository
	employeeRepo   *MockEmployeeRepository
	service        *services.AttendanceService
	ctx            context.Context
}

func (s *AttendanceServiceTestSuite) SetupTest() {
	s.attendanceRepo = new(MockAttendanceRepository)
	s.employeeRepo = new(MockEmployeeRepository)
	s.service = services.NewAttendanceService(s.attendanceRepo, s.employeeRepo,
		services.WithClock(fixedClock(time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC))))
	s.ctx = context.Background()
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func clockAt(h, m int) *time.Time {
	t := time.Date(2026, 6, 15, h, m, 0, 0, time.UTC)
	return &t
}

func (s *AttendanceServiceTestSuite) TestRecordAttendance_CheckOutMustFollowCheckIn() {
	for name, out := range map[string]*time.Time{
		"before": clockAt(7, 59),
		"equal":  clockAt(8, 0),
	} {
		s.Run(name, func() {
			_, err := s.service.RecordAttendance(s.ctx, "emp-1", dto.RecordAttendanceRequest{
				WorkDate: dto.NewDate(day(2026, 6, 15)),
				Status:   domain.AttendancePresent,
				CheckIn:  clockAt(8, 0),
				CheckOut: out,
			}, "user-1")
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.attendanceRepo.AssertNotCalled(s.T(), "UpsertAttendance", mock.Anything, mock.Anything)
}

func (s *AttendanceServiceTestSuite) TestRecordAttendance_ReplacesSameDay() {
	s.employeeRepo.On("FindEmployeeByID", s.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1", IsActive: true}, nil)
	// The repository keeps the existing row for the date and returns it updated.
	existing := &domain.Attendance{AttendanceID: "att-earlier", EmployeeID: "emp-1", WorkDate: day(2026, 6, 15),
		Status: domain.AttendanceLate, CheckIn: clockAt(8, 40), CheckOut: clockAt(17, 0)}
	s.attendanceRepo.On("UpsertAttendance", s.ctx, mock.MatchedBy(func(a domain.Attendance) bool {
		return a.EmployeeID == "emp-1" && a.WorkDate.Equal(day(2026, 6, 15)) && a.Status == domain.AttendanceLate
	})).Return(existing, nil)

	stored, err := s.service.RecordAttendance(s.ctx, "emp-1", dto.RecordAttendanceRequest{
		WorkDate: dto.NewDate(time.Date(2026, 6, 15, 13, 0, 0, 0, time.UTC)),
		Status:   domain.AttendanceLate,
		CheckIn:  clockAt(8, 40),
		CheckOut: clockAt(17, 0),
	}, "user-1")

	s.Require().NoError(err)
	s.Equal("att-earlier", stored.AttendanceID)
	s.attendanceRepo.AssertNumberOfCalls(s.T(), "UpsertAttendance", 1)
}

func (s *AttendanceServiceTestSuite) TestRecordAttendance_InactiveEmployeeRejected() {
	s.employeeRepo.On("FindEmployeeByID", s.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1", IsActive: false}, nil)

	_, err := s.service.RecordAttendance(s.ctx, "emp-1", dto.RecordAttendanceRequest{
		WorkDate: dto.NewDate(day(2026, 6, 15)),
		Status:   domain.AttendanceAbsent,
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.attendanceRepo.AssertNotCalled(s.T(), "UpsertAttendance", mock.Anything, mock.Anything)
}

func (s *AttendanceServiceTestSuite) TestRecordAttendance_UnknownStatusRejected() {
	_, err := s.service.RecordAttendance(s.ctx, "emp-1", dto.RecordAttendanceRequest{
		WorkDate: dto.NewDate(day(2026, 6, 15)),
		Status:   domain.AttendanceStatus("REMOTE"),
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.employeeRepo.AssertNotCalled(s.T(), "FindEmployeeByID", mock.Anything, mock.Anything)
}

func (s *AttendanceServiceTestSuite) TestAttendanceSummary_CountsMonth() {
	counts := map[domain.AttendanceStatus]int{
		domain.AttendancePresent: 19,
		domain.AttendanceAbsent:  2,
		domain.AttendanceHalfDay: 1,
	}
	s.attendanceRepo.On("CountAttendanceByStatus", s.ctx, "emp-1", day(2026, 6, 1), day(2026, 6, 30)).Return(counts, nil)

	summary, err := s.service.AttendanceSummary(s.ctx, "emp-1", "2026-06", "user-1")

	s.Require().NoError(err)
	s.Equal("2026-06", summary.Period)
	s.Equal(19, summary.Counts[domain.AttendancePresent])
	s.Equal(0, summary.Counts[domain.AttendanceLate])
	s.True(decimal.RequireFromString("2.5").Equal(summary.AbsentDays()))
	s.attendanceRepo.AssertExpectations(s.T())
}

func (s *AttendanceServiceTestSuite) TestAttendanceSummary_BadPeriod() {
	_, err := s.service.AttendanceSummary(s.ctx, "emp-1", "June", "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.attendanceRepo.AssertNotCalled(s.T(), "CountAttendanceByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AttendanceServiceTestSuite) TestListAttendance_ReversedRangeRejected() {
	_, err := s.service.ListAttendance(s.ctx, "emp-1", day(2026, 6, 30), day(2026, 6, 1), "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}
