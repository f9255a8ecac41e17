package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
)

type LeaveServiceTestSuite struct {
	suite.Suite
	leaveRepo    *MockLeaveRepository
	employeeRepo *MockEmployeeRepository
	service      *services.LeaveService
	ctx          context.Context
}

func (s *LeaveServiceTestSuite) SetupTest() {
	s.leaveRepo = new(MockLeaveRepository)
	s.employeeRepo = new(MockEmployeeRepository)
	s.service = services.NewLeaveService(s.leaveRepo, s.employeeRepo,
		services.WithClock(fixedClock(time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC))))
	s.ctx = context.Background()
}

func TestLeaveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaveServiceTestSuite))
}

func (s *LeaveServiceTestSuite) TestRequestLeave_CountsInclusiveDays() {
	start, end := day(2026, 7, 20), day(2026, 7, 24)
	s.employeeRepo.On("FindEmployeeByID", s.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1", IsActive: true}, nil)
	s.leaveRepo.On("FindOverlappingLeaves", s.ctx, "emp-1", start, end,
		[]domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved}).Return([]domain.LeaveRequest{}, nil)
	s.leaveRepo.On("SaveLeave", s.ctx, mock.MatchedBy(func(l domain.LeaveRequest) bool {
		return l.Days == 5 && l.Status == domain.LeavePending
	})).Return(nil)

	leave, err := s.service.RequestLeave(s.ctx, "emp-1", dto.CreateLeaveRequest{
		LeaveType: domain.LeaveAnnual,
		StartDate: dto.NewDate(start),
		EndDate:   dto.NewDate(end),
	}, "user-1")

	s.Require().NoError(err)
	s.Equal(5, leave.Days)
	s.leaveRepo.AssertExpectations(s.T())
}

func (s *LeaveServiceTestSuite) TestRequestLeave_OverlapIsConflict() {
	start, end := day(2026, 7, 20), day(2026, 7, 24)
	s.employeeRepo.On("FindEmployeeByID", s.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1", IsActive: true}, nil)
	s.leaveRepo.On("FindOverlappingLeaves", s.ctx, "emp-1", start, end, mock.Anything).
		Return([]domain.LeaveRequest{{LeaveID: "l-0", Status: domain.LeaveApproved}}, nil)

	_, err := s.service.RequestLeave(s.ctx, "emp-1", dto.CreateLeaveRequest{
		LeaveType: domain.LeaveSick,
		StartDate: dto.NewDate(start),
		EndDate:   dto.NewDate(end),
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.leaveRepo.AssertNotCalled(s.T(), "SaveLeave", mock.Anything, mock.Anything)
}

func (s *LeaveServiceTestSuite) TestRequestLeave_EndBeforeStart() {
	_, err := s.service.RequestLeave(s.ctx, "emp-1", dto.CreateLeaveRequest{
		LeaveType: domain.LeaveAnnual,
		StartDate: dto.NewDate(day(2026, 7, 24)),
		EndDate:   dto.NewDate(day(2026, 7, 20)),
	}, "user-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LeaveServiceTestSuite) TestApproveLeave_OnlyPending() {
	s.leaveRepo.On("FindLeaveByID", s.ctx, "l-1").Return(&domain.LeaveRequest{LeaveID: "l-1", Status: domain.LeaveRejected}, nil)

	_, err := s.service.ApproveLeave(s.ctx, "l-1", dto.ReviewLeaveRequest{}, "mgr-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LeaveServiceTestSuite) TestApproveLeave_RecordsReviewer() {
	s.leaveRepo.On("FindLeaveByID", s.ctx, "l-1").Return(&domain.LeaveRequest{LeaveID: "l-1", Status: domain.LeavePending}, nil)
	s.leaveRepo.On("UpdateLeaveStatus", s.ctx, mock.MatchedBy(func(l domain.LeaveRequest) bool {
		return l.Status == domain.LeaveApproved && l.ReviewedBy != nil && *l.ReviewedBy == "mgr-1"
	}), domain.LeavePending).Return(nil)

	leave, err := s.service.ApproveLeave(s.ctx, "l-1", dto.ReviewLeaveRequest{Note: "enjoy"}, "mgr-1")

	s.Require().NoError(err)
	s.Equal("enjoy", leave.ReviewNote)
}

func (s *LeaveServiceTestSuite) TestCancelLeave_AlreadyStarted() {
	s.leaveRepo.On("FindLeaveByID", s.ctx, "l-1").Return(&domain.LeaveRequest{
		LeaveID: "l-1", Status: domain.LeaveApproved, StartDate: day(2026, 7, 10), EndDate: day(2026, 7, 12),
	}, nil)

	_, err := s.service.CancelLeave(s.ctx, "l-1", "user-1")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LeaveServiceTestSuite) TestCancelLeave_FutureApprovedLeave() {
	s.leaveRepo.On("FindLeaveByID", s.ctx, "l-1").Return(&domain.LeaveRequest{
		LeaveID: "l-1", Status: domain.LeaveApproved, StartDate: day(2026, 7, 11), EndDate: day(2026, 7, 12),
	}, nil)
	s.leaveRepo.On("UpdateLeaveStatus", s.ctx, mock.Anything, domain.LeaveApproved).Return(nil)

	leave, err := s.service.CancelLeave(s.ctx, "l-1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.LeaveCancelled, leave.Status)
}
