package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employeeCode" binding:"required,max=30"`
	Name         string          `json:"name" binding:"required,max=150"`
	Position     string          `json:"position"`
	Department   string          `json:"department"`
	Email        string          `json:"email" binding:"omitempty,email"`
	Phone        string          `json:"phone"`
	HireDate     Date            `json:"hireDate"`
	BaseSalary   decimal.Decimal `json:"baseSalary" binding:"decimal_gte0"`
	UserID       *string         `json:"userID" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Position   *string          `json:"position"`
	Department *string          `json:"department"`
	Email      *string          `json:"email" binding:"omitempty,email"`
	Phone      *string          `json:"phone"`
	BaseSalary *decimal.Decimal `json:"baseSalary" binding:"omitempty,decimal_gte0"`
	UserID     *string          `json:"userID" binding:"omitempty,uuid"`
}

type ListEmployeesParams struct {
	ListParams
	Department string `form:"department"`
	IsActive   *bool  `form:"active"`
}

type ListEmployeesResponse = ListResponse[domain.Employee]

type RecordAttendanceRequest struct {
	WorkDate Date                    `json:"workDate"`
	Status   domain.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE HALF_DAY ON_LEAVE"`
	CheckIn  *time.Time              `json:"checkIn"`
	CheckOut *time.Time              `json:"checkOut"`
	Notes    string                  `json:"notes"`
}

// AttendanceRangeParams bounds an attendance listing. Dates are YYYY-MM-DD.
type AttendanceRangeParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type AttendanceSummaryParams struct {
	Period string `form:"period" binding:"required,yyyymm"`
}

type CreateLeaveRequest struct {
	LeaveType domain.LeaveType `json:"leaveType" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate Date             `json:"startDate"`
	EndDate   Date             `json:"endDate"`
	Reason    string           `json:"reason"`
}

type ReviewLeaveRequest struct {
	Note string `json:"note"`
}

type ListLeavesParams struct {
	ListParams
	EmployeeID *string             `form:"employeeID" binding:"omitempty,uuid"`
	Status     *domain.LeaveStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
}

type ListLeavesResponse = ListResponse[domain.LeaveRequest]

type CreateIncentiveRequest struct {
	EmployeeID string          `json:"employeeID" binding:"required,uuid"`
	Period     string          `json:"period" binding:"required,yyyymm"`
	Amount     decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Reason     string          `json:"reason" binding:"required"`
}

type ListIncentivesParams struct {
	ListParams
	EmployeeID *string `form:"employeeID" binding:"omitempty,uuid"`
	Period     *string `form:"period" binding:"omitempty,yyyymm"`
}

type ListIncentivesResponse = ListResponse[domain.Incentive]

type GenerateSalaryRequest struct {
	EmployeeID string `json:"employeeID" binding:"required,uuid"`
	Period     string `json:"period" binding:"required,yyyymm"`
}

type PaySalaryRequest struct {
	Method domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER"`
}

type ListSalariesParams struct {
	ListParams
	EmployeeID *string              `form:"employeeID" binding:"omitempty,uuid"`
	Period     *string              `form:"period" binding:"omitempty,yyyymm"`
	Status     *domain.SalaryStatus `form:"status" binding:"omitempty,oneof=PENDING PAID"`
}

type ListSalariesResponse = ListResponse[domain.Salary]
