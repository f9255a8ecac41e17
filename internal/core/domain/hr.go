package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a member of staff on the payroll.
type Employee struct {
	EmployeeID   string          `json:"employeeID"`
	EmployeeCode string          `json:"employeeCode"`
	Name         string          `json:"name"`
	Position     string          `json:"position"`
	Department   string          `json:"department"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	HireDate     time.Time       `json:"hireDate"`
	BaseSalary   decimal.Decimal `json:"baseSalary"` // Monthly
	IsActive     bool            `json:"isActive"`
	UserID       *string         `json:"userID,omitempty"`
	AuditFields
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
	AttendanceOnLeave AttendanceStatus = "ON_LEAVE"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay, AttendanceOnLeave:
		return true
	}
	return false
}

// Attendance is one employee's record for one work date.
type Attendance struct {
	AttendanceID string           `json:"attendanceID"`
	EmployeeID   string           `json:"employeeID"`
	WorkDate     time.Time        `json:"workDate"`
	CheckIn      *time.Time       `json:"checkIn,omitempty"`
	CheckOut     *time.Time       `json:"checkOut,omitempty"`
	Status       AttendanceStatus `json:"status"`
	Notes        string           `json:"notes"`
	AuditFields
}

// AttendanceSummary counts attendance records by status for a period.
type AttendanceSummary struct {
	EmployeeID string                   `json:"employeeID"`
	Period     string                   `json:"period"`
	Counts     map[AttendanceStatus]int `json:"counts"`
}

// AbsentDays counts ABSENT as a full day and HALF_DAY as half a day.
func (s AttendanceSummary) AbsentDays() decimal.Decimal {
	full := decimal.NewFromInt(int64(s.Counts[AttendanceAbsent]))
	half := decimal.NewFromInt(int64(s.Counts[AttendanceHalfDay])).Div(decimal.NewFromInt(2))
	return full.Add(half)
}

type LeaveType string

const (
	LeaveAnnual LeaveType = "ANNUAL"
	LeaveSick   LeaveType = "SICK"
	LeaveUnpaid LeaveType = "UNPAID"
)

func (t LeaveType) IsValid() bool {
	return t == LeaveAnnual || t == LeaveSick || t == LeaveUnpaid
}

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

type LeaveRequest struct {
	LeaveID    string      `json:"leaveID"`
	EmployeeID string      `json:"employeeID"`
	LeaveType  LeaveType   `json:"leaveType"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Days       int         `json:"days"`
	Reason     string      `json:"reason"`
	Status     LeaveStatus `json:"status"`
	ReviewedBy *string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time  `json:"reviewedAt,omitempty"`
	ReviewNote string      `json:"reviewNote"`
	AuditFields
}

// DaysWithin counts the leave days that fall inside [from, to].
func (l LeaveRequest) DaysWithin(from, to time.Time) int {
	start, end := DateOnly(l.StartDate), DateOnly(l.EndDate)
	if s := DateOnly(from); start.Before(s) {
		start = s
	}
	if e := DateOnly(to); end.After(e) {
		end = e
	}
	return InclusiveDays(start, end)
}

// Incentive is a bonus granted to an employee for a payroll period.
type Incentive struct {
	IncentiveID string          `json:"incentiveID"`
	EmployeeID  string          `json:"employeeID"`
	Period      string          `json:"period"` // YYYY-MM
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	SalaryID    *string         `json:"salaryID,omitempty"`
	AuditFields
}

type SalaryStatus string

const (
	SalaryPending SalaryStatus = "PENDING"
	SalaryPaid    SalaryStatus = "PAID"
)

// Salary is one employee's payroll line for a period.
type Salary struct {
	SalaryID        string          `json:"salaryID"`
	EmployeeID      string          `json:"employeeID"`
	Period          string          `json:"period"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	IncentiveAmount decimal.Decimal `json:"incentiveAmount"`
	DeductionAmount decimal.Decimal `json:"deductionAmount"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	AbsentDays      decimal.Decimal `json:"absentDays"`
	UnpaidLeaveDays int             `json:"unpaidLeaveDays"`
	Status          SalaryStatus    `json:"status"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentMethod   *PaymentMethod  `json:"paymentMethod,omitempty"`
	AuditFields
}

// PeriodFormat is the layout of payroll periods.
const PeriodFormat = "2006-01"

// PeriodBounds returns the first and last day of a YYYY-MM period.
func PeriodBounds(period string) (time.Time, time.Time, error) {
	start, err := time.Parse(PeriodFormat, period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q, expected YYYY-MM: %w", period, err)
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}
