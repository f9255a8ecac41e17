package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// hrHandler serves employees, attendance, leave, incentives and payroll.
type hrHandler struct {
	employeeService   portssvc.EmployeeSvc
	attendanceService portssvc.AttendanceSvc
	leaveService      portssvc.LeaveSvc
	incentiveService  portssvc.IncentiveSvc
	payrollService    portssvc.PayrollSvc
}

func registerHRRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &hrHandler{
		employeeService:   services.Employee,
		attendanceService: services.Attendance,
		leaveService:      services.Leave,
		incentiveService:  services.Incentive,
		payrollService:    services.Payroll,
	}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
		employees.DELETE("/:id", h.deactivateEmployee)
		employees.POST("/:id/attendance", h.recordAttendance)
		employees.GET("/:id/attendance", h.listAttendance)
		employees.GET("/:id/attendance/summary", h.attendanceSummary)
		employees.POST("/:id/leaves", h.requestLeave)
	}

	leaves := rg.Group("/leaves")
	{
		leaves.GET("", h.listLeaves)
		leaves.GET("/:id", h.getLeave)
		leaves.POST("/:id/approve", h.approveLeave)
		leaves.POST("/:id/reject", h.rejectLeave)
		leaves.POST("/:id/cancel", h.cancelLeave)
	}

	incentives := rg.Group("/incentives")
	{
		incentives.POST("", h.createIncentive)
		incentives.GET("", h.listIncentives)
		incentives.DELETE("/:id", h.deleteIncentive)
	}

	salaries := rg.Group("/salaries")
	{
		salaries.POST("", h.generateSalary)
		salaries.GET("", h.listSalaries)
		salaries.GET("/:id", h.getSalary)
		salaries.POST("/:id/pay", h.paySalary)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Tags hr
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} domain.Employee
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Employee code already exists"
// @Security BearerAuth
// @Router /employees [post]
func (h *hrHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create employee")
		return
	}
	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, employee)
}

// getEmployee godoc
// @Summary Get an employee
// @Tags hr
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *hrHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// listEmployees godoc
// @Summary List employees
// @Tags hr
// @Produce json
// @Param department query string false "Filter by department"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListEmployeesResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *hrHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListEmployeesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list employees")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(employees, params.ListParams))
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags hr
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} domain.Employee
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *hrHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "update employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// deactivateEmployee godoc
// @Summary Deactivate an employee
// @Tags hr
// @Param id path string true "Employee ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *hrHandler) deactivateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.employeeService.DeactivateEmployee(c.Request.Context(), c.Param("id"), actorID); err != nil {
		handleServiceError(c, logger, err, "deactivate employee")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordAttendance godoc
// @Summary Record attendance for a day
// @Description One row per employee and date. Recording the same date again replaces it.
// @Tags hr
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param attendance body dto.RecordAttendanceRequest true "Attendance entry"
// @Success 200 {object} domain.Attendance
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/attendance [post]
func (h *hrHandler) recordAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.RecordAttendanceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	attendance, err := h.attendanceService.RecordAttendance(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "record attendance")
		return
	}
	c.JSON(http.StatusOK, attendance)
}

// listAttendance godoc
// @Summary List attendance in a date range
// @Tags hr
// @Produce json
// @Param id path string true "Employee ID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {array} domain.Attendance
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/attendance [get]
func (h *hrHandler) listAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.AttendanceRangeParams
	if !bindQuery(c, logger, &params) {
		return
	}
	from, ok := queryDate(c, logger, "from", params.From, time.Time{})
	if !ok {
		return
	}
	to, ok := queryDate(c, logger, "to", params.To, time.Time{})
	if !ok {
		return
	}

	rows, err := h.attendanceService.ListAttendance(c.Request.Context(), c.Param("id"), from, to, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list attendance")
		return
	}
	if rows == nil {
		rows = []domain.Attendance{}
	}
	c.JSON(http.StatusOK, rows)
}

// attendanceSummary godoc
// @Summary Count attendance per status for a payroll period
// @Tags hr
// @Produce json
// @Param id path string true "Employee ID"
// @Param period query string true "Period (YYYY-MM)"
// @Success 200 {object} domain.AttendanceSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/attendance/summary [get]
func (h *hrHandler) attendanceSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.AttendanceSummaryParams
	if !bindQuery(c, logger, &params) {
		return
	}

	summary, err := h.attendanceService.AttendanceSummary(c.Request.Context(), c.Param("id"), params.Period, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "summarize attendance")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// requestLeave godoc
// @Summary Request leave for an employee
// @Tags hr
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param leave body dto.CreateLeaveRequest true "Leave details"
// @Success 201 {object} domain.LeaveRequest
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Overlaps a pending or approved leave"
// @Security BearerAuth
// @Router /employees/{id}/leaves [post]
func (h *hrHandler) requestLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateLeaveRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	leave, err := h.leaveService.RequestLeave(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "request leave")
		return
	}
	logger.Info("Leave requested", slog.String("leave_id", leave.LeaveID), slog.Int("days", leave.Days))
	c.JSON(http.StatusCreated, leave)
}

// getLeave godoc
// @Summary Get a leave request
// @Tags hr
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} domain.LeaveRequest
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leaves/{id} [get]
func (h *hrHandler) getLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	leave, err := h.leaveService.GetLeave(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve leave")
		return
	}
	c.JSON(http.StatusOK, leave)
}

// listLeaves godoc
// @Summary List leave requests
// @Tags hr
// @Produce json
// @Param employeeID query string false "Filter by employee"
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, CANCELLED)
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListLeavesResponse
// @Security BearerAuth
// @Router /leaves [get]
func (h *hrHandler) listLeaves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListLeavesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	leaves, err := h.leaveService.ListLeaves(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list leaves")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(leaves, params.ListParams))
}

// approveLeave godoc
// @Summary Approve a pending leave request
// @Tags hr
// @Accept json
// @Produce json
// @Param id path string true "Leave ID"
// @Param review body dto.ReviewLeaveRequest false "Review note"
// @Success 200 {object} domain.LeaveRequest
// @Failure 409 {object} ErrorResponse "Leave is not pending"
// @Security BearerAuth
// @Router /leaves/{id}/approve [post]
func (h *hrHandler) approveLeave(c *gin.Context) {
	h.reviewLeave(c, "approve leave", h.leaveService.ApproveLeave)
}

// rejectLeave godoc
// @Summary Reject a pending leave request
// @Tags hr
// @Accept json
// @Produce json
// @Param id path string true "Leave ID"
// @Param review body dto.ReviewLeaveRequest false "Review note"
// @Success 200 {object} domain.LeaveRequest
// @Failure 409 {object} ErrorResponse "Leave is not pending"
// @Security BearerAuth
// @Router /leaves/{id}/reject [post]
func (h *hrHandler) rejectLeave(c *gin.Context) {
	h.reviewLeave(c, "reject leave", h.leaveService.RejectLeave)
}

func (h *hrHandler) reviewLeave(c *gin.Context, action string, review func(ctx context.Context, leaveID string, req dto.ReviewLeaveRequest, actorID string) (*domain.LeaveRequest, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.ReviewLeaveRequest
	// The note is optional, so an empty body is accepted.
	if c.Request.ContentLength > 0 && !bindJSON(c, logger, &req) {
		return
	}
	leaveID := c.Param("id")
	logger = logger.With(slog.String("leave_id", leaveID))

	leave, err := review(c.Request.Context(), leaveID, req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, action)
		return
	}
	logger.Info("Leave reviewed", slog.String("status", string(leave.Status)))
	c.JSON(http.StatusOK, leave)
}

// cancelLeave godoc
// @Summary Cancel a leave request
// @Description Pending or approved leave can be cancelled until its first day.
// @Tags hr
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} domain.LeaveRequest
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /leaves/{id}/cancel [post]
func (h *hrHandler) cancelLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	leave, err := h.leaveService.CancelLeave(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "cancel leave")
		return
	}
	c.JSON(http.StatusOK, leave)
}

// createIncentive godoc
// @Summary Grant an incentive for a payroll period
// @Tags hr
// @Accept json
// @Produce json
// @Param incentive body dto.CreateIncentiveRequest true "Incentive details"
// @Success 201 {object} domain.Incentive
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incentives [post]
func (h *hrHandler) createIncentive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateIncentiveRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	incentive, err := h.incentiveService.CreateIncentive(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create incentive")
		return
	}
	c.JSON(http.StatusCreated, incentive)
}

// listIncentives godoc
// @Summary List incentives
// @Tags hr
// @Produce json
// @Param employeeID query string false "Filter by employee"
// @Param period query string false "Filter by period (YYYY-MM)"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListIncentivesResponse
// @Security BearerAuth
// @Router /incentives [get]
func (h *hrHandler) listIncentives(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListIncentivesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	incentives, err := h.incentiveService.ListIncentives(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list incentives")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(incentives, params.ListParams))
}

// deleteIncentive godoc
// @Summary Delete an incentive
// @Description Only incentives not yet attached to a salary can be deleted.
// @Tags hr
// @Param id path string true "Incentive ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Incentive already paid out"
// @Security BearerAuth
// @Router /incentives/{id} [delete]
func (h *hrHandler) deleteIncentive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.incentiveService.DeleteIncentive(c.Request.Context(), c.Param("id"), actorID); err != nil {
		handleServiceError(c, logger, err, "delete incentive")
		return
	}
	c.Status(http.StatusNoContent)
}

// generateSalary godoc
// @Summary Generate a salary for an employee and period
// @Description Net = base + incentives - (absent days + unpaid leave days) x daily rate, floored at zero.
// @Tags payroll
// @Accept json
// @Produce json
// @Param salary body dto.GenerateSalaryRequest true "Employee and period"
// @Success 201 {object} domain.Salary
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Salary already generated for the period"
// @Security BearerAuth
// @Router /salaries [post]
func (h *hrHandler) generateSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.GenerateSalaryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	logger = logger.With(slog.String("employee_id", req.EmployeeID), slog.String("period", req.Period))

	salary, err := h.payrollService.GenerateSalary(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "generate salary")
		return
	}
	logger.Info("Salary generated", slog.String("salary_id", salary.SalaryID), slog.String("net_amount", salary.NetAmount.String()))
	c.JSON(http.StatusCreated, salary)
}

// getSalary godoc
// @Summary Get a salary
// @Tags payroll
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} domain.Salary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{id} [get]
func (h *hrHandler) getSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	salary, err := h.payrollService.GetSalary(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve salary")
		return
	}
	c.JSON(http.StatusOK, salary)
}

// listSalaries godoc
// @Summary List salaries
// @Tags payroll
// @Produce json
// @Param employeeID query string false "Filter by employee"
// @Param period query string false "Filter by period (YYYY-MM)"
// @Param status query string false "Filter by status" Enums(PENDING, PAID)
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListSalariesResponse
// @Security BearerAuth
// @Router /salaries [get]
func (h *hrHandler) listSalaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListSalariesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	salaries, err := h.payrollService.ListSalaries(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list salaries")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(salaries, params.ListParams))
}

// paySalary godoc
// @Summary Pay a pending salary
// @Description Marks the salary PAID and posts the salary expense journal.
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param payment body dto.PaySalaryRequest true "Payment method"
// @Success 200 {object} domain.Salary
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Salary already paid"
// @Security BearerAuth
// @Router /salaries/{id}/pay [post]
func (h *hrHandler) paySalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.PaySalaryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	salaryID := c.Param("id")
	logger = logger.With(slog.String("salary_id", salaryID))

	salary, err := h.payrollService.PaySalary(c.Request.Context(), salaryID, req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "pay salary")
		return
	}
	logger.Info("Salary paid", slog.String("method", string(req.Method)))
	c.JSON(http.StatusOK, salary)
}
