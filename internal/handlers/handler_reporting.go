package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/accounts/:id/statement", h.getAccountStatement)
	}
}

func (h *reportingHandler) parseAsOf(c *gin.Context, logger *slog.Logger) (time.Time, bool) {
	var params dto.ReportDateParams
	if !bindQuery(c, logger, &params) {
		return time.Time{}, false
	}
	return queryDate(c, logger, "asOf", params.AsOf, domain.DateOnly(h.now()))
}

func (h *reportingHandler) parseRange(c *gin.Context, logger *slog.Logger) (dto.ReportRangeParams, time.Time, time.Time, bool) {
	var params dto.ReportRangeParams
	if !bindQuery(c, logger, &params) {
		return params, time.Time{}, time.Time{}, false
	}
	today := domain.DateOnly(h.now())
	from, ok := queryDate(c, logger, "from", params.From, time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		return params, time.Time{}, time.Time{}, false
	}
	to, ok := queryDate(c, logger, "to", params.To, today)
	if !ok {
		return params, time.Time{}, time.Time{}, false
	}
	return params, from, to, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Debit and credit totals per account from posted journals, with the net balance in its natural column
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (User not authorized)"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	asOf, ok := h.parseAsOf(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Time("asOf", asOf))
	logger.Info("Received request to generate trial balance report")

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf, userID)
	if err != nil {
		handleServiceError(c, logger, err, "generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(report.Rows)), slog.Bool("balanced", report.IsBalanced))
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Assets, liabilities and equity as of a date. Unclosed profit appears as current earnings.
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden (User not authorized)"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	asOf, ok := h.parseAsOf(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Time("asOf", asOf))

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf, userID)
	if err != nil {
		handleServiceError(c, logger, err, "generate balance sheet report")
		return
	}

	logger.Info("Balance sheet report generated successfully", slog.Bool("balanced", report.IsBalanced))
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement report
// @Description Revenue and expenses for a period with the resulting net income
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden (User not authorized)"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	_, from, to, ok := h.parseRange(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Time("from", from), slog.Time("to", to))

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), from, to, userID)
	if err != nil {
		handleServiceError(c, logger, err, "generate income statement report")
		return
	}

	logger.Info("Income statement report generated successfully", slog.String("net_income", report.NetIncome.String()))
	c.JSON(http.StatusOK, report)
}

// getGeneralLedger godoc
// @Summary Generate general ledger report
// @Description Per-account lines with opening, running and closing balances. Accounts without activity are omitted.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Param accountID query string false "Restrict to one account"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden (User not authorized)"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	params, from, to, ok := h.parseRange(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Time("from", from), slog.Time("to", to))

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), from, to, params.AccountID, userID)
	if err != nil {
		handleServiceError(c, logger, err, "generate general ledger report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getAccountStatement godoc
// @Summary Generate an account statement
// @Description One account's ledger with opening balance, totals and closing balance
// @Tags reports
// @Produce json
// @Param id path string true "Account ID"
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.AccountStatement
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/accounts/{id}/statement [get]
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	_, from, to, ok := h.parseRange(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.Time("from", from), slog.Time("to", to))

	statement, err := h.reportingService.AccountStatement(c.Request.Context(), accountID, from, to, userID)
	if err != nil {
		handleServiceError(c, logger, err, "generate account statement")
		return
	}

	c.JSON(http.StatusOK, statement)
}
