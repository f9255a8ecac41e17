package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	journalService portssvc.TransactionReaderSvc
}

func newAccountHandler(as portssvc.AccountSvcFacade, js portssvc.TransactionReaderSvc) *accountHandler {
	return &accountHandler{accountService: as, journalService: js}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, journalService portssvc.TransactionReaderSvc) {
	h := newAccountHandler(accountService, journalService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/seed", h.seedAccounts)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deactivateAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the chart. A parent account must have the same type.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Account code already exists"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounting/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("account_name", req.Name))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		handleServiceError(c, logger, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account, including its posted balance
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounting/accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	loggedInUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID, loggedInUserID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   type query string false "Filter by account type" Enums(ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)
// @Param   active query bool false "Filter by active flag"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounting/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	loggedInUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params, loggedInUserID)
	if err != nil {
		handleServiceError(c, logger, err, "list accounts")
		return
	}

	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes name, description or parent. The type is locked once the account has lines.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Type locked by existing transactions"
// @Security BearerAuth
// @Router /accounting/accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	loggedInUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, loggedInUserID)
	if err != nil {
		handleServiceError(c, logger, err, "update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Refused for system accounts and accounts with a non-zero balance
// @Tags accounts
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "System account or non-zero balance"
// @Security BearerAuth
// @Router /accounting/accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	loggedInUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("target_account_id", accountID))

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, loggedInUserID); err != nil {
		handleServiceError(c, logger, err, "deactivate account")
		return
	}

	logger.Info("Account deactivated successfully")
	c.Status(http.StatusNoContent)
}

// seedAccounts godoc
// @Summary Seed the default chart of accounts
// @Description Inserts the built-in chart. Codes that already exist are left untouched.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.SeedAccountsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/accounts/seed [post]
func (h *accountHandler) seedAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loggedInUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	resp, err := h.accountService.SeedChartOfAccounts(c.Request.Context(), loggedInUserID)
	if err != nil {
		handleServiceError(c, logger, err, "seed chart of accounts")
		return
	}

	logger.Info("Chart of accounts seeded", slog.Int("inserted", resp.Inserted), slog.Int("total", resp.Total))
	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List posted lines of an account
// @Description Newest first, cursor paginated. Each line carries the running balance stamped when it was posted.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid cursor"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounting/accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	loggedInUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	resp, err := h.journalService.ListTransactionsByAccount(c.Request.Context(), accountID, params, loggedInUserID)
	if err != nil {
		handleServiceError(c, logger, err, "list account transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
