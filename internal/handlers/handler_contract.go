package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// contractHandler serves rental and sale contracts and their payments.
type contractHandler struct {
	contractService portssvc.ContractSvcFacade
}

func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.ContractSvcFacade) {
	h := &contractHandler{contractService: contractService}

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:id", h.getContract)
		contracts.PUT("/:id", h.updateContract)
		contracts.POST("/:id/sign", h.transition("sign contract", portssvc.ContractWriterSvc.SignContract))
		contracts.POST("/:id/invoice", h.transition("invoice contract", portssvc.ContractWriterSvc.InvoiceContract))
		contracts.POST("/:id/complete", h.transition("complete contract", portssvc.ContractWriterSvc.CompleteContract))
		contracts.POST("/:id/cancel", h.transition("cancel contract", portssvc.ContractWriterSvc.CancelContract))
		contracts.POST("/:id/payments", h.recordPayment)
		contracts.GET("/:id/payments", h.listPayments)
	}
}

// createContract godoc
// @Summary Create a draft contract
// @Description Unit prices default to the scaffold's daily rental or sale price. Rental lines are priced per inclusive day.
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} domain.Contract
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Customer or scaffold not found"
// @Security BearerAuth
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateContractRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create contract")
		return
	}
	logger.Info("Contract created", slog.String("contract_id", contract.ContractID), slog.String("contract_number", contract.ContractNumber))
	c.JSON(http.StatusCreated, contract)
}

// getContract godoc
// @Summary Get a contract with its items
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} domain.Contract
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *contractHandler) getContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	contract, err := h.contractService.GetContract(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve contract")
		return
	}
	c.JSON(http.StatusOK, contract)
}

// listContracts godoc
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param status query string false "Filter by status" Enums(DRAFT, SIGNED, INVOICED, COMPLETED, CANCELLED)
// @Param customerID query string false "Filter by customer"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListContractsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListContractsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	contracts, err := h.contractService.ListContracts(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list contracts")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(contracts, params.ListParams))
}

// updateContract godoc
// @Summary Update a draft contract
// @Description Replaces items and dates and recomputes totals. Only DRAFT contracts can change.
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param contract body dto.UpdateContractRequest true "New contract content"
// @Success 200 {object} domain.Contract
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Contract is no longer a draft"
// @Security BearerAuth
// @Router /contracts/{id} [put]
func (h *contractHandler) updateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateContractRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	contract, err := h.contractService.UpdateContract(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "update contract")
		return
	}
	c.JSON(http.StatusOK, contract)
}

// transition godoc
// @Summary Move a contract through its lifecycle
// @Description sign: DRAFT to SIGNED, reserves stock. invoice: SIGNED to INVOICED, posts receivable. complete: INVOICED to COMPLETED, returns rented or removes sold stock. cancel: DRAFT or SIGNED to CANCELLED.
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Param action path string true "Lifecycle action" Enums(sign, invoice, complete, cancel)
// @Success 200 {object} domain.Contract
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid transition or insufficient stock"
// @Security BearerAuth
// @Router /contracts/{id}/{action} [post]
func (h *contractHandler) transition(action string, apply func(svc portssvc.ContractWriterSvc, ctx context.Context, contractID string, actorID string) (*domain.Contract, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		actorID, ok := requireUserID(c, logger)
		if !ok {
			return
		}
		contractID := c.Param("id")
		logger = logger.With(slog.String("contract_id", contractID))

		contract, err := apply(h.contractService, c.Request.Context(), contractID, actorID)
		if err != nil {
			handleServiceError(c, logger, err, action)
			return
		}
		logger.Info("Contract status changed", slog.String("action", action), slog.String("status", string(contract.Status)))
		c.JSON(http.StatusOK, contract)
	}
}

// recordPayment godoc
// @Summary Record a customer payment
// @Description Allowed on INVOICED or COMPLETED contracts. The amount cannot exceed the outstanding balance.
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Contract not invoiced"
// @Security BearerAuth
// @Router /contracts/{id}/payments [post]
func (h *contractHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	contractID := c.Param("id")
	logger = logger.With(slog.String("contract_id", contractID))

	payment, contract, err := h.contractService.RecordPayment(c.Request.Context(), contractID, req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "record payment")
		return
	}
	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("payment_status", string(contract.PaymentStatus)))
	c.JSON(http.StatusCreated, dto.RecordPaymentResponse{Payment: *payment, Contract: *contract})
}

// listPayments godoc
// @Summary List payments of a contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {array} domain.Payment
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id}/payments [get]
func (h *contractHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	payments, err := h.contractService.ListPayments(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list payments")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}
