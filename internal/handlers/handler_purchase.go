package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvc
}

func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvc) {
	h := &purchaseHandler{purchaseService: purchaseService}

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.POST("/:id/complete", h.completePurchase)
		purchases.POST("/:id/cancel", h.cancelPurchase)
	}
}

// createPurchase godoc
// @Summary Create a draft purchase order
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} domain.Purchase
// @Failure 400 {object} ErrorResponse "Inactive supplier or invalid items"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create purchase")
		return
	}
	logger.Info("Purchase created", slog.String("purchase_id", purchase.PurchaseID), slog.String("purchase_number", purchase.PurchaseNumber))
	c.JSON(http.StatusCreated, purchase)
}

// getPurchase godoc
// @Summary Get a purchase order
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} domain.Purchase
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// listPurchases godoc
// @Summary List purchase orders
// @Tags purchases
// @Produce json
// @Param status query string false "Filter by status" Enums(DRAFT, COMPLETED, CANCELLED)
// @Param supplierID query string false "Filter by supplier"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListPurchasesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListPurchasesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list purchases")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(purchases, params.ListParams))
}

// completePurchase godoc
// @Summary Complete a purchase order
// @Description Receives the ordered stock, updates unit costs and posts the purchase journal.
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} domain.Purchase
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Purchase is not a draft"
// @Security BearerAuth
// @Router /purchases/{id}/complete [post]
func (h *purchaseHandler) completePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	purchaseID := c.Param("id")
	logger = logger.With(slog.String("purchase_id", purchaseID))

	purchase, err := h.purchaseService.CompletePurchase(c.Request.Context(), purchaseID, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "complete purchase")
		return
	}
	logger.Info("Purchase completed", slog.String("total_amount", purchase.TotalAmount.String()))
	c.JSON(http.StatusOK, purchase)
}

// cancelPurchase godoc
// @Summary Cancel a draft purchase order
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} domain.Purchase
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id}/cancel [post]
func (h *purchaseHandler) cancelPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	purchase, err := h.purchaseService.CancelPurchase(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "cancel purchase")
		return
	}
	c.JSON(http.StatusOK, purchase)
}
