package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// inventoryHandler serves scaffold equipment and its stock movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := &inventoryHandler{inventoryService: inventoryService}

	scaffolds := rg.Group("/scaffolds")
	{
		scaffolds.POST("", h.createScaffold)
		scaffolds.GET("", h.listScaffolds)
		scaffolds.GET("/:id", h.getScaffold)
		scaffolds.PUT("/:id", h.updateScaffold)
		scaffolds.DELETE("/:id", h.deactivateScaffold)
		scaffolds.POST("/:id/adjustments", h.adjustStock)
		scaffolds.GET("/:id/movements", h.listMovements)
	}
}

// createScaffold godoc
// @Summary Create a scaffold item
// @Description Available quantity starts equal to the total quantity.
// @Tags inventory
// @Accept json
// @Produce json
// @Param scaffold body dto.CreateScaffoldRequest true "Scaffold details"
// @Success 201 {object} domain.Scaffold
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Scaffold code already exists"
// @Security BearerAuth
// @Router /scaffolds [post]
func (h *inventoryHandler) createScaffold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateScaffoldRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	scaffold, err := h.inventoryService.CreateScaffold(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create scaffold")
		return
	}
	logger.Info("Scaffold created", slog.String("scaffold_id", scaffold.ScaffoldID), slog.String("code", scaffold.Code))
	c.JSON(http.StatusCreated, scaffold)
}

// getScaffold godoc
// @Summary Get a scaffold item
// @Tags inventory
// @Produce json
// @Param id path string true "Scaffold ID"
// @Success 200 {object} domain.Scaffold
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scaffolds/{id} [get]
func (h *inventoryHandler) getScaffold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	scaffold, err := h.inventoryService.GetScaffold(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve scaffold")
		return
	}
	c.JSON(http.StatusOK, scaffold)
}

// listScaffolds godoc
// @Summary List scaffold items
// @Tags inventory
// @Produce json
// @Param category query string false "Filter by category"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListScaffoldsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /scaffolds [get]
func (h *inventoryHandler) listScaffolds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListScaffoldsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	scaffolds, err := h.inventoryService.ListScaffolds(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list scaffolds")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(scaffolds, params.ListParams))
}

// updateScaffold godoc
// @Summary Update a scaffold item
// @Description Changes descriptive fields, prices and condition. Quantities change through adjustments only.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Scaffold ID"
// @Param scaffold body dto.UpdateScaffoldRequest true "Fields to change"
// @Success 200 {object} domain.Scaffold
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scaffolds/{id} [put]
func (h *inventoryHandler) updateScaffold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateScaffoldRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	scaffold, err := h.inventoryService.UpdateScaffold(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "update scaffold")
		return
	}
	c.JSON(http.StatusOK, scaffold)
}

// deactivateScaffold godoc
// @Summary Deactivate a scaffold item
// @Tags inventory
// @Param id path string true "Scaffold ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scaffolds/{id} [delete]
func (h *inventoryHandler) deactivateScaffold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.inventoryService.DeactivateScaffold(c.Request.Context(), c.Param("id"), actorID); err != nil {
		handleServiceError(c, logger, err, "deactivate scaffold")
		return
	}
	c.Status(http.StatusNoContent)
}

// adjustStock godoc
// @Summary Adjust stock manually
// @Description Applies a signed delta to total and available quantity and records an ADJUSTMENT movement.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Scaffold ID"
// @Param adjustment body dto.AdjustStockRequest true "Signed quantity change"
// @Success 200 {object} domain.Scaffold
// @Failure 400 {object} ErrorResponse "Result would be negative or below rented quantity"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scaffolds/{id}/adjustments [post]
func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	scaffoldID := c.Param("id")
	logger = logger.With(slog.String("scaffold_id", scaffoldID), slog.Int("delta", req.Delta))

	scaffold, err := h.inventoryService.AdjustStock(c.Request.Context(), scaffoldID, req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "adjust stock")
		return
	}
	logger.Info("Stock adjusted", slog.Int("total_quantity", scaffold.TotalQuantity))
	c.JSON(http.StatusOK, scaffold)
}

// listMovements godoc
// @Summary List stock movements of a scaffold item
// @Tags inventory
// @Produce json
// @Param id path string true "Scaffold ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListStockMovementsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scaffolds/{id}/movements [get]
func (h *inventoryHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListParams
	if !bindQuery(c, logger, &params) {
		return
	}

	movements, err := h.inventoryService.ListStockMovements(c.Request.Context(), c.Param("id"), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list stock movements")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(movements, params))
}
