package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// crmHandler serves customers and suppliers.
type crmHandler struct {
	customerService portssvc.CustomerSvc
	supplierService portssvc.SupplierSvc
}

func registerCRMRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvc, supplierService portssvc.SupplierSvc) {
	h := &crmHandler{customerService: customerService, supplierService: supplierService}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deactivateCustomer)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.PUT("/:id", h.updateSupplier)
		suppliers.DELETE("/:id", h.deactivateSupplier)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags crm
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Customer code already exists"
// @Security BearerAuth
// @Router /customers [post]
func (h *crmHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create customer")
		return
	}
	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, customer)
}

// getCustomer godoc
// @Summary Get a customer
// @Tags crm
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *crmHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// listCustomers godoc
// @Summary List customers
// @Tags crm
// @Produce json
// @Param q query string false "Search on name or code"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *crmHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListPartiesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(customers, params.ListParams))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags crm
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *crmHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// deactivateCustomer godoc
// @Summary Deactivate a customer
// @Description Soft delete. Inactive customers cannot receive new contracts.
// @Tags crm
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *crmHandler) deactivateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.customerService.DeactivateCustomer(c.Request.Context(), c.Param("id"), actorID); err != nil {
		handleServiceError(c, logger, err, "deactivate customer")
		return
	}
	c.Status(http.StatusNoContent)
}

// createSupplier godoc
// @Summary Create a supplier
// @Tags crm
// @Accept json
// @Produce json
// @Param supplier body dto.CreateSupplierRequest true "Supplier details"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Supplier code already exists"
// @Security BearerAuth
// @Router /suppliers [post]
func (h *crmHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSupplierRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create supplier")
		return
	}
	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	c.JSON(http.StatusCreated, supplier)
}

// getSupplier godoc
// @Summary Get a supplier
// @Tags crm
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *crmHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// listSuppliers godoc
// @Summary List suppliers
// @Tags crm
// @Produce json
// @Param q query string false "Search on name or code"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListSuppliersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /suppliers [get]
func (h *crmHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListPartiesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list suppliers")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(suppliers, params.ListParams))
}

// updateSupplier godoc
// @Summary Update a supplier
// @Tags crm
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param supplier body dto.UpdateSupplierRequest true "Fields to change"
// @Success 200 {object} domain.Supplier
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *crmHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateSupplierRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "update supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// deactivateSupplier godoc
// @Summary Deactivate a supplier
// @Tags crm
// @Param id path string true "Supplier ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /suppliers/{id} [delete]
func (h *crmHandler) deactivateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.supplierService.DeactivateSupplier(c.Request.Context(), c.Param("id"), actorID); err != nil {
		handleServiceError(c, logger, err, "deactivate supplier")
		return
	}
	c.Status(http.StatusNoContent)
}
