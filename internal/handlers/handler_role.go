package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

type roleHandler struct {
	roleService portssvc.RoleSvcFacade
}

func registerRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade) {
	h := &roleHandler{roleService: roleService}

	roles := rg.Group("/roles")
	{
		roles.GET("", h.listRoles)
		roles.POST("", h.createRole)
		roles.GET("/:id", h.getRole)
		roles.PUT("/:id/permissions", h.updatePermissions)
	}
}

// listRoles godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {array} domain.Role
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles [get]
func (h *roleHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	roles, err := h.roleService.ListRoles(c.Request.Context(), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list roles")
		return
	}
	c.JSON(http.StatusOK, roles)
}

// getRole godoc
// @Summary Get a role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} domain.Role
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *roleHandler) getRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	role, err := h.roleService.GetRole(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve role")
		return
	}
	c.JSON(http.StatusOK, role)
}

// createRole godoc
// @Summary Create a role
// @Description Permissions are "area:action" strings, "area:*" or "*".
// @Tags roles
// @Accept json
// @Produce json
// @Param role body dto.CreateRoleRequest true "Role details"
// @Success 201 {object} domain.Role
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles [post]
func (h *roleHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateRoleRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "create role")
		return
	}
	logger.Info("Role created", slog.String("role_id", role.RoleID), slog.String("role_name", role.Name))
	c.JSON(http.StatusCreated, role)
}

// updatePermissions godoc
// @Summary Replace a role's permissions
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param permissions body dto.UpdateRolePermissionsRequest true "New permission set"
// @Success 200 {object} domain.Role
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{id}/permissions [put]
func (h *roleHandler) updatePermissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateRolePermissionsRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	role, err := h.roleService.UpdateRolePermissions(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "update role permissions")
		return
	}
	logger.Info("Role permissions updated", slog.String("role_id", role.RoleID))
	c.JSON(http.StatusOK, role)
}
