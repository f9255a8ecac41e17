package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// userHandler handles HTTP requests related to users and their role assignments.
type userHandler struct {
	userService portssvc.UserSvcFacade
	roleService portssvc.RoleSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, rs portssvc.RoleSvcFacade) *userHandler {
	return &userHandler{userService: us, roleService: rs}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, roleService portssvc.RoleSvcFacade) {
	h := newUserHandler(userService, roleService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.DELETE("/:id", h.deactivateUser)
		users.POST("/:id/roles", h.assignRole)
		users.DELETE("/:id/roles/:roleID", h.revokeRole)
	}
}

// getMe godoc
// @Summary Get the current user
// @Description Returns the authenticated user with roles and effective permissions
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve current user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	targetID := c.Param("id")
	logger = logger.With(slog.String("target_user_id", targetID))

	user, err := h.userService.GetUser(c.Request.Context(), targetID, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListResponse[dto.UserResponse]
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListParams
	if !bindQuery(c, logger, &params) {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params, actorID)
	if err != nil {
		handleServiceError(c, logger, err, "list users")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.ToUserResponses(users), params))
}

// deactivateUser godoc
// @Summary Deactivate a user
// @Description Blocks the user from logging in. Existing records keep referring to the user.
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deactivateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	targetID := c.Param("id")
	logger = logger.With(slog.String("target_user_id", targetID))

	if err := h.userService.DeactivateUser(c.Request.Context(), targetID, actorID); err != nil {
		handleServiceError(c, logger, err, "deactivate user")
		return
	}
	logger.Info("User deactivated")
	c.Status(http.StatusNoContent)
}

// assignRole godoc
// @Summary Assign a role to a user
// @Tags users
// @Accept json
// @Param id path string true "User ID"
// @Param role body dto.AssignRoleRequest true "Role to assign"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/roles [post]
func (h *userHandler) assignRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.AssignRoleRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	targetID := c.Param("id")
	logger = logger.With(slog.String("target_user_id", targetID), slog.String("role_id", req.RoleID))

	if err := h.roleService.AssignRole(c.Request.Context(), targetID, req.RoleID, actorID); err != nil {
		handleServiceError(c, logger, err, "assign role")
		return
	}
	logger.Info("Role assigned")
	c.Status(http.StatusNoContent)
}

// revokeRole godoc
// @Summary Revoke a role from a user
// @Tags users
// @Param id path string true "User ID"
// @Param roleID path string true "Role ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/roles/{roleID} [delete]
func (h *userHandler) revokeRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	targetID, roleID := c.Param("id"), c.Param("roleID")
	logger = logger.With(slog.String("target_user_id", targetID), slog.String("role_id", roleID))

	if err := h.roleService.RevokeRole(c.Request.Context(), targetID, roleID, actorID); err != nil {
		handleServiceError(c, logger, err, "revoke role")
		return
	}
	logger.Info("Role revoked")
	c.Status(http.StatusNoContent)
}
