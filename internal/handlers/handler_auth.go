package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/scaffold_erp/internal/core/ports/services"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
)

// authHandler handles registration and login.
type authHandler struct {
	authService portssvc.AuthSvc
}

func newAuthHandler(as portssvc.AuthSvc) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvc) error {
	h := newAuthHandler(authService)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
		auth.POST("/register", h.register)
	}
	return nil
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many login attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("username", req.Username))
	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, logger, err, "log in")
		return
	}

	logger.Info("User logged in", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account. The first account ever registered becomes an administrator.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("username", req.Username))
	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, logger, err, "register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}
