package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/dto"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServiceError writes the status matching err. Server errors hide their cause from the client.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: "Failed to " + action})
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// requireUserID reads the authenticated user and answers 401 when it is missing.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, logger *slog.Logger, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}

// queryDate parses an optional YYYY-MM-DD query value, falling back to def when absent.
func queryDate(c *gin.Context, logger *slog.Logger, name string, value string, def time.Time) (time.Time, bool) {
	if value == "" {
		return def, true
	}
	t, err := dto.ParseDate(value)
	if err != nil {
		logger.Warn("Invalid date query parameter", slog.String("param", name), slog.String("value", value))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + ": " + err.Error()})
		return time.Time{}, false
	}
	return t, true
}
