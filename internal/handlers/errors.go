package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps the apperrors taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response. Internal errors are logged and
// replaced by fallback so driver details never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// bindJSON binds the body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// requireUserID reads the authenticated user, answering 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
