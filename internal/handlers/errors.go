package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the {success:false, error} envelope.
// noun names the resource for 404s ("Account"), action describes the operation for
// generic failures ("create account").
func respondError(c *gin.Context, err error, noun, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrCurrencyMismatch):
		c.JSON(http.StatusBadRequest, dto.Fail("Cannot transfer between different currencies"))
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, dto.Fail("Insufficient balance"))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(noun+" not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.Fail(noun+" not found"))
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail(detail(err, apperrors.ErrValidation)))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.Fail(detail(err, apperrors.ErrDuplicate)))
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent update conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.Fail("The data changed while processing the request, please retry"))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail("Forbidden"))
	case errors.Is(err, apperrors.ErrUnavailable):
		logger.Error("Dependency unavailable", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.Fail("Service temporarily unavailable"))
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to "+action))
	}
}

// detail returns the human-readable part of err that follows the sentinel's text.
func detail(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// bindFailed answers a request whose body or query did not bind.
func bindFailed(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.Fail("Invalid request: "+bindingMessage(err)))
}

// currentUserID returns the authenticated user's ID, answering 401 when absent.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return "", false
	}
	return userID, true
}
