package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"foodorder/internal/metrics"
	"foodorder/internal/middleware"
	"foodorder/internal/orders"
)

// Env carries what every handler needs besides its core component.
type Env struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Timeout time.Duration
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e Env) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

func handlePanic(c *gin.Context, env Env, route string) {
	if r := recover(); r != nil {
		env.logger().Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, env Env, status int, route string, message string) {
	env.logger().Info("returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("error", message),
		zap.String("requestId", c.GetString(middleware.RequestIDKey)))
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondOperationError maps the order error kinds to HTTP statuses and records
// the outcome of operation.
func respondOperationError(c *gin.Context, env Env, route, operation string, err error) {
	status, outcome, message := http.StatusInternalServerError, "error", "internal server error"
	switch {
	case errors.Is(err, orders.ErrNotFound):
		status, outcome, message = http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, orders.ErrPermissionDenied):
		status, outcome, message = http.StatusForbidden, "forbidden", "forbidden"
	case errors.Is(err, orders.ErrInvalidInput):
		status, outcome, message = http.StatusBadRequest, "invalid", err.Error()
	case errors.Is(err, orders.ErrInvalidTransition):
		status, outcome, message = http.StatusConflict, "conflict", err.Error()
	case errors.Is(err, orders.ErrUpdateFailed):
		outcome, message = "update_failed", "order status could not be saved"
	}
	env.Metrics.Observe(operation, outcome)
	if status == http.StatusInternalServerError {
		env.logger().Error("operation failed", zap.String("route", route), zap.Error(err))
	}
	respondWithError(c, env, status, route, message)
}

func respondValidationError(c *gin.Context, env Env, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		env.logger().Info("validation failed", zap.String("route", route), zap.Strings("details", details))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	respondWithError(c, env, http.StatusBadRequest, route, "invalid request")
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func requesterID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.UserIDKey)
	return id, id != ""
}
