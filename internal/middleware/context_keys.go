package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private key type to prevent collisions in context values.
type contextKey string

const (
	loggerCtxKey     = contextKey("logger")
	accountNumberKey = contextKey("accountNumber")
)

// GetLoggerFromCtx retrieves the request-scoped logger from the context,
// falling back to the default logger when no middleware ran.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetAccountNumberFromContext retrieves the session-authenticated account
// number set by SessionAuth.
func GetAccountNumberFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(accountNumberKey); v != nil {
		if number, ok := v.(string); ok {
			return number, true
		}
	}
	return "", false
}
