package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey is the type of the keys this package stores in contexts.
// Using a custom type prevents collisions.
type contextKey string

const loggerCtxKey = contextKey("logger")

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

// StructuredLoggingMiddleware creates a Gin middleware handler that injects
// a request-scoped logger into the request context.
func StructuredLoggingMiddleware(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		// Create a logger enriched with request-specific fields
		requestLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), requestLogger))

		c.Next()

		attrs := []any{
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		// Read back the logger in case later middleware enriched it.
		GetLoggerFromCtx(c.Request.Context()).Info("Request completed", attrs...)
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}
