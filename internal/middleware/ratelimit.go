package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewMemoryLimiter builds a limiter from a formatted rate such as "120-M",
// backed by an in-process store.
func NewMemoryLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests per client IP.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
