package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
)

// responseRecorder copies everything the handler writes.
type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a request repeated with the
// same Idempotency-Key. Keys are scoped to the authenticated user. Store
// failures let the request through; 5xx responses are not stored.
func Idempotency(store portsrepo.IdempotencyRepository, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if userID, ok := GetUserIDFromContext(c); ok {
			key = userID + ":" + key
		}

		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		cached, err := store.Get(ctx, key)
		if err != nil {
			logger.Error("Failed to read idempotency key", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if cached != nil {
			logger.Info("Idempotency cache hit")
			c.Header(IdempotencyHitHeader, "true")
			c.Data(cached.StatusCode, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder
		c.Next()

		if status := recorder.Status(); status < http.StatusInternalServerError {
			err := store.Save(ctx, key, portsrepo.CachedResponse{
				StatusCode: status,
				Body:       recorder.body.Bytes(),
			}, ttl)
			if err != nil {
				logger.Error("Failed to save idempotency key", slog.String("error", err.Error()))
			}
		}
	}
}
