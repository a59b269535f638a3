package repositories

import (
	"context"
	"time"
)

// CachedResponse is the stored reply of a request made with an Idempotency-Key.
type CachedResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       []byte `json:"body"`
}

type IdempotencyRepository interface {
	// Get returns the cached response for key, or nil when there is none.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save stores the response for ttl.
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
