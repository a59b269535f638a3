package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

// KV is the subset of *redis.Client the repository uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type IdempotencyRepository struct {
	client KV
}

func NewIdempotencyRepository(client KV) *IdempotencyRepository {
	return &IdempotencyRepository{client: client}
}

var _ portsrepo.IdempotencyRepository = (*IdempotencyRepository)(nil)

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*portsrepo.CachedResponse, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	var resp portsrepo.CachedResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}
	return &resp, nil
}

func (r *IdempotencyRepository) Save(ctx context.Context, key string, response portsrepo.CachedResponse, ttl time.Duration) error {
	bytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	return r.client.Set(ctx, keyPrefix+key, bytes, ttl).Err()
}

// NewClient parses url and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
