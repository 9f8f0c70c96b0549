package repository

import (
	"context"
	"time"
)

// CacheRepository stores opaque values. Get returns nil, nil on a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr atomically increments the integer stored at key, starting from 0.
	Incr(ctx context.Context, key string) (int64, error)
}
