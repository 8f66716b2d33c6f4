package repository

import (
	"context"
	"time"
)

// CacheRepository defines the byte-level cache used for upstream
// response caching.
type CacheRepository interface {
	// Get returns the cached value, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
