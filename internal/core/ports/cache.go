// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	// Set stores a value in the cache with the default TTL
	Set(ctx context.Context, key string, value interface{}) error

	// SetWithTTL stores a value in the cache with a custom TTL
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX stores a value only when the key is absent and reports whether
	// it was written; used as a cross-process lock
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Get retrieves a value from the cache into dest
	Get(ctx context.Context, key string, dest interface{}) error

	// GetOrSet returns the cached value for key, or runs fetch and
	// caches its result when the key is absent
	GetOrSet(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error), ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if all given keys exist in the cache
	Exists(ctx context.Context, keys ...string) (bool, error)

	// Expire sets a new TTL on an existing key
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining time-to-live of a key
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping verifies the cache connection
	Ping(ctx context.Context) error
}
