package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the interface (port) for the key-value store behind the
// response cache. Implementations are adapters such as RedisCacheAdapter.
type Cache interface {
	// Get retrieves an item from the cache.
	// It returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set adds an item to the cache, overwriting an existing item if one exists.
	// If expiration is 0, the item does not expire.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Incr atomically increments the integer stored at key and returns the new value.
	// A missing key counts as 0.
	Incr(ctx context.Context, key string) (int64, error)

	// SAdd adds members to the set stored at key.
	SAdd(ctx context.Context, key string, members ...string) error

	// SMembers returns every member of the set stored at key.
	SMembers(ctx context.Context, key string) ([]string, error)

	// Expire sets an expiration time on key.
	Expire(ctx context.Context, key string, expiration time.Duration) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error
}
