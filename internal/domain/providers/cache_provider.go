package providers

import (
	"context"
	"time"
)

// CacheProvider is the port for the response cache. The intelligence report
// is expensive to assemble but safe to serve slightly stale, so handlers
// cache whole JSON payloads behind this interface.
type CacheProvider interface {
	// Get retrieves a value from cache; returns an error on miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}
