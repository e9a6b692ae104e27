// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository defines the cache operations used by the collection services
type CacheRepository interface {
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// GetOrSet fills dest from the cache, or from fetch on a miss and
	// stores the fetched value with ttl
	GetOrSet(ctx context.Context, key string, dest any,
		fetch func() (any, error), ttl time.Duration) error

	Ping(ctx context.Context) error
}
