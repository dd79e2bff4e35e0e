package cache

import (
	"context"
	"time"

	"github.com/skinmatch/backend/internal/domain"
)

// NoopCache satisfies domain.CacheRepository without storing anything.
// Used when cache.type is "none".
type NoopCache struct{}

// Get always misses
func (NoopCache) Get(ctx context.Context, key string) (*domain.RecommendationResult, error) {
	return nil, domain.ErrCacheMiss
}

// Set discards the value
func (NoopCache) Set(ctx context.Context, key string, value *domain.RecommendationResult, ttl time.Duration) error {
	return nil
}

// Purge is a no-op
func (NoopCache) Purge(ctx context.Context) error {
	return nil
}
