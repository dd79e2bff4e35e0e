package cache

import (
	"context"
	"sync"
	"time"

	"github.com/skinmatch/backend/internal/domain"
)

// defaultCleanupInterval is how often expired entries are swept
const defaultCleanupInterval = 10 * time.Minute

// cacheItem represents a single cached result with expiration
type cacheItem struct {
	Value      domain.RecommendationResult
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory recommendation cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithCleanup(defaultCleanupInterval)
}

// NewMemoryCacheWithCleanup creates a cache that sweeps expired entries every interval
func NewMemoryCacheWithCleanup(interval time.Duration) *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
		stop: make(chan struct{}),
	}

	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	go cache.cleanupExpired(interval)

	return cache
}

// Get retrieves a copy of a cached result
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.RecommendationResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	// Check if expired
	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	result := copyResult(item.Value)
	return &result, nil
}

// Set stores a copy of the result with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value *domain.RecommendationResult, ttl time.Duration) error {
	if value == nil {
		return nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Value:      copyResult(*value),
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Purge drops every cached result; called whenever the catalog changes
func (c *MemoryCache) Purge(ctx context.Context) error {
	c.Clear()
	return nil
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *MemoryCache) removeExpired(now time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
		}
	}
}

func copyResult(r domain.RecommendationResult) domain.RecommendationResult {
	r.Recommendations = append(make([]domain.Recommendation, 0, len(r.Recommendations)), r.Recommendations...)
	return r
}
