package domain

import (
	"context"
	"time"
)

// CatalogRepository defines the interface for the product catalog store
type CatalogRepository interface {
	// Add appends a product, assigns it the next id and returns that id
	Add(ctx context.Context, product Product) (int, error)
	// All returns a copy of every product in insertion order
	All(ctx context.Context) ([]Product, error)
	Len() int
	// Version changes whenever the catalog contents change
	Version() int
}

// CacheRepository defines the interface for caching recommendation results
type CacheRepository interface {
	Get(ctx context.Context, key string) (*RecommendationResult, error)
	Set(ctx context.Context, key string, value *RecommendationResult, ttl time.Duration) error
	Purge(ctx context.Context) error
}
