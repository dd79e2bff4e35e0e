package catalog

import (
	"context"
	"sync"

	"github.com/skinmatch/backend/internal/domain"
)

// MemoryCatalog is a thread-safe in-memory product table that preserves insertion order
type MemoryCatalog struct {
	products []domain.Product
	maxID    int
	version  int
	mutex    sync.RWMutex
}

// NewMemoryCatalog creates a catalog populated with the seed products
func NewMemoryCatalog() *MemoryCatalog {
	c := NewEmptyCatalog()
	c.Seed(SeedProducts())
	return c
}

// NewEmptyCatalog creates a catalog with no products
func NewEmptyCatalog() *MemoryCatalog {
	return &MemoryCatalog{}
}

// Seed appends products keeping their ids as given
func (c *MemoryCatalog) Seed(products []domain.Product) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, p := range products {
		c.products = append(c.products, normalizeProduct(p))
		if p.ID > c.maxID {
			c.maxID = p.ID
		}
	}
	c.version++
}

// Add appends a product and assigns it max(id)+1
func (c *MemoryCatalog) Add(ctx context.Context, product domain.Product) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxID++
	product.ID = c.maxID
	c.products = append(c.products, normalizeProduct(product))
	c.version++

	return product.ID, nil
}

// All returns a deep copy of the catalog in insertion order
func (c *MemoryCatalog) All(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = copyProduct(p)
	}
	return out, nil
}

// Len returns the number of products in the catalog
func (c *MemoryCatalog) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.products)
}

// Version returns a counter that increases on every change to the catalog
func (c *MemoryCatalog) Version() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.version
}

// normalizeProduct collapses duplicate ingredient and condition tokens,
// keeping the first occurrence of each.
func normalizeProduct(p domain.Product) domain.Product {
	p.Ingredients = dedupe(p.Ingredients)
	p.Conditions = dedupe(p.Conditions)
	return p
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func copyProduct(p domain.Product) domain.Product {
	p.Ingredients = append(make([]string, 0, len(p.Ingredients)), p.Ingredients...)
	p.Conditions = append(make([]string, 0, len(p.Conditions)), p.Conditions...)
	return p
}
