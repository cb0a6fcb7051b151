package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache holds normalized catalog responses so repeated browsing does not
// hit the upstream demo API on every request.
type Cache interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	SetAll(ctx context.Context, products []domain.Product) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
}

// MemoryCache is the cache used when no redis address is configured, and
// in tests.
type MemoryCache struct {
	mu       sync.RWMutex
	all      []domain.Product
	products map[int64]domain.Product
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		products: make(map[int64]domain.Product),
	}
}

func (c *MemoryCache) GetAll(context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.all == nil {
		return nil, ErrCacheMiss
	}
	return append([]domain.Product(nil), c.all...), nil
}

func (c *MemoryCache) SetAll(_ context.Context, products []domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = append([]domain.Product(nil), products...)
	return nil
}

func (c *MemoryCache) Get(_ context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return nil, ErrCacheMiss
	}
	return &p, nil
}

func (c *MemoryCache) Set(_ context.Context, product *domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = *product
	return nil
}
