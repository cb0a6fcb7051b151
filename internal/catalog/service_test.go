package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	calls    int32
}

func (m *mockFetcher) FetchProducts(context.Context) ([]domain.Product, error) {
	atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockFetcher) FetchProduct(_ context.Context, id int64) (*domain.Product, error) {
	atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			prod := p
			return &prod, nil
		}
	}
	return nil, ErrProductNotFound
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Backpack", Price: 109.95},
		{ID: 2, Name: "T-Shirt", Price: 22.3},
	}
}

func TestProducts_CacheMissFetchesUpstream(t *testing.T) {
	fetcher := &mockFetcher{products: testProducts()}
	cache := NewMemoryCache()
	svc := NewService(fetcher, cache)

	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// cache is filled asynchronously
	require.Eventually(t, func() bool {
		cached, err := cache.GetAll(context.Background())
		return err == nil && len(cached) == 2
	}, 100*time.Millisecond, 10*time.Millisecond, "products were not set in cache")
}

func TestProducts_CacheHitSkipsUpstream(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("upstream must not be called")}
	cache := NewMemoryCache()
	require.NoError(t, cache.SetAll(context.Background(), testProducts()))

	svc := NewService(fetcher, cache)
	products, err := svc.Products(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Zero(t, atomic.LoadInt32(&fetcher.calls), "upstream must not be hit on a cache hit")
}

func TestProducts_UpstreamError(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("connection refused")}
	svc := NewService(fetcher, NewMemoryCache())

	_, err := svc.Products(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestProduct_ByID(t *testing.T) {
	fetcher := &mockFetcher{products: testProducts()}
	cache := NewMemoryCache()
	svc := NewService(fetcher, cache)

	product, err := svc.Product(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", product.Name)

	require.Eventually(t, func() bool {
		cached, err := cache.Get(context.Background(), 2)
		return err == nil && cached.Name == "T-Shirt"
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestProduct_NotFound(t *testing.T) {
	fetcher := &mockFetcher{products: testProducts()}
	svc := NewService(fetcher, NewMemoryCache())

	_, err := svc.Product(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
