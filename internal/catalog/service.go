package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fjod/go_storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Fetcher is the upstream catalog source; Client implements it.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// Service is the read-through catalog: cache first, upstream on miss.
type Service struct {
	fetcher Fetcher
	cache   Cache
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(fetcher Fetcher, cache Cache) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
	}
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	// Use singleflight to collapse concurrent upstream fetches
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.GetAll(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		products, errFetch := s.fetcher.FetchProducts(ctx)
		if errFetch != nil {
			return nil, errFetch
		}

		// set cache
		go func() {
			if errSet := s.cache.SetAll(context.Background(), products); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(fmt.Sprintf("product:%d", id), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		product, errFetch := s.fetcher.FetchProduct(ctx, id)
		if errFetch != nil {
			return nil, errFetch
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}
