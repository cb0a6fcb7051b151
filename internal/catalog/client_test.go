package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamList = `[
	{
		"id": 1,
		"title": "Fjallraven Backpack",
		"price": 109.95,
		"description": "Your perfect pack for everyday use",
		"category": "men's clothing",
		"image": "https://fakestoreapi.com/img/1.jpg",
		"rating": {"rate": 3.9, "count": 120}
	},
	{
		"id": 2,
		"title": "Mens Casual T-Shirt",
		"price": 22.3,
		"description": "Slim-fitting style",
		"category": "men's clothing",
		"image": "https://fakestoreapi.com/img/2.jpg",
		"rating": {"rate": 4.1, "count": 259}
	}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.stock = func() int { return 10 }
	return c
}

func TestFetchProducts_Normalizes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(upstreamList))
	})

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Fjallraven Backpack", p.Name, "title must be aliased to name")
	assert.Equal(t, "https://fakestoreapi.com/img/1.jpg", p.ImageURL, "image must be aliased to imageUrl")
	assert.Equal(t, 3.9, p.RatingValue)
	assert.Equal(t, 120, p.ReviewCount)
	assert.Equal(t, 10, p.AvailableStock)
}

func TestFetchProducts_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchProducts(context.Background())
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestFetchProduct_Normalizes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/2", r.URL.Path)
		w.Write([]byte(`{
			"id": 2,
			"title": "Mens Casual T-Shirt",
			"price": 22.3,
			"description": "Slim-fitting style",
			"category": "men's clothing",
			"image": "https://fakestoreapi.com/img/2.jpg",
			"rating": {"rate": 4.1, "count": 259}
		}`))
	})

	product, err := client.FetchProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Mens Casual T-Shirt", product.Name)
	assert.Equal(t, 22.3, product.Price)
	assert.Equal(t, 259, product.ReviewCount)
	assert.GreaterOrEqual(t, product.AvailableStock, 1)
}

func TestFetchProduct_NotFoundStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFetchProduct_NullBody(t *testing.T) {
	// the demo API answers 200 "null" for unknown ids
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})

	_, err := client.FetchProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMockStock_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		stock := mockStock()
		require.GreaterOrEqual(t, stock, 1)
		require.LessOrEqual(t, stock, 50)
	}
}
