package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// upstreamProduct is the raw shape returned by the demo product API.
// Normalization into domain.Product happens here and nowhere else, so the
// rest of the code never sees the title/image aliases or the nested
// rating object.
type upstreamProduct struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// Client fetches the product catalog from the external demo API.
type Client struct {
	baseURL string
	http    *http.Client
	stock   func() int
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		stock:   mockStock,
	}
}

// mockStock fakes an availability count in [1,50]; the demo API has no
// inventory data.
func mockStock() int {
	return rand.Intn(50) + 1
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}

	var raw []upstreamProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, c.normalize(p))
	}
	return products, nil
}

func (c *Client) FetchProduct(ctx context.Context, id int64) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch product %d: unexpected status %d", id, resp.StatusCode)
	}

	var raw upstreamProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	// the demo API answers 200 with an empty body for unknown ids
	if raw.ID == 0 {
		return nil, ErrProductNotFound
	}

	product := c.normalize(raw)
	return &product, nil
}

func (c *Client) normalize(p upstreamProduct) domain.Product {
	return domain.Product{
		ID:             p.ID,
		Name:           p.Title,
		Price:          p.Price,
		ImageURL:       p.Image,
		Description:    p.Description,
		Category:       p.Category,
		RatingValue:    p.Rating.Rate,
		ReviewCount:    p.Rating.Count,
		AvailableStock: c.stock(),
	}
}
