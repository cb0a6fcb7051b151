package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Catalog is the slice of the catalog service the handlers need.
type Catalog interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(c Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: c,
		timeout: timeout,
	}
}

type ProductResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"imageUrl"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	RatingValue    float64 `json:"ratingValue"`
	ReviewCount    int     `json:"reviewCount"`
	AvailableStock int     `json:"availableStock"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
	if err != nil {
		log.Printf("request %s: fetch products failed: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to fetch products")
		return
	}

	dtos := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, convertProduct(p))
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: dtos})
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("request %s: fetch product %d failed: %v", getRequestID(r.Context()), id, err)
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(*product))
}

func convertProduct(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		Description:    p.Description,
		Category:       p.Category,
		RatingValue:    p.RatingValue,
		ReviewCount:    p.ReviewCount,
		AvailableStock: p.AvailableStock,
	}
}
