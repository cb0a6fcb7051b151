package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cart    *cart.Cart
	catalog Catalog
	timeout time.Duration
	now     func() time.Time
}

func NewCartHandler(c *cart.Cart, cat Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    c,
		catalog: cat,
		timeout: timeout,
		now:     time.Now,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"productId"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type SetShippingRequestDTO struct {
	ID string `json:"id"`
}

type PricingDTO struct {
	ItemsTotal   float64 `json:"itemsTotal"`
	ShippingCost float64 `json:"shippingCost"`
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	OrderTotal   float64 `json:"orderTotal"`
	ItemCount    int     `json:"itemCount"`
}

type CartResponseDTO struct {
	Items            []domain.CartItem      `json:"items"`
	SelectedShipping *domain.ShippingOption `json:"selectedShipping"`
	Pricing          PricingDTO             `json:"pricing"`
}

// GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to fetch product")
		return
	}

	h.cart.Add(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
	})

	respondJSON(w, http.StatusCreated, h.view())
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.cart.UpdateQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.view())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	h.cart.Remove(productID)
	respondJSON(w, http.StatusOK, h.view())
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, h.view())
}

// PUT /api/v1/cart/shipping
func (h *CartHandler) SetShipping(w http.ResponseWriter, r *http.Request) {
	var req SetShippingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var selected *domain.ShippingOption
	for _, opt := range catalog.ShippingOptions(h.now()) {
		if opt.ID == req.ID {
			o := opt
			selected = &o
			break
		}
	}
	if selected == nil {
		respondError(w, http.StatusBadRequest, "invalid_shipping_option", "unknown shipping option id")
		return
	}

	h.cart.SetShipping(*selected)
	respondJSON(w, http.StatusOK, h.view())
}

// GET /api/v1/shipping-options
func (h *CartHandler) ShippingOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalog.ShippingOptions(h.now()))
}

func (h *CartHandler) view() CartResponseDTO {
	items := h.cart.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	shipping := h.cart.SelectedShipping()
	breakdown := pricing.Calculate(items, shipping)

	return CartResponseDTO{
		Items:            items,
		SelectedShipping: shipping,
		Pricing:          convertPricing(breakdown),
	}
}

func convertPricing(b domain.PriceBreakdown) PricingDTO {
	return PricingDTO{
		ItemsTotal:   round2(b.ItemsTotal),
		ShippingCost: round2(b.ShippingCost),
		Subtotal:     round2(b.Subtotal),
		Tax:          round2(b.Tax),
		OrderTotal:   round2(b.OrderTotal),
		ItemCount:    b.ItemCount,
	}
}
