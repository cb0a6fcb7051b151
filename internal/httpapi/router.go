package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the storefront API.
func NewRouter(
	products *ProductHandler,
	carts *CartHandler,
	checkouts *CheckoutHandler,
	orders *OrdersHandler,
	legacy *LegacyOrdersHandler,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Get("/products/{product_id}", products.Get)

		r.Get("/shipping-options", carts.ShippingOptions)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Delete("/", carts.Clear)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{product_id}", carts.UpdateQuantity)
			r.Delete("/items/{product_id}", carts.RemoveItem)
			r.Put("/shipping", carts.SetShipping)
		})

		r.Post("/checkout", checkouts.PlaceOrder)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Get("/{order_id}", orders.Get)
			r.Post("/{order_id}/cancel", orders.Cancel)
			r.Put("/{order_id}/status", orders.UpdateStatus)
		})
	})

	// Legacy order endpoint stub
	r.Post("/api/orders", legacy.Create)
	r.Get("/api/orders", legacy.List)

	return r
}
