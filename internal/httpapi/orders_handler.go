package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/orders"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	orders *orders.Orders
}

func NewOrdersHandler(o *orders.Orders) *OrdersHandler {
	return &OrdersHandler{orders: o}
}

type OrderPricingDTO struct {
	ItemsTotal   float64 `json:"itemsTotal"`
	ShippingCost float64 `json:"shippingCost"`
	Tax          float64 `json:"tax"`
	OrderTotal   float64 `json:"orderTotal"`
}

type OrderResponseDTO struct {
	OrderID        string                `json:"orderId"`
	OrderDate      string                `json:"orderDate"`
	Items          []domain.CartItem     `json:"items"`
	DeliveryOption domain.ShippingOption `json:"deliveryOption"`
	Pricing        OrderPricingDTO       `json:"pricing"`
	Status         string                `json:"status"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// GET /api/v1/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.orders.List()

	dtos := make([]OrderResponseDTO, 0, len(list))
	for _, o := range list {
		dtos = append(dtos, convertOrder(o))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	order, ok := h.orders.Get(orderID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

// POST /api/v1/orders/{order_id}/cancel
//
// The container removes unconditionally; the preparing-only restriction
// lives here, at the surface that exposes the action.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")

	order, ok := h.orders.Get(orderID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if order.Status != domain.OrderStatusPreparing {
		respondError(w, http.StatusConflict, "not_cancellable", "only preparing orders can be cancelled")
		return
	}

	h.orders.Cancel(orderID)
	respondJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}

// PUT /api/v1/orders/{order_id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be preparing, shipped or delivered")
		return
	}

	if _, ok := h.orders.Get(orderID); !ok {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	h.orders.UpdateStatus(orderID, status)

	order, _ := h.orders.Get(orderID)
	respondJSON(w, http.StatusOK, convertOrder(order))
}

func convertOrder(o domain.Order) OrderResponseDTO {
	items := o.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	return OrderResponseDTO{
		OrderID:        o.OrderID,
		OrderDate:      o.OrderDate.UTC().Format(time.RFC3339),
		Items:          items,
		DeliveryOption: o.DeliveryOption,
		Pricing: OrderPricingDTO{
			ItemsTotal:   round2(o.Pricing.ItemsTotal),
			ShippingCost: round2(o.Pricing.ShippingCost),
			Tax:          round2(o.Pricing.Tax),
			OrderTotal:   round2(o.Pricing.OrderTotal),
		},
		Status: o.Status.String(),
	}
}
