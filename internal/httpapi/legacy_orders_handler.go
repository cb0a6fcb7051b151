package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
)

// LegacyOrdersHandler is the order-submission endpoint stub kept for
// compatibility. It validates the payload shape and acknowledges with a
// generated id; nothing is persisted and the checkout flow does not
// depend on it.
type LegacyOrdersHandler struct {
	now func() time.Time
}

func NewLegacyOrdersHandler() *LegacyOrdersHandler {
	return &LegacyOrdersHandler{now: time.Now}
}

type LegacyOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message,omitempty"`
}

// POST /api/orders
func (h *LegacyOrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload checkout.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid order data"})
		return
	}

	if len(payload.Items) == 0 || payload.DeliveryOption.ID == "" || payload.Pricing.OrderTotal == 0 {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid order data"})
		return
	}

	orderID := fmt.Sprintf("ORD-%d", h.now().UnixMilli())
	log.Printf("order received: id=%s items=%d total=%.2f", orderID, len(payload.Items), payload.Pricing.OrderTotal)

	respondJSON(w, http.StatusCreated, LegacyOrderResponse{
		Success: true,
		OrderID: orderID,
		Message: "Order placed successfully",
	})
}

// GET /api/orders
func (h *LegacyOrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": []interface{}{}})
}
