package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/fjod/go_storefront/internal/checkout"
)

type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
}

func NewCheckoutHandler(o *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{orchestrator: o}
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orchestrator.PlaceOrder(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusUnprocessableEntity, "empty_cart", "your cart is empty")
		case errors.Is(err, checkout.ErrNoShipping):
			respondError(w, http.StatusUnprocessableEntity, "no_shipping", "please select a delivery option")
		case errors.Is(err, checkout.ErrCheckoutInFlight):
			respondError(w, http.StatusConflict, "checkout_in_flight", "an order is already being placed")
		default:
			log.Printf("request %s: order submission failed: %v", getRequestID(r.Context()), err)
			respondError(w, http.StatusBadGateway, "submission_failed", "failed to place order, please try again")
		}
		return
	}

	respondJSON(w, http.StatusCreated, convertOrder(*order))
}
