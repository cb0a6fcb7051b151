package domain

import "time"

type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// OrderPricing is the pricing snapshot stored on an order. Unlike
// PriceBreakdown it carries no item count.
type OrderPricing struct {
	ItemsTotal   float64 `json:"itemsTotal"`
	ShippingCost float64 `json:"shippingCost"`
	Tax          float64 `json:"tax"`
	OrderTotal   float64 `json:"orderTotal"`
}

// Order is an immutable snapshot of a cart and its pricing taken at
// checkout time. Items is a copy, not a live reference; later cart
// mutations must not affect a placed order. Only Status may change
// after creation.
type Order struct {
	OrderID        string         `json:"orderId"`
	OrderDate      time.Time      `json:"orderDate"`
	Items          []CartItem     `json:"items"`
	DeliveryOption ShippingOption `json:"deliveryOption"`
	Pricing        OrderPricing   `json:"pricing"`
	Status         OrderStatus    `json:"status"`
}
