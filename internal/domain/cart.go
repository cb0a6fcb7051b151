package domain

// CartItem is one product-and-quantity line in a cart. At most one line
// exists per ProductID; removal deletes the line, a zero-quantity row
// never exists.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// PriceBreakdown is derived from cart contents plus the chosen shipping
// option. It is recomputed on every read and never stored.
type PriceBreakdown struct {
	ItemsTotal   float64 `json:"itemsTotal"`
	ShippingCost float64 `json:"shippingCost"`
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	OrderTotal   float64 `json:"orderTotal"`
	ItemCount    int     `json:"itemCount"`
}
