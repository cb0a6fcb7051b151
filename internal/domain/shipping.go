package domain

// ShippingOption is a named delivery tier with a price and an estimated
// calendar date. IsFree is stored independently of Price but must stay
// consistent with Price == 0; use NewShippingOption to keep them in sync.
type ShippingOption struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	IsFree bool    `json:"isFree"`
}

func NewShippingOption(id, label, date string, price float64) ShippingOption {
	return ShippingOption{
		ID:     id,
		Label:  label,
		Date:   date,
		Price:  price,
		IsFree: price == 0,
	}
}
