package pricing

import "github.com/fjod/go_storefront/internal/domain"

// TaxRate is applied to the items total only; shipping is not taxed.
const TaxRate = 0.10

func ItemSubtotal(item domain.CartItem) float64 {
	return item.Price * float64(item.Quantity)
}

func ItemsTotal(items []domain.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += ItemSubtotal(item)
	}
	return sum
}

func ItemCount(items []domain.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Calculate computes the full price breakdown for a cart plus an optional
// shipping option. It is a pure function: inputs are not mutated and
// identical inputs always produce identical output. Totals are kept
// unrounded; display rounding happens at the API boundary.
func Calculate(items []domain.CartItem, shipping *domain.ShippingOption) domain.PriceBreakdown {
	itemsTotal := ItemsTotal(items)

	var shippingCost float64
	if shipping != nil {
		shippingCost = shipping.Price
	}

	subtotal := itemsTotal + shippingCost
	tax := itemsTotal * TaxRate

	return domain.PriceBreakdown{
		ItemsTotal:   itemsTotal,
		ShippingCost: shippingCost,
		Subtotal:     subtotal,
		Tax:          tax,
		OrderTotal:   subtotal + tax,
		ItemCount:    ItemCount(items),
	}
}
