package catalog

import (
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

// DefaultShippingPolicy picks which option a checkout falls back to when
// the shopper never chose one.
type DefaultShippingPolicy string

const (
	// PolicyFree selects the free tier (last tier if none is free).
	PolicyFree DefaultShippingPolicy = "free"
	// PolicyCheapest selects the lowest-priced tier.
	PolicyCheapest DefaultShippingPolicy = "cheapest"
)

// ShippingOptions returns the three fixed delivery tiers with dates
// computed from now.
func ShippingOptions(now time.Time) []domain.ShippingOption {
	fast := deliveryDate(now, 1)
	standard := deliveryDate(now, 3)
	free := deliveryDate(now, 5)

	return []domain.ShippingOption{
		domain.NewShippingOption("fast", "Early Delivery - "+fast, fast, 9.99),
		domain.NewShippingOption("standard", "Standard Delivery - "+standard, standard, 4.99),
		domain.NewShippingOption("free", "Free Delivery - "+free, free, 0),
	}
}

// DefaultShipping resolves the fallback option under the given policy.
// Returns nil only when options is empty.
func DefaultShipping(options []domain.ShippingOption, policy DefaultShippingPolicy) *domain.ShippingOption {
	if len(options) == 0 {
		return nil
	}

	switch policy {
	case PolicyCheapest:
		cheapest := options[0]
		for _, opt := range options[1:] {
			if opt.Price < cheapest.Price {
				cheapest = opt
			}
		}
		return &cheapest
	default:
		for _, opt := range options {
			if opt.IsFree {
				o := opt
				return &o
			}
		}
		last := options[len(options)-1]
		return &last
	}
}

func deliveryDate(now time.Time, daysFromNow int) string {
	return now.AddDate(0, 0, daysFromNow).Format("Monday, January 2")
}
