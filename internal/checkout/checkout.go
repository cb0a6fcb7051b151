package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/orders"
	"github.com/fjod/go_storefront/internal/pricing"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoShipping       = errors.New("no shipping option selected")
	ErrCheckoutInFlight = errors.New("a checkout is already in progress")
	ErrSubmissionFailed = errors.New("order submission failed")
)

// Orchestrator runs the checkout workflow: validate, price, submit,
// record the order, clear the cart — strictly in that order. Clearing
// before the order is recorded would lose the in-flight snapshot.
type Orchestrator struct {
	cart      *cart.Cart
	orders    *orders.Orders
	submitter Submitter
	policy    catalog.DefaultShippingPolicy
	now       func() time.Time

	mu       sync.Mutex
	inFlight bool
}

func NewOrchestrator(c *cart.Cart, o *orders.Orders, submitter Submitter, policy catalog.DefaultShippingPolicy) *Orchestrator {
	return &Orchestrator{
		cart:      c,
		orders:    o,
		submitter: submitter,
		policy:    policy,
		now:       time.Now,
	}
}

// PlaceOrder executes one checkout attempt. On success the new order is
// at index 0 of the orders container and the cart is empty. On any
// failure the cart is left untouched so the shopper can retry.
//
// Only one attempt may be in flight at a time; a second concurrent call
// fails with ErrCheckoutInFlight. A context cancelled after the order was
// recorded does not roll it back.
func (o *Orchestrator) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	o.inFlight = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	// validate
	items := o.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	shipping := o.resolveShipping()
	if shipping == nil {
		return nil, ErrNoShipping
	}

	// snapshot the price breakdown before anything mutates
	breakdown := pricing.Calculate(items, shipping)
	payload := Payload{
		Items:          items,
		DeliveryOption: *shipping,
		Pricing: domain.OrderPricing{
			ItemsTotal:   breakdown.ItemsTotal,
			ShippingCost: breakdown.ShippingCost,
			Tax:          breakdown.Tax,
			OrderTotal:   breakdown.OrderTotal,
		},
	}

	if err := o.submitter.Submit(ctx, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	// record first, clear second
	order := o.orders.Add(payload.Items, payload.DeliveryOption, payload.Pricing)
	o.cart.Clear()

	return &order, nil
}

// resolveShipping returns the selected option, or the policy default when
// none was chosen.
func (o *Orchestrator) resolveShipping() *domain.ShippingOption {
	if selected := o.cart.SelectedShipping(); selected != nil {
		return selected
	}
	return catalog.DefaultShipping(catalog.ShippingOptions(o.now()), o.policy)
}
