package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSubmitter struct {
	mu      sync.Mutex
	err     error
	block   chan struct{} // when set, Submit waits until closed
	payload Payload
	calls   int
}

func (m *mockSubmitter) Submit(ctx context.Context, payload Payload) error {
	m.mu.Lock()
	m.calls++
	m.payload = payload
	block := m.block
	err := m.err
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func newCheckout(sub Submitter) (*Orchestrator, *cart.Cart, *orders.Orders) {
	c := cart.New()
	o := orders.New()
	return NewOrchestrator(c, o, sub, catalog.PolicyFree), c, o
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	sub := &mockSubmitter{}
	orch, c, o := newCheckout(sub)

	_, err := orch.PlaceOrder(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, o.List(), "no order may be created")
	assert.Empty(t, c.Items(), "cart unchanged")
	assert.Zero(t, sub.calls, "submission must not run")
}

func TestPlaceOrder_Success(t *testing.T) {
	sub := &mockSubmitter{}
	orch, c, o := newCheckout(sub)

	c.Add(domain.CartItem{ProductID: 1, Name: "Backpack", Price: 9.99})
	c.SetShipping(domain.NewShippingOption("free", "Free Delivery", "Friday, June 5", 0))

	order, err := orch.PlaceOrder(context.Background())
	require.NoError(t, err)
	require.NotNil(t, order)

	// order recorded at index 0 with the snapshot pricing
	list := o.List()
	require.Len(t, list, 1)
	assert.Equal(t, order.OrderID, list[0].OrderID)
	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, domain.OrderStatusPreparing, order.Status)
	assert.InDelta(t, 9.99, order.Pricing.ItemsTotal, 1e-9)
	assert.Zero(t, order.Pricing.ShippingCost)
	assert.InDelta(t, 0.999, order.Pricing.Tax, 1e-9)
	assert.InDelta(t, 10.989, order.Pricing.OrderTotal, 1e-9)

	// cart emptied only after the order exists
	assert.Empty(t, c.Items())
	assert.Nil(t, c.SelectedShipping())
}

func TestPlaceOrder_DefaultsShippingWhenNoneSelected(t *testing.T) {
	sub := &mockSubmitter{}
	orch, c, _ := newCheckout(sub)
	c.Add(domain.CartItem{ProductID: 1, Price: 10})

	order, err := orch.PlaceOrder(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "free", order.DeliveryOption.ID, "free policy picks the free tier")
	assert.Zero(t, order.Pricing.ShippingCost)
}

func TestPlaceOrder_CheapestPolicy(t *testing.T) {
	sub := &mockSubmitter{}
	c := cart.New()
	o := orders.New()
	orch := NewOrchestrator(c, o, sub, catalog.PolicyCheapest)
	c.Add(domain.CartItem{ProductID: 1, Price: 10})

	order, err := orch.PlaceOrder(context.Background())
	require.NoError(t, err)

	// the free tier is also the cheapest of the fixed three
	assert.Equal(t, "free", order.DeliveryOption.ID)
}

func TestPlaceOrder_SubmissionFailure_CartUntouched(t *testing.T) {
	sub := &mockSubmitter{err: errors.New("network down")}
	orch, c, o := newCheckout(sub)

	c.Add(domain.CartItem{ProductID: 1, Price: 10})
	c.Add(domain.CartItem{ProductID: 1, Price: 10})
	shipping := domain.NewShippingOption("standard", "Standard Delivery", "Thursday, June 4", 4.99)
	c.SetShipping(shipping)

	_, err := orch.PlaceOrder(context.Background())

	require.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Empty(t, o.List())
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].Quantity, "cart left intact for retry")
	require.NotNil(t, c.SelectedShipping())
}

func TestPlaceOrder_RetryAfterFailure(t *testing.T) {
	sub := &mockSubmitter{err: errors.New("network down")}
	orch, c, o := newCheckout(sub)
	c.Add(domain.CartItem{ProductID: 1, Price: 10})

	_, err := orch.PlaceOrder(context.Background())
	require.Error(t, err)

	sub.mu.Lock()
	sub.err = nil
	sub.mu.Unlock()

	order, err := orch.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Len(t, o.List(), 1)
	assert.Equal(t, order.OrderID, o.List()[0].OrderID)
	assert.Empty(t, c.Items())
}

func TestPlaceOrder_DoubleSubmitGuard(t *testing.T) {
	block := make(chan struct{})
	sub := &mockSubmitter{block: block}
	orch, c, _ := newCheckout(sub)
	c.Add(domain.CartItem{ProductID: 1, Price: 10})

	firstDone := make(chan error, 1)
	go func() {
		_, err := orch.PlaceOrder(context.Background())
		firstDone <- err
	}()

	// wait until the first attempt is inside Submit
	require.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return sub.calls == 1
	}, time.Second, 5*time.Millisecond)

	_, err := orch.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(block)
	require.NoError(t, <-firstDone)

	// flag resets once the attempt finishes
	c.Add(domain.CartItem{ProductID: 2, Price: 5})
	_, err = orch.PlaceOrder(context.Background())
	assert.NoError(t, err)
}

func TestPlaceOrder_SnapshotTakenBeforeClear(t *testing.T) {
	sub := &mockSubmitter{}
	orch, c, o := newCheckout(sub)

	c.Add(domain.CartItem{ProductID: 1, Name: "Backpack", Price: 109.95})
	c.UpdateQuantity(1, 3)

	order, err := orch.PlaceOrder(context.Background())
	require.NoError(t, err)

	stored, ok := o.Get(order.OrderID)
	require.True(t, ok)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity, "order keeps the pre-clear snapshot")
	assert.Len(t, sub.payload.Items, 1)
}

func TestSimulatedSubmitter_Delay(t *testing.T) {
	sub := NewSimulatedSubmitter(20 * time.Millisecond)

	start := time.Now()
	err := sub.Submit(context.Background(), Payload{})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatedSubmitter_ContextCancelled(t *testing.T) {
	sub := NewSimulatedSubmitter(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sub.Submit(ctx, Payload{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
