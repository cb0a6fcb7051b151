package orders

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/google/uuid"
)

// Orders holds the placed orders for one session, newest first. New orders
// are prepended; index 0 is always the most recent, which the success view
// relies on.
//
// OnChange follows the same observer contract as the cart container:
// fire-and-forget, errors swallowed by the observer.
type Orders struct {
	mu     sync.Mutex
	orders []domain.Order
	seen   map[string]struct{}

	now func() time.Time

	OnChange func(orders []domain.Order)
}

func New() *Orders {
	return &Orders{
		seen: make(map[string]struct{}),
		now:  time.Now,
	}
}

// Add creates a new order from the given snapshot, assigns it a fresh
// unique id and creation timestamp, sets status to preparing and prepends
// it. The returned order is the stored value.
func (o *Orders) Add(items []domain.CartItem, delivery domain.ShippingOption, pricing domain.OrderPricing) domain.Order {
	o.mu.Lock()
	order := domain.Order{
		OrderID:        o.nextIDLocked(),
		OrderDate:      o.now(),
		Items:          append([]domain.CartItem(nil), items...),
		DeliveryOption: delivery,
		Pricing:        pricing,
		Status:         domain.OrderStatusPreparing,
	}
	o.orders = append([]domain.Order{order}, o.orders...)
	snapshot := o.snapshotLocked()
	o.mu.Unlock()

	o.notify(snapshot)
	return order
}

// UpdateStatus overwrites the status of the order with the given id.
// Missing order is a no-op. Forward-only progression is a caller
// responsibility; the container does not enforce it.
func (o *Orders) UpdateStatus(orderID string, status domain.OrderStatus) {
	o.mu.Lock()
	found := false
	for i := range o.orders {
		if o.orders[i].OrderID == orderID {
			o.orders[i].Status = status
			found = true
			break
		}
	}
	if !found {
		o.mu.Unlock()
		return
	}
	snapshot := o.snapshotLocked()
	o.mu.Unlock()

	o.notify(snapshot)
}

// Set replaces the whole collection with persisted state.
func (o *Orders) Set(list []domain.Order) {
	o.mu.Lock()
	o.orders = append([]domain.Order(nil), list...)
	for _, ord := range list {
		o.seen[ord.OrderID] = struct{}{}
	}
	snapshot := o.snapshotLocked()
	o.mu.Unlock()

	o.notify(snapshot)
}

// Cancel removes the order with the given id entirely, regardless of
// status; the HTTP layer restricts cancellation to preparing orders.
// Missing order is a no-op. Relative order of the rest is preserved.
func (o *Orders) Cancel(orderID string) {
	o.mu.Lock()
	idx := -1
	for i := range o.orders {
		if o.orders[i].OrderID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		return
	}
	o.orders = append(o.orders[:idx], o.orders[idx+1:]...)
	snapshot := o.snapshotLocked()
	o.mu.Unlock()

	o.notify(snapshot)
}

// List returns a copy of all orders, newest first.
func (o *Orders) List() []domain.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// Get returns the order with the given id, or false when absent.
func (o *Orders) Get(orderID string) (domain.Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, ord := range o.orders {
		if ord.OrderID == orderID {
			return ord, true
		}
	}
	return domain.Order{}, false
}

// Newest returns the most recently placed order, or false when empty.
func (o *Orders) Newest() (domain.Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.orders) == 0 {
		return domain.Order{}, false
	}
	return o.orders[0], true
}

// nextIDLocked derives an id from the creation timestamp plus a random
// suffix. The seen set guards uniqueness across the process lifetime even
// if the clock or the random source repeats.
func (o *Orders) nextIDLocked() string {
	for {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
		id := fmt.Sprintf("%d-%s", o.now().UnixMilli(), suffix)
		if _, dup := o.seen[id]; !dup {
			o.seen[id] = struct{}{}
			return id
		}
	}
}

func (o *Orders) snapshotLocked() []domain.Order {
	return append([]domain.Order(nil), o.orders...)
}

func (o *Orders) notify(snapshot []domain.Order) {
	if o.OnChange != nil {
		o.OnChange(snapshot)
	}
}
