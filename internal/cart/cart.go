package cart

import (
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
)

// Cart holds the line items and selected shipping option for one shopping
// session. It is constructed explicitly by the composition root; there is
// no package-level instance.
//
// OnChange, when set, is invoked with a snapshot of the items after every
// mutation. The observer contract is fire-and-forget: it must swallow its
// own errors and must not call back into the cart.
type Cart struct {
	mu       sync.Mutex
	items    []domain.CartItem
	shipping *domain.ShippingOption

	OnChange func(items []domain.CartItem)
}

func New() *Cart {
	return &Cart{}
}

// Hydrate replaces the items wholesale with persisted state. The selected
// shipping option is left untouched. Used once at startup.
func (c *Cart) Hydrate(items []domain.CartItem) {
	c.mu.Lock()
	c.items = append([]domain.CartItem(nil), items...)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Add increments the quantity of an existing line with the same ProductID,
// or appends a new line with quantity 1. It never creates a second row for
// the same product.
func (c *Cart) Add(item domain.CartItem) {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		c.items = append(c.items, item)
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// UpdateQuantity sets the quantity of the matching line to the given value
// exactly. A quantity <= 0 deletes the line. Missing product is a no-op.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	if quantity <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	} else {
		c.items[idx].Quantity = quantity
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Remove deletes the matching line if present; no-op otherwise.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Clear empties the items and clears the shipping selection together.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.shipping = nil
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// SetShipping replaces the selected shipping option unconditionally.
func (c *Cart) SetShipping(option domain.ShippingOption) {
	c.mu.Lock()
	c.shipping = &option
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Items returns a copy of the current line items in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectedShipping returns the chosen shipping option, or nil when none
// has been selected yet.
func (c *Cart) SelectedShipping() *domain.ShippingOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shipping == nil {
		return nil
	}
	s := *c.shipping
	return &s
}

func (c *Cart) snapshotLocked() []domain.CartItem {
	return append([]domain.CartItem(nil), c.items...)
}

func (c *Cart) notify(snapshot []domain.CartItem) {
	if c.OnChange != nil {
		c.OnChange(snapshot)
	}
}
