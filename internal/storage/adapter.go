package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

const (
	CartKey   = "storefront_cart_v1"
	OrdersKey = "storefront_orders_v1"

	// CartTTL bounds the cart blob's life in the secondary store only.
	CartTTL = 7 * 24 * time.Hour

	writeTimeout = time.Second
)

// Adapter persists cart and orders state to two independent stores: a
// durable primary and a secondary with finite expiry for the cart.
//
// Writes are fire-and-forget: every error is logged and swallowed, a
// failed write never reaches the in-memory state transition that caused
// it. Reads prefer the primary and fall back to the secondary; a missing,
// corrupt or non-array blob counts as absent. When both sides fail the
// result is empty state, never an error.
type Adapter struct {
	primary   Store
	secondary Store // optional
}

func NewAdapter(primary, secondary Store) *Adapter {
	return &Adapter{
		primary:   primary,
		secondary: secondary,
	}
}

// SaveCart is wired as the cart container's OnChange observer.
func (a *Adapter) SaveCart(items []domain.CartItem) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("marshal cart failed: %v", err)
		return
	}
	a.write(CartKey, data, CartTTL)
}

// SaveOrders is wired as the orders container's OnChange observer. The
// orders blob never expires.
func (a *Adapter) SaveOrders(orders []domain.Order) {
	data, err := json.Marshal(orders)
	if err != nil {
		log.Printf("marshal orders failed: %v", err)
		return
	}
	a.write(OrdersKey, data, 0)
}

// LoadCart restores persisted cart items at startup. It never fails:
// worst case is an empty slice.
func (a *Adapter) LoadCart(ctx context.Context) []domain.CartItem {
	return load[domain.CartItem](ctx, a, CartKey)
}

// LoadOrders restores persisted orders at startup. It never fails: worst
// case is an empty slice.
func (a *Adapter) LoadOrders(ctx context.Context) []domain.Order {
	return load[domain.Order](ctx, a, OrdersKey)
}

func (a *Adapter) write(key string, data []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := a.primary.Set(ctx, key, data, ttl); err != nil {
		log.Printf("primary store write %s failed: %v", key, err)
	}

	if a.secondary == nil {
		return
	}
	if err := a.secondary.Set(ctx, key, data, ttl); err != nil {
		log.Printf("secondary store write %s failed: %v", key, err)
	}
}

// load unmarshals the blob under key, trying primary then secondary.
// Decoding targets a slice so that a non-array payload fails and counts
// as absent.
func load[T any](ctx context.Context, a *Adapter, key string) []T {
	if decoded, ok := tryLoad[T](ctx, a.primary, key); ok {
		return decoded
	}
	if a.secondary != nil {
		if decoded, ok := tryLoad[T](ctx, a.secondary, key); ok {
			return decoded
		}
	}
	return nil
}

// tryLoad decodes into a fresh slice so that a blob failing partway
// through unmarshalling leaves nothing behind.
func tryLoad[T any](ctx context.Context, store Store, key string) ([]T, bool) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Printf("store read %s failed: %v", key, err)
		return nil, false
	}

	var decoded []T
	if err := json.Unmarshal(data, &decoded); err != nil {
		log.Printf("stored blob %s is not valid, ignoring: %v", key, err)
		return nil, false
	}
	return decoded, true
}
