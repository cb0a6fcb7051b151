package storage

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by stores
var ErrNotFound = errors.New("key not found")

// Store is a keyed blob store. The persistence adapter writes the full
// serialized slice per key; last writer wins, there is no merge.
//
// Consumers define this interface, not the backing implementations.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the blob under key. A zero ttl means no expiry; stores
	// without native expiry may ignore a non-zero ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources
	Close() error
}
