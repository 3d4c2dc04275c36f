package cache

import (
	"context"
	"time"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
)

// CartStore holds session carts. Carts are ephemeral: they live for the
// configured TTL of idle time and are never persisted to the database.
type CartStore interface {
	// Get returns the cart for a session, or (nil, nil) when the
	// session has no cart
	Get(ctx context.Context, sessionID string) (*order.Cart, error)

	// Put stores the cart for its session, refreshing the TTL
	Put(ctx context.Context, cart *order.Cart) error

	// Delete removes the cart for a session. Deleting an absent cart
	// is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store
	Close() error
}

// GetOrCreate fetches the session's cart from the store, creating an
// empty one when absent
func GetOrCreate(ctx context.Context, store CartStore, sessionID string) (*order.Cart, error) {
	cart, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = order.NewCart(sessionID)
	}
	return cart, nil
}

// DefaultCartTTL is used when the configuration does not set one
const DefaultCartTTL = 4 * time.Hour
