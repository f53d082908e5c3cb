package storage

import (
	"context"
	"errors"
)

// Keys the client persists. The cart key is owned exclusively by the cart
// store; no other package writes it.
const (
	KeyCart   = "cart"
	KeyToken  = "token"
	KeyUser   = "user"
	KeyOrders = "orders"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a string key-value store, durable across restarts. Each Set
// replaces the whole value in one write; there are no partial updates.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
