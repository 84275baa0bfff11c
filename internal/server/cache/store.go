// Package cache implements the read-through list cache and its explicit
// invalidation over a pluggable key-value Store.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key-value store with per-key expiry.
type Store interface {
	// Get returns the value and true on a hit, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
