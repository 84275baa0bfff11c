package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/logging"
)

// Cache wraps a Store with logging. A nil *Cache disables caching: reads
// always call the producer and invalidation is a no-op.
type Cache struct {
	store Store
	log   logging.Logger
}

func New(store Store, log logging.Logger) *Cache {
	return &Cache{store: store, log: log.With("component", "cache")}
}

// Cached returns the value stored under key, or calls produce, stores its
// JSON encoding for ttl and returns it. Store failures are logged and the
// produced value is served; produce errors are returned and nothing is stored.
func Cached[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, produce func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return produce(ctx)
	}

	if b, ok, err := c.store.Get(ctx, key); err != nil {
		c.log.Warn(ctx, "cache get failed", "key", key, "error", err)
	} else if ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			c.log.Debug(ctx, "cache hit", "key", key)
			return v, nil
		}
		c.log.Warn(ctx, "cache entry undecodable", "key", key)
	}

	v, err := produce(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	b, err := json.Marshal(v)
	if err != nil {
		c.log.Warn(ctx, "cache encode failed", "key", key, "error", err)
		return v, nil
	}
	if err := c.store.Set(ctx, key, b, ttl); err != nil {
		c.log.Warn(ctx, "cache set failed", "key", key, "error", err)
	}
	return v, nil
}

// Invalidate removes keys so the next read is a miss.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.log.Error(ctx, "cache invalidation failed", "keys", keys, "error", err)
		return fmt.Errorf("invalidate %v: %w", keys, err)
	}
	return nil
}
