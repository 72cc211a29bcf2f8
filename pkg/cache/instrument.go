package cache

import (
	"context"
	"time"

	"github.com/matzehuels/labdoc/pkg/observability"
)

// Instrumented reports every lookup and write of the wrapped cache to the
// registered [observability.CacheHooks].
type Instrumented struct {
	Cache
}

// Instrument wraps c so that hits, misses and writes fire cache hooks.
func Instrument(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

// Get looks up key and reports a hit or a miss. Errors report nothing.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, ok, nil
}

// Set stores data and reports its size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

var (
	_ Cache   = (*Instrumented)(nil)
	_ Clearer = (*Instrumented)(nil)
)
