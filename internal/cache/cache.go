// Package cache holds the one dashboard value between refreshes. Bounded
// lifetime: a value is served until its TTL runs out, then the next read
// recomputes it. An explicit Invalidate forces the next read to refetch.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Cache[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	val        T
	computedAt time.Time
	ok         bool

	sf singleflight.Group
}

func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: time.Now}
}

// NewWithClock exists for tests.
func NewWithClock[T any](ttl time.Duration, now func() time.Time) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: now}
}

// Get returns the cached value while it is fresh, otherwise runs compute
// and stores the result. Concurrent misses collapse into a single compute
// via singleflight; a failed compute leaves the cache empty so the next
// read retries.
func (c *Cache[T]) Get(ctx context.Context, compute func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if c.ok && c.now().Sub(c.computedAt) < c.ttl {
		v := c.val
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sf.Do("dashboard", func() (any, error) {
		// Another flight may have filled the cache while we queued.
		c.mu.Lock()
		if c.ok && c.now().Sub(c.computedAt) < c.ttl {
			v := c.val
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		fresh, err := compute(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		c.mu.Lock()
		c.val = fresh
		c.computedAt = c.now()
		c.ok = true
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate clears the cached value; the next Get recomputes.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.val = zero
	c.ok = false
	c.mu.Unlock()
}
