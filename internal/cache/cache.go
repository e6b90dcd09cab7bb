// Package cache is a small in-memory cache with per-entry expiry.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache stores values for a fixed TTL. A background goroutine started by
// StartCleanup evicts expired entries; Get never returns them either way.
type Cache[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry[V]

	cleanupFreq time.Duration
	stop        context.CancelFunc
	done        chan struct{}
}

// New creates a cache whose entries live for ttl.
func New[V any](ttl, cleanupFreq time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:         ttl,
		now:         time.Now,
		entries:     make(map[string]entry[V]),
		cleanupFreq: cleanupFreq,
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// GetOrSet returns the cached value for key, calling fetch and storing its
// result on a miss. Errors from fetch are returned and not cached.
func (c *Cache[V]) GetOrSet(key string, fetch func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Len reports how many entries are held, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartCleanup evicts expired entries every cleanup period until ctx is
// done or StopCleanup is called. It is a no-op when the period is not
// positive or cleanup is already running.
func (c *Cache[V]) StartCleanup(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cleanupFreq <= 0 || c.stop != nil {
		return
	}

	ctx, c.stop = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(c.cleanupFreq)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.evictExpired()
			}
		}
	}(c.done)
}

// StopCleanup stops the cleanup goroutine and waits for it to exit.
func (c *Cache[V]) StopCleanup() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}

func (c *Cache[V]) evictExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
}
