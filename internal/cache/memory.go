package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is a size-bounded in-process cache with per-entry TTL. When the
// bound is hit, the oldest-inserted entry is evicted first.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	order   *list.List // keys, oldest at front
	max     int
	now     func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiration
	elem      *list.Element
}

// NewMemoryCache creates a MemoryCache holding at most max entries.
func NewMemoryCache(max int) *MemoryCache {
	if max < 1 {
		max = 1
	}
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		order:   list.New(),
		max:     max,
		now:     time.Now,
	}
}

var _ Cache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", ErrMiss
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.remove(key, e)
		return "", ErrMiss
	}
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.remove(key, e)
	}
	for len(c.entries) >= c.max {
		front := c.order.Front()
		if front == nil {
			break
		}
		oldest := front.Value.(string)
		c.remove(oldest, c.entries[oldest])
	}

	e := &memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	e.elem = c.order.PushBack(key)
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			c.remove(key, e)
			n++
		}
	}
	return n, nil
}

func (c *MemoryCache) Close() error { return nil }

// remove assumes the lock is held.
func (c *MemoryCache) remove(key string, e *memoryEntry) {
	c.order.Remove(e.elem)
	delete(c.entries, key)
}
