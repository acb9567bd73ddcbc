package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(4)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryCache_MissIsTyped(t *testing.T) {
	c := NewMemoryCache(4)
	if _, err := c.Get(context.Background(), "absent"); err != ErrMiss {
		t.Errorf("Get on absent key = %v, want ErrMiss", err)
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(4)
	ctx := context.Background()

	base := time.Now()
	c.now = func() time.Time { return base }
	if err := c.Set(ctx, "k", "v", 15*time.Second); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	c.now = func() time.Time { return base.Add(14 * time.Second) }
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Errorf("Get before expiry = %v, want hit", err)
	}

	c.now = func() time.Time { return base.Add(16 * time.Second) }
	if _, err := c.Get(ctx, "k"); err != ErrMiss {
		t.Errorf("Get after expiry = %v, want ErrMiss", err)
	}
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache(4)
	ctx := context.Background()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(ctx, "k", "v", 0)

	c.now = func() time.Time { return base.Add(24 * time.Hour) }
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Errorf("zero-TTL entry expired: %v", err)
	}
}

func TestMemoryCache_OldestEviction(t *testing.T) {
	c := NewMemoryCache(2)
	ctx := context.Background()

	c.Set(ctx, "a", "1", 0)
	c.Set(ctx, "b", "2", 0)
	c.Set(ctx, "c", "3", 0) // evicts "a"

	if _, err := c.Get(ctx, "a"); err != ErrMiss {
		t.Errorf("oldest key should be evicted, Get(a) = %v", err)
	}
	for _, k := range []string{"b", "c"} {
		if _, err := c.Get(ctx, k); err != nil {
			t.Errorf("Get(%s) = %v, want hit", k, err)
		}
	}
}

func TestMemoryCache_Del(t *testing.T) {
	c := NewMemoryCache(4)
	ctx := context.Background()

	c.Set(ctx, "a", "1", 0)
	c.Set(ctx, "b", "2", 0)

	n, err := c.Del(ctx, "a", "b", "missing")
	if err != nil {
		t.Fatalf("Del returned error: %v", err)
	}
	if n != 2 {
		t.Errorf("Del removed %d keys, want 2", n)
	}
	if _, err := c.Get(ctx, "a"); err != ErrMiss {
		t.Error("deleted key still present")
	}
}

func TestMemoryCache_SetReplacesExisting(t *testing.T) {
	c := NewMemoryCache(2)
	ctx := context.Background()

	c.Set(ctx, "a", "1", 0)
	c.Set(ctx, "a", "2", 0)
	c.Set(ctx, "b", "3", 0)

	// Replacing "a" must not count as a second entry.
	got, err := c.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get(a) = %v, want hit", err)
	}
	if got != "2" {
		t.Errorf("Get(a) = %q, want %q", got, "2")
	}
}
