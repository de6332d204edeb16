// Package cache provides a small in-memory TTL cache used by the store layer.
package cache

import (
	"context"
	"sync"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	// DefaultTTL is the lifetime of entries stored with Set.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are swept. Zero disables
	// the background janitor; expired entries are then dropped lazily on Get.
	CleanupInterval time.Duration
	// MaxItems bounds the cache size. When full, Set evicts the entry
	// closest to expiry. Zero means unbounded.
	MaxItems int
	// OnEviction, if set, is called after an entry is evicted or expires
	// during a sweep.
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a concurrency-safe in-memory cache with per-entry TTL.
type Cache struct {
	config Config

	mu    sync.RWMutex
	items map[string]item

	done chan struct{}
	once sync.Once
}

// New creates a cache and starts its cleanup goroutine if configured.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		items:  make(map[string]item),
		done:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.janitor()
	}
	return c
}

// Get returns the cached value for key if present and not expired.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.MaxItems > 0 && len(c.items) >= c.config.MaxItems {
		if _, exists := c.items[key]; !exists {
			c.evictSoonestLocked()
		}
	}
	c.items[key] = item{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes key from the cache.
func (c *Cache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Cache) Clear(_ context.Context) {
	c.mu.Lock()
	c.items = make(map[string]item)
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine. The cache stays usable afterwards.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

// evictSoonestLocked drops the entry closest to expiry. Caller holds mu.
func (c *Cache) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for key, it := range c.items {
		if first || it.expiresAt.Before(soonest) {
			victim, soonest, first = key, it.expiresAt, false
		}
	}
	if !first {
		value := c.items[victim].value
		delete(c.items, victim)
		if c.config.OnEviction != nil {
			c.config.OnEviction(victim, value)
		}
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	var evicted []struct {
		key   string
		value any
	}
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			evicted = append(evicted, struct {
				key   string
				value any
			}{key, it.value})
			delete(c.items, key)
		}
	}
	c.mu.Unlock()

	if c.config.OnEviction != nil {
		for _, e := range evicted {
			c.config.OnEviction(e.key, e.value)
		}
	}
}
