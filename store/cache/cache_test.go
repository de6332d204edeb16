package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.Set(ctx, "a", 1)
	got, ok := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.SetWithTTL(ctx, "a", 1, -time.Second)
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestCacheMaxItemsEviction(t *testing.T) {
	ctx := context.Background()
	evicted := []string{}
	c := New(Config{
		DefaultTTL: time.Minute,
		MaxItems:   2,
		OnEviction: func(key string, _ any) { evicted = append(evicted, key) },
	})
	defer c.Close()

	c.SetWithTTL(ctx, "old", 1, time.Second)
	c.SetWithTTL(ctx, "new", 2, time.Hour)
	c.Set(ctx, "extra", 3)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"old"}, evicted)
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Clear(ctx)
	assert.Equal(t, 0, c.Len())
}
