// Package stats provides simple local usage statistics for the directory.
// This is a lightweight alternative to enterprise monitoring solutions.
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/communitymap/communitymap/server/service/hours"
	"github.com/communitymap/communitymap/store"
)

// Stats represents directory statistics.
type Stats struct {
	// Resource stats
	TotalResources    int64            `json:"totalResources"`
	ResourcesByCategory map[string]int64 `json:"resourcesByCategory"`
	VerifiedResources int64            `json:"verifiedResources"`
	OpenNowResources  int64            `json:"openNowResources"`
	AddedLastWeek     int64            `json:"addedLastWeek"`
	AddedLastMonth    int64            `json:"addedLastMonth"`

	// Comment stats
	TotalComments   int64 `json:"totalComments"`
	PendingComments int64 `json:"pendingComments"`

	// Timestamp
	LastUpdated time.Time `json:"lastUpdated"`
}

// Collector collects and caches directory statistics.
type Collector struct {
	store    *store.Store
	stats    *Stats
	mu       sync.Mutex
	tickStop chan struct{}
}

// NewCollector creates a new statistics collector.
func NewCollector(st *store.Store) *Collector {
	return &Collector{
		store: st,
		stats: &Stats{
			ResourcesByCategory: make(map[string]int64),
			LastUpdated:         time.Now(),
		},
		tickStop: make(chan struct{}),
	}
}

// Start begins periodic statistics collection.
// Updates every hour.
func (c *Collector) Start(ctx context.Context) {
	c.Collect(ctx)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Collect(ctx)
			case <-ctx.Done():
				return
			case <-c.tickStop:
				return
			}
		}
	}()
}

// Stop stops the statistics collector.
func (c *Collector) Stop() {
	select {
	case <-c.tickStop:
	default:
		close(c.tickStop)
	}
}

// GetStats returns a copy of current statistics.
func (c *Collector) GetStats() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	byCategory := make(map[string]int64, len(c.stats.ResourcesByCategory))
	for k, v := range c.stats.ResourcesByCategory {
		byCategory[k] = v
	}
	copied := *c.stats
	copied.ResourcesByCategory = byCategory
	return &copied
}

// Collect gathers current statistics from the store.
func (c *Collector) Collect(ctx context.Context) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	fresh := &Stats{
		ResourcesByCategory: make(map[string]int64),
		LastUpdated:         now,
	}

	normalStatus := store.Normal
	resources, err := c.store.ListResources(ctx, &store.FindResource{RowStatus: &normalStatus})
	if err == nil {
		fresh.TotalResources = int64(len(resources))
		for _, r := range resources {
			fresh.ResourcesByCategory[string(r.Category)]++
			if r.Verified {
				fresh.VerifiedResources++
			}
			if hours.IsOpenAt(r.Schedule, now) {
				fresh.OpenNowResources++
			}
			created := time.Unix(r.CreatedTs, 0)
			if !created.Before(weekAgo) {
				fresh.AddedLastWeek++
			}
			if !created.Before(monthAgo) {
				fresh.AddedLastMonth++
			}
		}
	}

	comments, err := c.store.ListComments(ctx, &store.FindComment{})
	if err == nil {
		fresh.TotalComments = int64(len(comments))
		for _, comment := range comments {
			if comment.Status == store.CommentPending {
				fresh.PendingComments++
			}
		}
	}

	c.mu.Lock()
	c.stats = fresh
	c.mu.Unlock()
}
