package store

import (
	"time"

	"github.com/communitymap/communitymap/internal/profile"
	"github.com/communitymap/communitymap/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// resourceCache holds recently read resources keyed by UID. The whole
	// cache is dropped on any write; the dataset is small and correctness of
	// admin edits matters more than hit rate.
	resourceCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:        driver,
		profile:       profile,
		resourceCache: cache.New(cacheConfig),
	}
}

// GetDriver returns the underlying database driver.
func (s *Store) GetDriver() Driver {
	return s.driver
}

// Close stops the cache janitor and closes the database connection.
func (s *Store) Close() error {
	s.resourceCache.Close()
	return s.driver.Close()
}
