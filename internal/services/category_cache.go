package services

import (
	"fmt"

	"github.com/dgraph-io/ristretto"

	"spendwize/internal/models"
)

// CategoryCache holds each user's loaded category set between requests.
// Stored slices are never mutated; writers replace them.
type CategoryCache struct {
	cache *ristretto.Cache
}

// NewCategoryCache creates a cache holding up to maxUsers category sets.
func NewCategoryCache(maxUsers int64) (*CategoryCache, error) {
	if maxUsers <= 0 {
		return nil, fmt.Errorf("category cache size must be positive, got %d", maxUsers)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxUsers * 10,
		MaxCost:     maxUsers,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize category cache: %w", err)
	}
	return &CategoryCache{cache: cache}, nil
}

// Get returns the cached set for userID.
func (c *CategoryCache) Get(userID string) ([]models.Category, bool) {
	v, ok := c.cache.Get(userID)
	if !ok {
		return nil, false
	}
	categories, ok := v.([]models.Category)
	return categories, ok
}

// Put replaces the cached set for userID. The cache may decline to admit
// the entry; callers treat a later miss as a reload.
func (c *CategoryCache) Put(userID string, categories []models.Category) {
	c.cache.Set(userID, categories, 1)
	c.cache.Wait()
}

// Invalidate drops the cached set for userID.
func (c *CategoryCache) Invalidate(userID string) {
	c.cache.Del(userID)
}

// Close stops the cache's background goroutines.
func (c *CategoryCache) Close() {
	c.cache.Close()
}
