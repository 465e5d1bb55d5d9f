package cache

import (
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/paperverify/internal/model"
)

// ObservationCache memoizes parsed result files so batch runs do not
// re-parse sources shared across documents. Entries are keyed by path plus
// mtime and size, so an edited file is a natural miss.
type ObservationCache struct {
	cache *gocache.Cache
}

// NewObservationCache creates a new observation cache
func NewObservationCache() *ObservationCache {
	return &ObservationCache{
		cache: gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// Get retrieves the cached observations for a source file
func (c *ObservationCache) Get(path string) ([]model.Observation, bool) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, false
	}
	if val, found := c.cache.Get(key); found {
		return val.([]model.Observation), true
	}
	return nil, false
}

// Set stores the parsed observations for a source file
func (c *ObservationCache) Set(path string, observations []model.Observation) {
	key, err := cacheKey(path)
	if err != nil {
		return
	}
	c.cache.Set(key, observations, gocache.DefaultExpiration)
}

// Clear removes all cached entries
func (c *ObservationCache) Clear() {
	c.cache.Flush()
}

func cacheKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size()), nil
}
