package marketdata

import (
	"sync"
	"time"

	"RiskDesk/internal/domain/models"
)

type cacheEntry struct {
	bars []models.PriceBar
	exp  time.Time
}

// barCache is a small in-process TTL cache for fetched bar series.
type barCache struct {
	mu sync.RWMutex
	m  map[string]cacheEntry
}

func newBarCache() *barCache {
	return &barCache{m: make(map[string]cacheEntry)}
}

func (c *barCache) get(key string) ([]models.PriceBar, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.bars, true
}

func (c *barCache) set(key string, bars []models.PriceBar, ttl time.Duration) {
	c.mu.Lock()
	c.m[key] = cacheEntry{bars: bars, exp: time.Now().Add(ttl)}
	c.mu.Unlock()
}
