package cache

import (
	"context"
	"load-ranking-service/internal/domain"
	"sync"
)

// MemoryCarrierCache is an in-process carrier cache with process lifetime
// and an explicit clear operation. A stored nil record is a valid negative
// entry. Safe for concurrent use.
type MemoryCarrierCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.CarrierRecord
}

func NewMemoryCarrierCache() *MemoryCarrierCache {
	return &MemoryCarrierCache{entries: make(map[string]*domain.CarrierRecord)}
}

func (c *MemoryCarrierCache) Get(ctx context.Context, dotNumber string) (*domain.CarrierRecord, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.entries[dotNumber]
	return rec, ok, nil
}

func (c *MemoryCarrierCache) Put(ctx context.Context, dotNumber string, rec *domain.CarrierRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dotNumber] = rec
	return nil
}

func (c *MemoryCarrierCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.CarrierRecord)
	return nil
}

// Len reports the number of cached entries.
func (c *MemoryCarrierCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
