package rates

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Cache is an in-memory mapping from Key to rate, guarded by a single mutex.
//
// The fetch callback in GetOrFetch runs while the lock is held, so at most
// one upstream fetch is ever in flight across the entire cache. Concurrent
// misses for the same key resolve to a single fetch; the cost is that misses
// for unrelated keys serialize behind it too.
//
// Entries have no TTL. Staleness is the caller's responsibility, handled by
// explicit flushes.
type Cache struct {
	mu    sync.Mutex
	rates map[Key]decimal.Decimal
}

// NewCache creates an empty rate cache.
func NewCache() *Cache {
	return &Cache{
		rates: make(map[Key]decimal.Decimal),
	}
}

// GetOrFetch returns the cached rate for key, or invokes fetch, stores the
// result, and returns it. A failed fetch stores nothing and the error
// propagates; the cache is left exactly as it was.
func (c *Cache) GetOrFetch(key Key, fetch func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rate, ok := c.rates[key]; ok {
		return rate, nil
	}

	rate, err := fetch()
	if err != nil {
		return decimal.Decimal{}, err
	}

	c.rates[key] = rate
	return rate, nil
}

// FlushOne removes and returns the entry for key. The second return value
// reports whether an entry was present; absence is not an error.
func (c *Cache) FlushOne(key Key) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rate, ok := c.rates[key]
	if ok {
		delete(c.rates, key)
	}
	return rate, ok
}

// FlushAll discards every cached entry.
func (c *Cache) FlushAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates = make(map[Key]decimal.Decimal)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.rates)
}
