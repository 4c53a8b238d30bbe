package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize bounds the number of entries in a MemoryCache.
const DefaultMemorySize = 1024

// MemoryCache is an in-process LRU cache with a single expiry applied to
// every entry. Per-call ttl values are ignored; the cache-wide ttl given to
// [NewMemoryCache] wins.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache creates a memory cache holding at most size entries, each
// expiring ttl after it was written. A size <= 0 uses [DefaultMemorySize];
// a ttl of zero disables expiry.
func NewMemoryCache(size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.lru.Get(key)
	return data, ok, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.lru.Add(key, append([]byte(nil), data...))
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
