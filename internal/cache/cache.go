package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a size-bounded LRU cache whose entries also expire after a per-entry TTL.
// It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	lru *lru.Cache[K, entry[V]]
	now func() time.Time
}

func New[K comparable, V any](size int) (*Cache[K, V], error) {
	l, err := lru.New[K, entry[V]](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}

	return &Cache[K, V]{lru: l, now: time.Now}, nil
}

// Get returns the cached value for key. Expired entries are evicted and reported missing.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}

	if !c.now().Before(e.expiresAt) {
		c.lru.Remove(key)

		var zero V

		return zero, false
	}

	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl removes the key.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		c.lru.Remove(key)
		return
	}

	c.lru.Add(key, entry[V]{value: value, expiresAt: c.now().Add(ttl)})
}

func (c *Cache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}

func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}
