package store

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no fresh entry exists for a given key.
	ErrNotFound = errors.New("no cached data for key")
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Cache is a concurrency-safe in-memory response cache with per-entry TTL.
// Each query key holds at most one response; a new Set replaces the old one.
// If ttl is <= 0, entries never expire.
type Cache[T any] struct {
	mu sync.RWMutex

	data map[string]entry[T]
	ttl  time.Duration
}

// NewCache creates a Cache with the given TTL.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		data: make(map[string]entry[T]),
		ttl:  ttl,
	}
}

// Set stores a response for the key, replacing any previous entry.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = entry[T]{value: value, storedAt: time.Now()}
}

// Get returns the cached response for the key, or ErrNotFound when the key
// is absent or its entry has expired.
func (c *Cache[T]) Get(key string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	if c.ttl > 0 && time.Since(e.storedAt) > c.ttl {
		var zero T
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Sweep removes all expired entries and returns how many were evicted.
func (c *Cache[T]) Sweep() int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl)
	evicted := 0
	for key, e := range c.data {
		if e.storedAt.Before(cutoff) {
			delete(c.data, key)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
