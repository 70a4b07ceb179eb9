// SPDX-License-Identifier: MIT

// Package cache caches segmentation results keyed by model, threshold and
// input text.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"
)

// Cache provides thread-safe caching of phrase slices with expiration.
type Cache interface {
	// Get retrieves the phrases for key. Returns false if absent or expired.
	Get(key string) ([]string, bool)
	// Set stores phrases under key with the specified TTL.
	Set(key string, phrases []string, ttl time.Duration)
	// Delete removes a single key.
	Delete(key string)
	// Clear removes all entries.
	Clear()
	// Stats returns cache statistics.
	Stats() Stats
}

// Stats holds cache performance counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Sets        int64 `json:"sets"`
	Evictions   int64 `json:"evictions"`
	CurrentSize int   `json:"current_size"`
}

// Key derives the cache key for one segmentation request. Besides the model
// name, the store generation participates: installing or removing a custom
// model bumps it, so results cached before the change cannot be served after
// a model of the same name starts resolving differently.
func Key(model string, gen uint64, threshold int, text string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatUint(gen, 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(threshold)))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// entry represents a cached value with expiration time.
type entry struct {
	phrases    []string
	expiration time.Time
}

func (e *entry) expired() bool {
	return time.Now().After(e.expiration)
}

// memoryCache is the in-process implementation of Cache.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   Stats
	janitor *janitor
}

// NewMemoryCache creates an in-memory cache. cleanupInterval determines how
// often expired entries are removed; zero disables the janitor.
func NewMemoryCache(cleanupInterval time.Duration) Cache {
	c := &memoryCache{entries: make(map[string]*entry)}

	if cleanupInterval > 0 {
		c.janitor = &janitor{
			interval: cleanupInterval,
			stop:     make(chan struct{}),
		}
		go c.janitor.run(c)
	}

	return c
}

func (c *memoryCache) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found || e.expired() {
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	out := make([]string, len(e.phrases))
	copy(out, e.phrases)
	return out, true
}

func (c *memoryCache) Set(key string, phrases []string, ttl time.Duration) {
	stored := make([]string, len(phrases))
	copy(stored, phrases)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{
		phrases:    stored,
		expiration: time.Now().Add(ttl),
	}
	c.stats.Sets++
}

func (c *memoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

func (c *memoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}

func (c *memoryCache) deleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, e := range c.entries {
		if e.expired() {
			delete(c.entries, key)
			count++
		}
	}

	c.stats.Evictions += int64(count)
	return count
}

// Stop stops the background cleanup goroutine.
func (c *memoryCache) Stop() {
	if c.janitor != nil {
		c.janitor.stop <- struct{}{}
	}
}

// janitor performs periodic cleanup of expired entries.
type janitor struct {
	interval time.Duration
	stop     chan struct{}
}

func (j *janitor) run(c *memoryCache) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-j.stop:
			return
		}
	}
}

// noOpCache disables caching.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache anything.
func NewNoOpCache() Cache {
	return &noOpCache{}
}

func (c *noOpCache) Get(string) ([]string, bool)         { return nil, false }
func (c *noOpCache) Set(string, []string, time.Duration) {}
func (c *noOpCache) Delete(string)                       {}
func (c *noOpCache) Clear()                              {}
func (c *noOpCache) Stats() Stats                        { return Stats{} }
