// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerCache is an on-disk implementation of Cache. It survives restarts,
// which pays off when the same large documents are re-segmented repeatedly.
type BadgerCache struct {
	db     *badger.DB
	logger zerolog.Logger
	stats  struct {
		hits   atomic.Int64
		misses atomic.Int64
		sets   atomic.Int64
	}
}

// NewBadgerCache opens (or creates) a badger-backed cache in dir.
func NewBadgerCache(dir string, logger zerolog.Logger) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache at %s: %w", dir, err)
	}

	logger.Info().Str("dir", dir).Msg("opened badger cache")

	return &BadgerCache{db: db, logger: logger}, nil
}

// Get retrieves phrases stored under key. Expired entries are misses; badger
// drops them on its own schedule.
func (c *BadgerCache) Get(key string) ([]string, bool) {
	var phrases []string

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &phrases)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn().Err(err).Str("key", key).Msg("badger get failed")
		}
		c.stats.misses.Add(1)
		return nil, false
	}

	c.stats.hits.Add(1)
	return phrases, true
}

// Set stores phrases under key with TTL.
func (c *BadgerCache) Set(key string, phrases []string, ttl time.Duration) {
	data, err := json.Marshal(phrases)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("json marshal failed")
		return
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("badger set failed")
		return
	}

	c.stats.sets.Add(1)
}

// Delete removes a key.
func (c *BadgerCache) Delete(key string) {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("badger delete failed")
	}
}

// Clear drops all cached entries.
func (c *BadgerCache) Clear() {
	if err := c.db.DropAll(); err != nil {
		c.logger.Warn().Err(err).Msg("badger drop failed")
	}
}

// Stats returns cache statistics. CurrentSize counts live keys, which walks
// the keyspace; fine for cache-sized databases.
func (c *BadgerCache) Stats() Stats {
	size := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			size++
		}
		return nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("badger stats failed")
	}

	return Stats{
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Sets:        c.stats.sets.Load(),
		CurrentSize: size,
	}
}

// Close closes the underlying database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
