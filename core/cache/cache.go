// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package cache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache
of compiled messages.

Entries are keyed by [Key], a digest of the message's raw token stream, so identical
messages appearing in many source files are compiled once. Values are opaque encoded
descriptors. When created with compression enabled via [New], values are stored
zstd-compressed whenever that makes them smaller, and are transparently decompressed
by [Cache.Get].
*/
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	size      int                      // Maximum number of entries
	evictList *list.List               // Front is the most recently used entry
	items     map[string]*list.Element // Maps keys to their list elements
	lock      sync.Mutex

	zstdEnc *zstd.Encoder // nil when compression is disabled
	zstdDec *zstd.Decoder

	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry struct {
	key        string
	value      []byte
	compressed bool
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// Key returns the cache key for a message's raw token stream.
func Key(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// New creates a cache holding at most size entries.
//
// It returns an error if size is not a positive integer.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}

	if compress {
		// Block mode only: EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add stores value under key, making it the most recently used entry.
// Add reports whether an eviction occurred.
func (c *Cache) Add(key string, value []byte) bool {
	// Compress outside the lock; EncodeAll is safe for concurrent use.
	stored, compressed := c.encode(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.value = stored
		ent.compressed = compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: stored, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	if oldest := c.evictList.Back(); oldest != nil {
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}

	return true
}

// Get returns a copy of the value stored under key and marks it as most
// recently used.
//
// A value that fails to decompress is reported as missing.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()
		c.misses.Add(1)

		return nil, false
	}

	c.evictList.MoveToFront(el)

	ent := el.Value.(*entry)
	stored, compressed := ent.value, ent.compressed

	c.lock.Unlock()

	value, ok := c.decode(stored, compressed)
	if !ok {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return value, true
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Stats returns the current usage counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:    c.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// encode returns the representation to store. Compression is kept only when
// it saves space; otherwise a private copy of value is stored.
func (c *Cache) encode(value []byte) ([]byte, bool) {
	if len(value) == 0 {
		return nil, false
	}

	if c.zstdEnc != nil {
		if compressed := c.zstdEnc.EncodeAll(value, nil); len(compressed) < len(value) {
			return compressed, true
		}
	}

	copied := make([]byte, len(value))
	copy(copied, value)

	return copied, false
}

func (c *Cache) decode(stored []byte, compressed bool) ([]byte, bool) {
	if !compressed {
		if stored == nil {
			return nil, true
		}

		copied := make([]byte, len(stored))
		copy(copied, stored)

		return copied, true
	}

	if c.zstdDec == nil {
		return nil, false
	}

	decoded, err := c.zstdDec.DecodeAll(stored, nil)
	if err != nil {
		return nil, false
	}

	return decoded, true
}
