// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used
cache for response bodies. Keys are strings, values are byte slices. The
cache evicts the least recently used entry when it reaches capacity.

Values are stored zstd-compressed whenever compression actually shrinks
them, and are transparently decompressed by [LRUCache.Get].
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// LRUCache is a fixed-capacity, least-recently-used cache that is safe for
// concurrent use. Instances must be constructed with [NewLRUCache]; the zero
// value is not ready for use.
type LRUCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	lock      sync.RWMutex
	zstdEnc   *zstd.Encoder
	zstdDec   *zstd.Decoder
}

// cacheEntry holds the key/value pair stored in each linked-list element.
type cacheEntry struct {
	key        string
	value      []byte
	compressed bool
}

// NewLRUCache creates a new cache holding at most size entries.
//
// It returns an error if size is not a positive integer.
func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}

	return &LRUCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		zstdEnc:   enc,
		zstdDec:   dec,
	}, nil
}

// Add inserts or updates a value in the cache and reports whether an
// eviction occurred.
func (c *LRUCache) Add(key string, value []byte) bool {
	stored := value
	compressed := false

	if encoded := c.zstdEnc.EncodeAll(value, nil); len(encoded) < len(value) {
		stored = encoded
		compressed = true
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if element, ok := c.items[key]; ok {
		c.evictList.MoveToFront(element)

		entry := element.Value.(*cacheEntry)
		entry.value = stored
		entry.compressed = compressed

		return false
	}

	element := c.evictList.PushFront(&cacheEntry{
		key:        key,
		value:      stored,
		compressed: compressed,
	})
	c.items[key] = element

	if c.evictList.Len() > c.size {
		c.removeOldest()

		return true
	}

	return false
}

// Get returns the value for key and marks the entry as recently used.
func (c *LRUCache) Get(key string) ([]byte, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.items[key]
	if !ok {
		return nil, false
	}

	c.evictList.MoveToFront(element)

	return c.decode(element.Value.(*cacheEntry))
}

// Peek returns the value for key without updating its recency.
func (c *LRUCache) Peek(key string) ([]byte, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	element, ok := c.items[key]
	if !ok {
		return nil, false
	}

	return c.decode(element.Value.(*cacheEntry))
}

// Remove deletes the entry for key, reporting whether it was present.
func (c *LRUCache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.items[key]
	if !ok {
		return false
	}

	c.removeElement(element)

	return true
}

// Keys returns the cached keys ordered from oldest to newest.
func (c *LRUCache) Keys() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	keys := make([]string, 0, len(c.items))
	for element := c.evictList.Back(); element != nil; element = element.Prev() {
		keys = append(keys, element.Value.(*cacheEntry).key)
	}

	return keys
}

// Len returns the number of cached entries.
func (c *LRUCache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

// Purge removes all entries.
func (c *LRUCache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	c.items = make(map[string]*list.Element)
}

func (c *LRUCache) decode(entry *cacheEntry) ([]byte, bool) {
	if !entry.compressed {
		return entry.value, true
	}

	decoded, err := c.zstdDec.DecodeAll(entry.value, nil)
	if err != nil {
		// A corrupt entry is unusable; report a miss.
		return nil, false
	}

	return decoded, true
}

func (c *LRUCache) removeOldest() {
	if element := c.evictList.Back(); element != nil {
		c.removeElement(element)
	}
}

func (c *LRUCache) removeElement(element *list.Element) {
	c.evictList.Remove(element)
	delete(c.items, element.Value.(*cacheEntry).key)
}
