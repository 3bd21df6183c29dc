// Copyright 2025 The casaflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used by Set when no explicit TTL is given.
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache is an in-memory key/value store with per-entry time-to-live.
// An entry is considered absent once its TTL has elapsed, whether or not it
// has been physically removed; removal happens lazily on Get or via Sweep.
//
// The cache has no capacity bound: entries are freed only by TTL expiry,
// Delete, or Clear. Unbounded key growth between sweeps is a known
// limitation of this design.
//
// All methods are safe for concurrent use.
type Cache[V any] struct {
	mu    sync.Mutex
	items map[string]entry[V]
	ttl   time.Duration
	now   func() time.Time
}

// New creates an empty cache whose Set method stores entries with defaultTTL.
// If defaultTTL <= 0, DefaultTTL is used.
func New[V any](defaultTTL time.Duration) *Cache[V] {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache[V]{
		items: make(map[string]entry[V]),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// Set stores or overwrites the entry under key with the cache's default TTL.
// Overwriting resets the entry's clock to now.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores or overwrites the entry under key with an explicit TTL.
// If ttl <= 0, the cache's default TTL applies.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Get returns the value stored under key if present and not expired.
// An expired entry is treated as absent and physically removed as a side
// effect. Absence is an ordinary outcome, not an error.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(c.now()) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Has reports whether key holds a live entry. It performs the same lazy
// eviction as Get and nothing more.
func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes the entry unconditionally. Deleting an absent key is a no-op.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry[V])
}

// Sweep physically removes every expired entry and returns how many were
// removed. It is intended to run on a fixed interval so entries nobody reads
// are eventually freed; correctness of Get/Has never depends on it.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Stats is a point-in-time diagnostic snapshot of the cache contents.
type Stats struct {
	Size int
	Keys []string
}

// Stats returns a snapshot of the current size and keys. The snapshot is not
// authoritative once concurrent mutation resumes. Expired-but-unswept entries
// are counted; only Get/Sweep remove them.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	return Stats{Size: len(c.items), Keys: keys}
}
