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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = f.cur.Add(d)
}

func newTestCache(clock *fakeClock) *Cache[string] {
	c := New[string](time.Minute)
	c.now = clock.now
	return c
}

func TestSetThenGet(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	c.Set("bookings", "list-payload")
	got, ok := c.Get("bookings")
	assert.True(t, ok)
	assert.Equal(t, "list-payload", got)
	assert.True(t, c.Has("bookings"))
}

func TestExpiryTreatsEntryAsAbsent(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	c.SetTTL("m", "requests", 30*time.Second)
	clock.advance(31 * time.Second)

	_, ok := c.Get("m")
	assert.False(t, ok)
	assert.False(t, c.Has("m"))

	// Lazy eviction removed the physical entry too.
	assert.Equal(t, 0, c.Stats().Size)
}

func TestEntryLiveExactlyUntilTTL(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	c.SetTTL("k", "v", time.Minute)
	clock.advance(time.Minute)

	// now - storedAt == ttl is not yet expired; absence begins strictly after.
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.advance(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestOverwriteResetsClock(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	c.SetTTL("k", "old", 30*time.Second)
	clock.advance(20 * time.Second)
	c.SetTTL("k", "new", 30*time.Second)
	clock.advance(20 * time.Second)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	c.SetTTL("stale", "a", 10*time.Second)
	c.SetTTL("fresh", "b", 10*time.Minute)
	clock.advance(time.Minute)

	assert.Equal(t, 2, c.Stats().Size)
	removed := c.Sweep()
	assert.Equal(t, 1, removed)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, []string{"fresh"}, stats.Keys)
}

func TestSweepNoopOnEmptyAndFresh(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	assert.Equal(t, 0, c.Sweep())

	c.Set("k", "v")
	assert.Equal(t, 0, c.Sweep())
	assert.Equal(t, 1, c.Stats().Size)
}

func TestDeleteAndClearAreIdempotent(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)

	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	c.Delete("a")
	assert.Equal(t, 1, c.Stats().Size)

	c.Clear()
	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + n))
				c.Set(key, j)
				c.Get(key)
				c.Has(key)
				c.Sweep()
				c.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestSweeperStops(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(clock)
	c.SetTTL("k", "v", time.Millisecond)
	clock.advance(time.Second)

	s := NewSweeper(c, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		return c.Stats().Size == 0
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
}
