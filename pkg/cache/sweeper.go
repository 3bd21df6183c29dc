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

// DefaultSweepInterval is how often a Sweeper evicts expired entries when no
// interval is given.
const DefaultSweepInterval = 10 * time.Minute

// sweepable lets one Sweeper serve caches of any value type.
type sweepable interface {
	Sweep() int
}

// Sweeper periodically calls Sweep on a cache until stopped. The owner of the
// cache is expected to own the sweeper too and call Stop on shutdown.
type Sweeper struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewSweeper starts a background goroutine sweeping c every interval.
// If interval <= 0, DefaultSweepInterval is used.
func NewSweeper(c sweepable, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s := &Sweeper{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run(c, interval)
	return s
}

func (s *Sweeper) run(c sweepable, interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-s.stop:
			return
		}
	}
}

// Stop terminates the background sweep and waits for it to exit.
// It is safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}
