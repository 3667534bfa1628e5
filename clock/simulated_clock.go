// Copyright 2025 Google LLC
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

package clock

import (
	"sync"
	"time"
)

type afterRequest struct {
	fireAt time.Time
	ch     chan time.Time
}

// SimulatedClock is a Clock whose time only moves when SetTime or AdvanceTime
// is called. Channels returned by After fire once the simulated time reaches
// their deadline.
type SimulatedClock struct {
	mu      sync.Mutex
	t       time.Time       // GUARDED_BY(mu)
	waiters []*afterRequest // GUARDED_BY(mu)
}

// NewSimulatedClock returns a clock initialized to t.
func NewSimulatedClock(t time.Time) *SimulatedClock {
	return &SimulatedClock{t: t}
}

func (sc *SimulatedClock) Now() time.Time {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.t
}

// SetTime sets the current time of the clock, firing any waiter whose
// deadline has been reached.
func (sc *SimulatedClock) SetTime(t time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.t = t
	sc.fireLocked()
}

// AdvanceTime moves the clock forward by d.
func (sc *SimulatedClock) AdvanceTime(d time.Duration) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.t = sc.t.Add(d)
	sc.fireLocked()
}

// After returns a channel that receives the simulated time once the clock
// has been advanced by at least d. Non-positive durations fire immediately.
func (sc *SimulatedClock) After(d time.Duration) <-chan time.Time {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- sc.t
		return ch
	}
	sc.waiters = append(sc.waiters, &afterRequest{fireAt: sc.t.Add(d), ch: ch})
	return ch
}

// WaiterCount returns the number of After channels that have not fired yet.
func (sc *SimulatedClock) WaiterCount() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return len(sc.waiters)
}

// LOCKS_REQUIRED(sc.mu)
func (sc *SimulatedClock) fireLocked() {
	pending := sc.waiters[:0]
	for _, w := range sc.waiters {
		if !sc.t.Before(w.fireAt) {
			w.ch <- w.fireAt
			continue
		}
		pending = append(pending, w)
	}
	sc.waiters = pending
}
