// Package testutil provides deterministic time and id sources for tests.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// Clock is a deterministic time source. It starts at a fixed instant and
// advances by a fixed step on each reading, so code that timestamps
// successive operations sees distinct, reproducible times.
//
// Thread-safe: all methods take an internal mutex.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock whose first reading is start.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current instant and advances the clock by one step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Set rewinds or advances the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Sequence returns a generator of numbered ids: prefix0001, prefix0002,
// and so on. Used to pin otherwise random suffixes and activity ids.
//
// The returned func is safe for concurrent use.
func Sequence(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%04d", prefix, n)
	}
}
