package testutil

import (
	"sync"
	"time"
)

// Epoch is the default start of a StepClock: 2026-03-15 10:00:00 UTC.
var Epoch = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

// StepClock is a deterministic wall clock for tests.
//
// Every call to Now returns the current instant and then advances it by
// a fixed step, so consecutive timestamps are strictly increasing and
// identical across runs. Reset rewinds the clock for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	step  time.Duration
}

// NewStepClock creates a clock starting at start that advances by step on
// every reading. A zero start means Epoch; a non-positive step means one
// second.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	if start.IsZero() {
		start = Epoch
	}
	if step <= 0 {
		step = time.Second
	}
	return &StepClock{start: start, now: start, step: step}
}

// NewFixedClock creates a clock that always reads t.
func NewFixedClock(t time.Time) *StepClock {
	c := NewStepClock(t, time.Second)
	c.step = 0
	return c
}

// Now returns the current instant and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the instant the next Now call will return.
func (c *StepClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Reset rewinds the clock to its start.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
