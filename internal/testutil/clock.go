package testutil

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced wall clock for deterministic verifier
// tests. It satisfies verify.Clock.
//
// Real elapsed time never enters a test: simulated planners advance the fake
// clock by their solve time, so the improvement loop terminates at an exact,
// reproducible round count.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// fakeEpoch is an arbitrary fixed starting instant.
var fakeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewFakeClock creates a fake clock at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: fakeEpoch}
}

// Now returns the current fake instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Reset returns the clock to the epoch for test reuse.
func (c *FakeClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = fakeEpoch
}
