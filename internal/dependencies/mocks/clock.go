package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Timers scheduled with AfterFunc only fire from Advance or Set,
// synchronously on the calling goroutine.
type MockClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*mockTimer
	nextSeq int
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

type mockTimer struct {
	clock *MockClock
	when  time.Time
	seq   int
	f     func()
}

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run once the clock has been advanced by d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{clock: c, when: c.now.Add(d), seq: c.nextSeq, f: f}
	c.nextSeq++
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing due timers in order
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	c.Set(target)
}

// Set sets the clock to the given time, firing due timers in order.
// Timers scheduled by a firing callback also fire if they fall due before t.
func (c *MockClock) Set(t time.Time) {
	for {
		c.mu.Lock()
		next := c.popDueLocked(t)
		if next == nil {
			c.now = t
			c.mu.Unlock()
			return
		}
		if next.when.After(c.now) {
			c.now = next.when
		}
		c.mu.Unlock()
		next.f()
	}
}

// PendingTimers returns the number of scheduled timers that have not fired or been stopped
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *MockClock) popDueLocked(t time.Time) *mockTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].when.Equal(c.timers[j].when) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].when.Before(c.timers[j].when)
	})
	first := c.timers[0]
	if first.when.After(t) {
		return nil
	}
	c.timers = c.timers[1:]
	return first
}

// Stop removes the timer if it is still pending
func (t *mockTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
