package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClockFiresTimersInOrder(t *testing.T) {
	c := NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	var fired []string

	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	c.AfterFunc(5*time.Second, func() { fired = append(fired, "c") })

	c.Advance(3 * time.Second)

	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, c.PendingTimers())
}

func TestMockClockCallbackSeesTimerDeadline(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	var seen time.Time

	c.AfterFunc(time.Second, func() { seen = c.Now() })
	c.Advance(10 * time.Second)

	assert.Equal(t, start.Add(time.Second), seen)
	assert.Equal(t, start.Add(10*time.Second), c.Now())
}

func TestMockClockChainedTimers(t *testing.T) {
	c := NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	ticks := 0

	var tick func()
	tick = func() {
		ticks++
		if ticks < 10 {
			c.AfterFunc(time.Second, tick)
		}
	}
	c.AfterFunc(time.Second, tick)

	c.Advance(4 * time.Second)
	assert.Equal(t, 4, ticks)

	c.Advance(time.Minute)
	assert.Equal(t, 10, ticks)
}

func TestMockClockStop(t *testing.T) {
	c := NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	fired := false

	timer := c.AfterFunc(time.Second, func() { fired = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(time.Minute)
	assert.False(t, fired)
}
