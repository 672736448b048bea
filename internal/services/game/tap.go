package game

import (
	"time"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/model"
)

const (
	TapDuration = 10 * time.Second
	tapTick     = time.Second
)

// TapSnapshot is the tap counter part of a Snapshot
type TapSnapshot struct {
	TimeLeft int `json:"timeLeft"` // seconds
	Taps     int `json:"taps"`
}

// TapCounter counts taps during a fixed countdown
type TapCounter struct {
	machine
	timeLeft int
	taps     int
}

// NewTapCounter creates an idle tap counter
func NewTapCounter(clk clock.Clock, listener Listener) *TapCounter {
	t := &TapCounter{timeLeft: tapSeconds()}
	t.init(model.GameTapCounter, clk, listener)
	return t
}

func tapSeconds() int {
	return int(TapDuration / tapTick)
}

func (t *TapCounter) Start() bool {
	t.mu.Lock()
	if t.state != StateIdle {
		t.mu.Unlock()
		return false
	}
	t.begin()
	t.taps = 0
	t.timeLeft = tapSeconds()
	t.schedule(tapTick, t.tick)
	events := []Event{{Type: EventStarted, Snapshot: t.snapshotLocked()}}
	t.mu.Unlock()

	t.emit(events)
	return true
}

// Tap counts one tap. Taps outside of play are ignored.
func (t *TapCounter) Tap() bool {
	t.mu.Lock()
	if t.state != StatePlaying {
		t.mu.Unlock()
		return false
	}
	t.taps++
	events := []Event{{Type: EventProgress, Snapshot: t.snapshotLocked()}}
	t.mu.Unlock()

	t.emit(events)
	return true
}

func (t *TapCounter) tick() []Event {
	t.timeLeft--
	if t.timeLeft > 0 {
		t.schedule(tapTick, t.tick)
		return []Event{{Type: EventTick, Snapshot: t.snapshotLocked()}}
	}

	t.timeLeft = 0
	t.finish(t.taps, false, tapMessage(t.taps))
	return []Event{{Type: EventFinished, Snapshot: t.snapshotLocked()}}
}

func (t *TapCounter) Reset() {
	t.mu.Lock()
	t.resetLocked()
	t.taps = 0
	t.timeLeft = tapSeconds()
	events := []Event{{Type: EventReset, Snapshot: t.snapshotLocked()}}
	t.mu.Unlock()

	t.emit(events)
}

func (t *TapCounter) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *TapCounter) snapshotLocked() Snapshot {
	snap := t.baseSnapshot(t.taps)
	snap.Tap = &TapSnapshot{TimeLeft: t.timeLeft, Taps: t.taps}
	return snap
}

func tapMessage(taps int) string {
	switch {
	case taps >= 100:
		return "Amazing tapping speed!"
	case taps >= 50:
		return "Great job!"
	default:
		return "Good effort!"
	}
}
