package game

import (
	"time"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/model"
)

const (
	MemoryMaxLevel = 15

	memoryPreDelay      = 600 * time.Millisecond
	memoryHighlight     = 400 * time.Millisecond
	memoryNextLevelWait = time.Second
)

// Color is one of the memory game's buttons
type Color struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Colors are the memory game's buttons; IDs run from 1
var Colors = []Color{
	{ID: 1, Name: "Red"},
	{ID: 2, Name: "Blue"},
	{ID: 3, Name: "Green"},
	{ID: 4, Name: "Yellow"},
	{ID: 5, Name: "Purple"},
	{ID: 6, Name: "Orange"},
}

// MemorySnapshot is the memory game part of a Snapshot
type MemorySnapshot struct {
	Level           int  `json:"level"`
	Progress        int  `json:"progress"`
	SequenceLength  int  `json:"sequenceLength"`
	ShowingSequence bool `json:"showingSequence"`
	Highlighted     int  `json:"highlighted,omitempty"`
}

// MemoryClicker plays back a growing colour sequence for the player to repeat.
// Input is locked while the sequence plays and between levels.
type MemoryClicker struct {
	machine
	random      random.Random
	sequence    []int
	cursor      int
	level       int
	locked      bool
	highlighted int
}

// NewMemoryClicker creates an idle memory game
func NewMemoryClicker(clk clock.Clock, rnd random.Random, listener Listener) *MemoryClicker {
	m := &MemoryClicker{random: rnd, level: 1}
	m.init(model.GameMemoryClicker, clk, listener)
	return m
}

func (m *MemoryClicker) Start() bool {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return false
	}
	m.begin()
	m.level = 1
	m.sequence = []int{m.nextSymbol()}
	m.playbackLocked()
	events := []Event{{Type: EventStarted, Snapshot: m.snapshotLocked()}}
	m.mu.Unlock()

	m.emit(events)
	return true
}

// Press submits one colour. It is ignored while input is locked, outside of
// play, or for an unknown colour.
func (m *MemoryClicker) Press(symbol int) bool {
	m.mu.Lock()
	if m.state != StatePlaying || m.locked || symbol < 1 || symbol > len(Colors) {
		m.mu.Unlock()
		return false
	}

	var events []Event
	switch {
	case m.sequence[m.cursor] != symbol:
		m.finish(m.level, false, memoryMessage(m.level, false))
		events = append(events, Event{Type: EventFinished, Snapshot: m.snapshotLocked()})

	case m.cursor+1 == len(m.sequence) && m.level >= MemoryMaxLevel:
		m.cursor++
		m.finish(m.level, true, memoryMessage(m.level, true))
		events = append(events, Event{Type: EventFinished, Snapshot: m.snapshotLocked()})

	case m.cursor+1 == len(m.sequence):
		m.cursor++
		m.level++
		m.locked = true
		events = append(events, Event{Type: EventProgress, Snapshot: m.snapshotLocked()})
		m.schedule(memoryNextLevelWait, m.nextLevel)

	default:
		m.cursor++
		events = append(events, Event{Type: EventProgress, Snapshot: m.snapshotLocked()})
	}
	m.mu.Unlock()

	m.emit(events)
	return true
}

func (m *MemoryClicker) nextLevel() []Event {
	m.sequence = append(m.sequence, m.nextSymbol())
	m.playbackLocked()
	return []Event{{Type: EventProgress, Snapshot: m.snapshotLocked()}}
}

// playbackLocked locks input and schedules the highlight of every symbol in turn
func (m *MemoryClicker) playbackLocked() {
	m.locked = true
	m.cursor = 0
	m.highlighted = 0
	m.scheduleHighlight(0)
}

func (m *MemoryClicker) scheduleHighlight(i int) {
	m.schedule(memoryPreDelay, func() []Event {
		m.highlighted = m.sequence[i]
		events := []Event{{Type: EventHighlight, Snapshot: m.snapshotLocked(), Symbol: m.highlighted}}
		m.schedule(memoryHighlight, func() []Event {
			m.highlighted = 0
			if i+1 < len(m.sequence) {
				m.scheduleHighlight(i + 1)
				return nil
			}
			m.locked = false
			return []Event{{Type: EventInputReady, Snapshot: m.snapshotLocked()}}
		})
		return events
	})
}

func (m *MemoryClicker) nextSymbol() int {
	return m.random.Intn(len(Colors)) + 1
}

func (m *MemoryClicker) Reset() {
	m.mu.Lock()
	m.resetLocked()
	m.sequence = nil
	m.cursor = 0
	m.level = 1
	m.locked = false
	m.highlighted = 0
	events := []Event{{Type: EventReset, Snapshot: m.snapshotLocked()}}
	m.mu.Unlock()

	m.emit(events)
}

func (m *MemoryClicker) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Sequence returns a copy of the current target sequence
func (m *MemoryClicker) Sequence() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.sequence...)
}

func (m *MemoryClicker) snapshotLocked() Snapshot {
	snap := m.baseSnapshot(m.level)
	snap.Memory = &MemorySnapshot{
		Level:           m.level,
		Progress:        m.cursor,
		SequenceLength:  len(m.sequence),
		ShowingSequence: m.locked && m.state == StatePlaying,
		Highlighted:     m.highlighted,
	}
	return snap
}

func memoryMessage(level int, won bool) string {
	switch {
	case won:
		return "Perfect memory!"
	case level >= 10:
		return "Excellent memory!"
	case level >= 5:
		return "Good memory!"
	default:
		return "Keep practicing!"
	}
}
