package game

import (
	"math"
	"sync"
	"time"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/model"
)

// State is the lifecycle position of a game machine
type State string

const (
	StateIdle     State = "idle"
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// EventType identifies what changed in a machine
type EventType string

const (
	EventStarted    EventType = "started"
	EventTick       EventType = "tick"
	EventHighlight  EventType = "highlight"
	EventInputReady EventType = "input-ready"
	EventProgress   EventType = "progress"
	EventReward     EventType = "reward"
	EventFinished   EventType = "finished"
	EventReset      EventType = "reset"
)

// Result is the outcome of a finished game
type Result struct {
	GameID   model.GameID `json:"gameId"`
	Score    int          `json:"score"`
	Duration int          `json:"duration"` // seconds
	Won      bool         `json:"won,omitempty"`
	Message  string       `json:"message"`
}

// Event is emitted to a Listener after every state change
type Event struct {
	Type     EventType         `json:"type"`
	Snapshot Snapshot          `json:"snapshot"`
	Symbol   int               `json:"symbol,omitempty"`
	Reward   *model.RewardTier `json:"reward,omitempty"`
}

// Listener receives machine events. It is never called with a machine lock held.
type Listener func(Event)

// Snapshot is a point-in-time view of a machine
type Snapshot struct {
	GameID model.GameID    `json:"gameId"`
	State  State           `json:"state"`
	Score  int             `json:"score"`
	Result *Result         `json:"result,omitempty"`
	Tap    *TapSnapshot    `json:"tap,omitempty"`
	Memory *MemorySnapshot `json:"memory,omitempty"`
	Lucky  *LuckySnapshot  `json:"lucky,omitempty"`
}

// Machine is the behaviour shared by every game
type Machine interface {
	Game() model.Game

	// Start begins play from idle. It reports whether the machine started.
	Start() bool

	// Reset returns to idle from any state, cancelling pending timers
	Reset()

	Snapshot() Snapshot
}

// machine holds the state common to every game.
// generation increases on every Start and Reset; timer callbacks scheduled
// under an older generation do nothing.
type machine struct {
	mu         sync.Mutex
	game       model.Game
	clock      clock.Clock
	listener   Listener
	state      State
	generation uint64
	startedAt  time.Time
	timer      clock.Timer
	result     *Result
}

func (m *machine) init(id model.GameID, clk clock.Clock, listener Listener) {
	m.game, _ = model.GameByID(id)
	if listener == nil {
		listener = func(Event) {}
	}
	m.clock = clk
	m.listener = listener
	m.state = StateIdle
}

// Game returns the catalog entry this machine plays
func (m *machine) Game() model.Game {
	return m.game
}

// schedule runs f after d unless the generation has moved on by then.
// f is called with the lock held. Must be called with the lock held.
func (m *machine) schedule(d time.Duration, f func() []Event) {
	gen := m.generation
	m.timer = m.clock.AfterFunc(d, func() {
		m.mu.Lock()
		if gen != m.generation || m.state != StatePlaying {
			m.mu.Unlock()
			return
		}
		events := f()
		m.mu.Unlock()
		m.emit(events)
	})
}

// begin moves to playing. Must be called with the lock held.
func (m *machine) begin() {
	m.stopTimerLocked()
	m.generation++
	m.state = StatePlaying
	m.startedAt = m.clock.Now()
	m.result = nil
}

// finish records the result. Must be called with the lock held.
func (m *machine) finish(score int, won bool, message string) {
	m.stopTimerLocked()
	m.state = StateFinished
	m.result = &Result{
		GameID:   m.game.ID,
		Score:    score,
		Duration: roundSeconds(m.clock.Now().Sub(m.startedAt)),
		Won:      won,
		Message:  message,
	}
}

// resetLocked moves to idle. Must be called with the lock held.
func (m *machine) resetLocked() {
	m.stopTimerLocked()
	m.generation++
	m.state = StateIdle
	m.startedAt = time.Time{}
	m.result = nil
}

func (m *machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *machine) emit(events []Event) {
	for _, ev := range events {
		m.listener(ev)
	}
}

func (m *machine) baseSnapshot(score int) Snapshot {
	snap := Snapshot{GameID: m.game.ID, State: m.state, Score: score}
	if m.result != nil {
		r := *m.result
		snap.Result = &r
	}
	return snap
}

func roundSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(math.Round(d.Seconds()))
}
