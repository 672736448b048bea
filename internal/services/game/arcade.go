package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/model"
)

const recordTimeout = 5 * time.Second

// ResultRecorder stores finished games
type ResultRecorder interface {
	Record(ctx context.Context, game model.Game, score, durationSeconds int) error
}

// Arcade holds the single active game of one portal and records its result
// when it finishes
type Arcade struct {
	clock    clock.Clock
	random   random.Random
	recorder ResultRecorder
	logger   *slog.Logger

	mu       sync.Mutex
	active   Machine
	listener Listener
}

// NewArcade creates an Arcade with no active game
func NewArcade(clk clock.Clock, rnd random.Random, recorder ResultRecorder, logger *slog.Logger) *Arcade {
	return &Arcade{
		clock:    clk,
		random:   rnd,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "arcade")),
	}
}

// OnEvent sets the listener that receives every event of every game launched afterwards
func (a *Arcade) OnEvent(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listener = l
}

// Launch replaces the active game with a fresh machine for gameID and starts it
func (a *Arcade) Launch(gameID model.GameID) (Snapshot, error) {
	game, err := model.GameByID(gameID)
	if err != nil {
		return Snapshot{}, err
	}

	a.mu.Lock()
	previous := a.active
	m := a.newMachine(game)
	a.active = m
	a.mu.Unlock()

	if previous != nil {
		previous.Reset()
	}
	m.Start()

	a.logger.Info("game launched", slog.String("game_id", string(gameID)))
	return m.Snapshot(), nil
}

// Restart resets the active game and starts it again
func (a *Arcade) Restart() (Snapshot, error) {
	m, err := a.Active()
	if err != nil {
		return Snapshot{}, err
	}
	m.Reset()
	m.Start()
	return m.Snapshot(), nil
}

// Active returns the active machine
func (a *Arcade) Active() (Machine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return nil, model.ErrNoActiveGame
	}
	return a.active, nil
}

// Snapshot returns a view of the active game
func (a *Arcade) Snapshot() (Snapshot, error) {
	m, err := a.Active()
	if err != nil {
		return Snapshot{}, err
	}
	return m.Snapshot(), nil
}

// Tap taps the active tap counter
func (a *Arcade) Tap() (Snapshot, error) {
	m, err := a.Active()
	if err != nil {
		return Snapshot{}, err
	}
	tap, ok := m.(*TapCounter)
	if !ok {
		return Snapshot{}, model.ErrUnsupportedAction
	}
	tap.Tap()
	return tap.Snapshot(), nil
}

// Press submits a colour to the active memory game
func (a *Arcade) Press(symbol int) (Snapshot, error) {
	m, err := a.Active()
	if err != nil {
		return Snapshot{}, err
	}
	memory, ok := m.(*MemoryClicker)
	if !ok {
		return Snapshot{}, model.ErrUnsupportedAction
	}
	memory.Press(symbol)
	return memory.Snapshot(), nil
}

// Open opens a box in the active lucky box game
func (a *Arcade) Open() (Snapshot, error) {
	m, err := a.Active()
	if err != nil {
		return Snapshot{}, err
	}
	box, ok := m.(*LuckyBox)
	if !ok {
		return Snapshot{}, model.ErrUnsupportedAction
	}
	box.Open()
	return box.Snapshot(), nil
}

// Reset returns the active game to idle
func (a *Arcade) Reset() (Snapshot, error) {
	m, err := a.Active()
	if err != nil {
		return Snapshot{}, err
	}
	m.Reset()
	return m.Snapshot(), nil
}

// Clear discards the active game, cancelling its timers
func (a *Arcade) Clear() {
	a.mu.Lock()
	m := a.active
	a.active = nil
	a.mu.Unlock()

	if m != nil {
		m.Reset()
	}
}

func (a *Arcade) newMachine(game model.Game) Machine {
	var m Machine
	listener := func(ev Event) { a.handle(m, ev) }
	switch game.ID {
	case model.GameTapCounter:
		m = NewTapCounter(a.clock, listener)
	case model.GameMemoryClicker:
		m = NewMemoryClicker(a.clock, a.random, listener)
	default:
		m = NewLuckyBox(a.clock, a.random, listener)
	}
	return m
}

func (a *Arcade) handle(m Machine, ev Event) {
	a.mu.Lock()
	current := a.active == m
	listener := a.listener
	a.mu.Unlock()

	if ev.Type == EventFinished && ev.Snapshot.Result != nil && current {
		a.record(m.Game(), *ev.Snapshot.Result)
	}
	if listener != nil {
		listener(ev)
	}
}

func (a *Arcade) record(game model.Game, result Result) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := a.recorder.Record(ctx, game, result.Score, result.Duration); err != nil {
		a.logger.Error("failed to record result",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}
