package portal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/services/game"
	"github.com/mcoot/gameportal/internal/storage"
)

// EventHandler receives game events tagged with the client they belong to
type EventHandler func(clientID string, ev game.Event)

type entry struct {
	portal   *Portal
	lastUsed time.Time
}

// Registry lazily creates one Portal per client, each over its own
// namespace of the shared store. Portals left idle are evicted by
// CleanupIdle and rebuilt from storage on next use.
type Registry struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config
	builds  singleflight.Group

	mu      sync.Mutex
	portals map[string]*entry
	onEvent EventHandler
}

// NewRegistry creates an empty Registry
func NewRegistry(
	s storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	cfg Config,
) *Registry {
	return &Registry{
		storage: s,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "portal_registry")),
		cfg:     cfg,
		portals: make(map[string]*entry),
	}
}

// OnEvent sets the handler for game events of portals created afterwards
func (r *Registry) OnEvent(h EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvent = h
}

// Namespace returns the key prefix under which a client's data is stored
func Namespace(clientID string) string {
	return fmt.Sprintf("client:%s:", clientID)
}

// Get returns the client's portal, creating it on first use. Concurrent
// first uses of one client share a single build, which runs without
// blocking other clients.
func (r *Registry) Get(ctx context.Context, clientID string) (*Portal, error) {
	if p := r.lookup(clientID); p != nil {
		return p, nil
	}

	v, err, _ := r.builds.Do(clientID, func() (any, error) {
		if p := r.lookup(clientID); p != nil {
			return p, nil
		}
		return r.open(context.WithoutCancel(ctx), clientID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Portal), nil
}

func (r *Registry) lookup(clientID string) *Portal {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.portals[clientID]
	if !ok {
		return nil
	}
	e.lastUsed = r.clock.Now()
	return e.portal
}

func (r *Registry) open(ctx context.Context, clientID string) (*Portal, error) {
	logger := r.logger.With(slog.String("client_id", clientID))
	p, err := New(ctx, storage.WithPrefix(r.storage, Namespace(clientID)), r.clock, r.random, logger, r.cfg)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h := r.onEvent; h != nil {
		p.Arcade.OnEvent(func(ev game.Event) { h(clientID, ev) })
	}
	r.portals[clientID] = &entry{portal: p, lastUsed: r.clock.Now()}

	logger.Info("portal opened")
	return p, nil
}

// CleanupIdle closes portals unused for longer than maxIdle, except those
// with a game in progress. It returns the number evicted.
func (r *Registry) CleanupIdle(maxIdle time.Duration) int {
	cutoff := r.clock.Now().Add(-maxIdle)

	r.mu.Lock()
	var evicted []*Portal
	for clientID, e := range r.portals {
		if !e.lastUsed.Before(cutoff) || e.portal.Playing() {
			continue
		}
		delete(r.portals, clientID)
		evicted = append(evicted, e.portal)
		r.logger.Debug("portal evicted", slog.String("client_id", clientID))
	}
	r.mu.Unlock()

	for _, p := range evicted {
		p.Close()
	}
	return len(evicted)
}

// Len returns the number of open portals
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.portals)
}

// Close cancels every game in progress
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.portals {
		e.portal.Close()
	}
}
