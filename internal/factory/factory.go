package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/gameportal/internal/api/sse"
	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/services/game"
	"github.com/mcoot/gameportal/internal/storage"
	"github.com/mcoot/gameportal/internal/storage/memory"
	redisstorage "github.com/mcoot/gameportal/internal/storage/redis"
	sqlitestorage "github.com/mcoot/gameportal/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Portals     *portal.Registry
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster

	closeStorage func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Portal configures every client's portal (optional).
	// If zero value, defaults to portal.DefaultConfig()
	Portal portal.Config
	// Logger is the application logger (optional).
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite").
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	store, closeStorage, err := openStorage(cfg, clk, logger)
	if err != nil {
		return nil, err
	}

	portalCfg := cfg.Portal
	if portalCfg == (portal.Config{}) {
		portalCfg = portal.DefaultConfig()
	}

	app := newWithDependencies(store, clk, random.New(), portalCfg, logger)
	app.closeStorage = closeStorage
	return app, nil
}

func openStorage(cfg Config, clk clock.Clock, logger *slog.Logger) (storage.Storage, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.StorageType {
	case "", StorageTypeMemory:
		return memory.New(), noClose, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		store, err := sqlitestorage.Open(cfg.SQLitePath, clk, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, portalCfg portal.Config, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	portals := portal.NewRegistry(store, clk, rnd, logger, portalCfg)
	portals.OnEvent(func(clientID string, ev game.Event) {
		broadcaster.BroadcastGameEvent(clientID, ev)
	})

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		Portals:      portals,
		HubManager:   hubManager,
		Broadcaster:  broadcaster,
		closeStorage: func() error { return nil },
	}
}

// Close stops every game and event stream, then closes the storage backend
func (a *App) Close() error {
	a.Portals.Close()
	a.HubManager.Close()
	return a.closeStorage()
}
