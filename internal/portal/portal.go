// Package portal composes the account, history and game services of one
// client into a single unit, and keeps one such unit per client.
package portal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/auth"
	"github.com/mcoot/gameportal/internal/services/game"
	"github.com/mcoot/gameportal/internal/services/history"
	"github.com/mcoot/gameportal/internal/storage"
)

// Config holds configuration for every portal
type Config struct {
	Auth    auth.Config
	History history.Config
}

// DefaultConfig returns default portal configuration
func DefaultConfig() Config {
	return Config{
		Auth:    auth.DefaultConfig(),
		History: history.DefaultConfig(),
	}
}

// Portal is one client's view of the game portal: its accounts, its
// logged-in user, that user's history and the active game
type Portal struct {
	Auth    *auth.Service
	History *history.Service
	Arcade  *game.Arcade
}

// New builds a portal over s, seeding demo accounts and restoring any persisted session
func New(
	ctx context.Context,
	s storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	cfg Config,
) (*Portal, error) {
	authService := auth.New(s, clk, logger, cfg.Auth)
	if err := authService.SeedDemoAccounts(ctx); err != nil {
		return nil, fmt.Errorf("seed demo accounts: %w", err)
	}
	authService.RestoreSession(ctx)

	historyService := history.New(s, clk, logger, cfg.History)
	recorder := history.NewRecorder(historyService, authService, logger)
	arcade := game.NewArcade(clk, rnd, recorder, logger)

	// The outgoing user's game must not finish under the incoming user
	authService.OnSessionChange(arcade.Clear)

	return &Portal{
		Auth:    authService,
		History: historyService,
		Arcade:  arcade,
	}, nil
}

// Register creates an account and logs it in, discarding any game in progress
func (p *Portal) Register(ctx context.Context, username, password string) (*model.Session, error) {
	return p.Auth.Register(ctx, username, password)
}

// Login switches the active user, discarding any game in progress.
// A failed login leaves the current game alone.
func (p *Portal) Login(ctx context.Context, username, password string) (*model.Session, error) {
	return p.Auth.Login(ctx, username, password)
}

// Logout ends the session and discards any game in progress
func (p *Portal) Logout(ctx context.Context) error {
	return p.Auth.Logout(ctx)
}

// Playing reports whether a game is in progress
func (p *Portal) Playing() bool {
	snap, err := p.Arcade.Snapshot()
	return err == nil && snap.State == game.StatePlaying
}

// RequireUser returns the logged-in session or model.ErrNoActiveUser
func (p *Portal) RequireUser() (*model.Session, error) {
	session := p.Auth.Current()
	if session == nil {
		return nil, model.ErrNoActiveUser
	}
	return session, nil
}

// Close cancels any game in progress
func (p *Portal) Close() {
	p.Arcade.Clear()
}
