package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/stats"
	"github.com/mcoot/gameportal/internal/storage"
)

// Config holds configuration for the history service
type Config struct {
	// Limit is the number of entries retained per user
	Limit int
}

// DefaultConfig returns default history configuration
func DefaultConfig() Config {
	return Config{Limit: 100}
}

// Service records finished plays per user, most recent first
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	limit   int

	mu sync.Mutex
}

// New creates a new history Service
func New(s storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultConfig().Limit
	}
	return &Service{
		storage: s,
		clock:   clock,
		logger:  logger.With(slog.String("component", "history")),
		limit:   cfg.Limit,
	}
}

// RecordResult prepends a play to the user's history, dropping the oldest
// entries beyond the retention limit
func (s *Service) RecordResult(
	ctx context.Context,
	userID model.UserID,
	gameID model.GameID,
	gameName string,
	score, durationSeconds int,
) (*model.HistoryEntry, error) {
	if userID == "" {
		return nil, model.ErrNoActiveUser
	}
	if score < 0 || durationSeconds < 0 {
		return nil, model.ErrInvalidScore
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate history id: %w", err)
	}
	entry := model.HistoryEntry{
		ID:        id,
		GameID:    gameID,
		GameName:  gameName,
		Score:     score,
		Duration:  durationSeconds,
		Timestamp: s.clock.Now().UTC(),
		UserID:    userID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := make([]model.HistoryEntry, 0, min(len(entries)+1, s.limit))
	updated = append(updated, entry)
	for _, e := range entries {
		if len(updated) == s.limit {
			break
		}
		updated = append(updated, e)
	}
	if err := storage.SetJSON(ctx, s.storage, storage.HistoryKey(userID), updated); err != nil {
		return nil, err
	}

	s.logger.Info("result recorded",
		slog.String("user_id", string(userID)),
		slog.String("game_id", string(gameID)),
		slog.Int("score", score),
		slog.Int("duration", durationSeconds),
	)
	return &entry, nil
}

// ListForUser returns the user's history, most recent first.
// A non-empty gameID restricts the result to that game.
func (s *Service) ListForUser(ctx context.Context, userID model.UserID, gameID model.GameID) ([]model.HistoryEntry, error) {
	if userID == "" {
		return nil, model.ErrNoActiveUser
	}
	s.mu.Lock()
	entries, err := s.load(ctx, userID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return entries, nil
	}
	filtered := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.GameID == gameID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// StatsFor summarizes one game for the user, or returns nil when it was never played
func (s *Service) StatsFor(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.GameStats, error) {
	entries, err := s.ListForUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	summary, ok := stats.ForGame(entries, gameID)
	if !ok {
		return nil, nil
	}
	return &summary, nil
}

// StatsForUser summarizes every game the user has played
func (s *Service) StatsForUser(ctx context.Context, userID model.UserID) (map[model.GameID]model.GameStats, error) {
	entries, err := s.ListForUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return stats.Summarize(entries), nil
}

func (s *Service) load(ctx context.Context, userID model.UserID) ([]model.HistoryEntry, error) {
	entries, err := storage.GetJSON[[]model.HistoryEntry](ctx, s.storage, storage.HistoryKey(userID))
	switch {
	case err == nil:
		return entries, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case errors.Is(err, storage.ErrMalformed):
		s.logger.Warn("ignoring unreadable history",
			slog.String("user_id", string(userID)),
			slog.Any("error", err),
		)
		return nil, nil
	default:
		return nil, err
	}
}
