package history

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/gameportal/internal/model"
)

// SessionSource reports the logged-in user
type SessionSource interface {
	CurrentUserID() model.UserID
}

// Recorder stores finished plays for whoever is logged in
type Recorder struct {
	history  *Service
	sessions SessionSource
	logger   *slog.Logger
}

// NewRecorder creates a Recorder
func NewRecorder(history *Service, sessions SessionSource, logger *slog.Logger) *Recorder {
	return &Recorder{history: history, sessions: sessions, logger: logger}
}

// Record stores a result for the current user. With nobody logged in it does nothing.
func (r *Recorder) Record(ctx context.Context, game model.Game, score, durationSeconds int) error {
	_, err := r.history.RecordResult(ctx, r.sessions.CurrentUserID(), game.ID, game.Name, score, durationSeconds)
	if errors.Is(err, model.ErrNoActiveUser) {
		r.logger.Debug("result dropped, no user logged in", slog.String("game_id", string(game.ID)))
		return nil
	}
	return err
}
