package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/model"
)

// HistoryHandler serves the logged-in user's play history and stats
type HistoryHandler struct{}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{}
}

// List handles GET /api/v1/history?game={id}
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	gameID := model.GameID(r.URL.Query().Get("game"))
	if gameID != "" {
		if _, err := model.GameByID(gameID); err != nil {
			WriteError(w, err)
			return
		}
	}

	entries, err := middleware.MustGetPortal(r.Context()).History.ListForUser(r.Context(), session.UserID, gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.HistoryFromModel(entries))
}

// Stats handles GET /api/v1/stats
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	byGame, err := middleware.MustGetPortal(r.Context()).History.StatsForUser(r.Context(), session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.StatsListFromModel(byGame))
}

// GameStats handles GET /api/v1/stats/{gameId}
func (h *HistoryHandler) GameStats(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	game, err := model.GameByID(model.GameID(mux.Vars(r)["gameId"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	stats, err := middleware.MustGetPortal(r.Context()).History.StatsFor(r.Context(), session.UserID, game.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.GameStats{GameID: game.ID, Stats: stats})
}
