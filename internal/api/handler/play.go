package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/game"
)

// PlayHandler drives the client's active game. Every endpoint responds
// with a snapshot of the game after the action.
type PlayHandler struct{}

// NewPlayHandler creates a new play handler
func NewPlayHandler() *PlayHandler {
	return &PlayHandler{}
}

func arcade(r *http.Request) *game.Arcade {
	return middleware.MustGetPortal(r.Context()).Arcade
}

func writeSnapshot(w http.ResponseWriter, status int, snap game.Snapshot, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, status, snap)
}

// Launch handles POST /api/v1/play/{slug}, replacing any active game
func (h *PlayHandler) Launch(w http.ResponseWriter, r *http.Request) {
	g, err := model.GameBySlug(mux.Vars(r)["slug"])
	if err != nil {
		WriteError(w, err)
		return
	}
	snap, err := arcade(r).Launch(g.ID)
	writeSnapshot(w, http.StatusCreated, snap, err)
}

// Get handles GET /api/v1/play
func (h *PlayHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := arcade(r).Snapshot()
	writeSnapshot(w, http.StatusOK, snap, err)
}

// Tap handles POST /api/v1/play/tap
func (h *PlayHandler) Tap(w http.ResponseWriter, r *http.Request) {
	snap, err := arcade(r).Tap()
	writeSnapshot(w, http.StatusOK, snap, err)
}

// Press handles POST /api/v1/play/press
func (h *PlayHandler) Press(w http.ResponseWriter, r *http.Request) {
	var req request.PressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Symbol < 1 || req.Symbol > len(game.Colors) {
		WriteError(w, NewInvalidRequestError(fmt.Sprintf("symbol must be between 1 and %d", len(game.Colors))))
		return
	}
	snap, err := arcade(r).Press(req.Symbol)
	writeSnapshot(w, http.StatusOK, snap, err)
}

// Open handles POST /api/v1/play/open
func (h *PlayHandler) Open(w http.ResponseWriter, r *http.Request) {
	snap, err := arcade(r).Open()
	writeSnapshot(w, http.StatusOK, snap, err)
}

// Reset handles POST /api/v1/play/reset
func (h *PlayHandler) Reset(w http.ResponseWriter, r *http.Request) {
	snap, err := arcade(r).Reset()
	writeSnapshot(w, http.StatusOK, snap, err)
}

// Restart handles POST /api/v1/play/restart
func (h *PlayHandler) Restart(w http.ResponseWriter, r *http.Request) {
	snap, err := arcade(r).Restart()
	writeSnapshot(w, http.StatusOK, snap, err)
}
