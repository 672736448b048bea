package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/model"
)

// CatalogHandler serves the game catalog
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// List handles GET /api/v1/games
func (h *CatalogHandler) List(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, response.GameList{Games: model.Games})
}

// Get handles GET /api/v1/games/{slug}. The caller's stats are included
// when they are logged in.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := model.GameBySlug(mux.Vars(r)["slug"])
	if err != nil {
		WriteError(w, err)
		return
	}

	detail := response.GameDetail{Game: game}
	p := middleware.MustGetPortal(r.Context())
	if session := p.Auth.Current(); session != nil {
		detail.Stats, err = p.History.StatsFor(r.Context(), session.UserID, game.ID)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.OK(w, detail)
}
