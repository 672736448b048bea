package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/api/handler"
	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/sse"
	commonmw "github.com/mcoot/gameportal/internal/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Portals    middleware.PortalSource
	HubManager *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler()
	catalogHandler := handler.NewCatalogHandler()
	historyHandler := handler.NewHistoryHandler()
	playHandler := handler.NewPlayHandler()
	eventsHandler := handler.NewEventsHandler(cfg.HubManager)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(commonmw.Logging(cfg.Logger))

	// Health check needs no client ID
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	client := api.NewRoute().Subrouter()
	client.Use(middleware.Client(cfg.Portals))

	client.HandleFunc("/games", catalogHandler.List).Methods(http.MethodGet)
	client.HandleFunc("/games/{slug}", catalogHandler.Get).Methods(http.MethodGet)

	client.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	client.HandleFunc("/session", sessionHandler.Logout).Methods(http.MethodDelete)
	client.HandleFunc("/session/register", sessionHandler.Register).Methods(http.MethodPost)
	client.HandleFunc("/session/login", sessionHandler.Login).Methods(http.MethodPost)

	client.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Routes below need a logged-in user
	user := client.NewRoute().Subrouter()
	user.Use(middleware.RequireSession)

	user.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/stats", historyHandler.Stats).Methods(http.MethodGet)
	user.HandleFunc("/stats/{gameId}", historyHandler.GameStats).Methods(http.MethodGet)

	// Action routes are registered before /play/{slug} so they match first
	user.HandleFunc("/play", playHandler.Get).Methods(http.MethodGet)
	user.HandleFunc("/play/tap", playHandler.Tap).Methods(http.MethodPost)
	user.HandleFunc("/play/press", playHandler.Press).Methods(http.MethodPost)
	user.HandleFunc("/play/open", playHandler.Open).Methods(http.MethodPost)
	user.HandleFunc("/play/reset", playHandler.Reset).Methods(http.MethodPost)
	user.HandleFunc("/play/restart", playHandler.Restart).Methods(http.MethodPost)
	user.HandleFunc("/play/{slug}", playHandler.Launch).Methods(http.MethodPost)

	return r
}
