package handler

import (
	"net/http"

	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/sse"
)

// EventsHandler streams the client's game events
type EventsHandler struct {
	hubManager *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{hubManager: hubManager}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sse.Serve(w, r, h.hubManager, middleware.GetClientID(r.Context()))
}
