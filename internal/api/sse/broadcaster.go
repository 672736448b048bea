package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/gameportal/internal/services/game"
)

// EventConnected is sent once when a stream opens
const EventConnected = "connected"

// Broadcaster publishes game events to the streams of the client they belong to
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastGameEvent sends ev to the client's streams, named by its event type.
// Events for clients with no open stream are dropped.
func (b *Broadcaster) BroadcastGameEvent(clientID string, ev game.Event) {
	hub := b.hubManager.GetHub(clientID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error("sse failed to encode game event",
			slog.String("client_id", clientID),
			slog.String("type", string(ev.Type)),
			slog.Any("error", err))
		return
	}
	hub.Send(string(ev.Type), string(data))
}
