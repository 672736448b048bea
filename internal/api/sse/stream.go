package sse

import (
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Time between keepalive comments
	pingPeriod = 15 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

// Stream is one open event-stream connection
type Stream struct {
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewStream creates an unregistered stream
func NewStream() *Stream {
	return &Stream{
		id:          gonanoid.Must(),
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Serve subscribes to the client's hub and streams its events to w until
// the request ends or the hub closes
func Serve(w http.ResponseWriter, r *http.Request, hubs *HubManager, clientID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	stream := NewStream()
	hub, ok := hubs.Subscribe(clientID, stream)
	if !ok {
		http.Error(w, "Stream closed", http.StatusServiceUnavailable)
		return
	}
	defer hub.Unregister(stream)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(formatSSEMessage(EventConnected, `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-stream.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
