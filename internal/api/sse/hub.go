package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Hub fans game events out to every open stream of one portal client
type Hub struct {
	clientID string
	streams  map[*Stream]bool
	mu       sync.RWMutex
	logger   *slog.Logger

	unregister chan *Stream
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a Hub for one client ID
func NewHub(clientID string, logger *slog.Logger) *Hub {
	return &Hub{
		clientID:   clientID,
		streams:    make(map[*Stream]bool),
		logger:     logger.With(slog.String("client_id", clientID)),
		unregister: make(chan *Stream),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run processes unregistrations and broadcasts until Close is called
func (h *Hub) Run() {
	for {
		select {
		case stream := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.streams[stream]; ok {
				delete(h.streams, stream)
				close(stream.send)
			}
			count := len(h.streams)
			h.mu.Unlock()
			h.logger.Debug("sse stream closed",
				slog.String("stream_id", stream.id),
				slog.Duration("connection_duration", time.Since(stream.connectedAt)),
				slog.Int("total_streams", count))

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for stream := range h.streams {
				select {
				case stream.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse messages dropped - stream buffer full", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for stream := range h.streams {
				close(stream.send)
				delete(h.streams, stream)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a stream to the hub. It returns false if the hub is closed.
// The stream is counted by StreamCount as soon as Register returns.
func (h *Hub) Register(stream *Stream) bool {
	h.mu.Lock()
	if h.closed() {
		h.mu.Unlock()
		return false
	}
	h.streams[stream] = true
	count := len(h.streams)
	h.mu.Unlock()

	h.logger.Debug("sse stream opened",
		slog.String("stream_id", stream.id),
		slog.Int("total_streams", count))
	return true
}

// Unregister removes a stream from the hub
func (h *Hub) Unregister(stream *Stream) {
	select {
	case h.unregister <- stream:
	case <-h.done:
	}
}

// Send queues a named event for every stream
func (h *Hub) Send(eventName, data string) {
	select {
	case h.broadcast <- formatSSEMessage(eventName, data):
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// Close disconnects every stream and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) closed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// StreamCount returns the number of open streams
func (h *Hub) StreamCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams)
}

// formatSSEMessage renders one event, prefixing every data line with "data: "
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteByte('\n')
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager owns one Hub per client ID
type HubManager struct {
	hubs   map[string]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates an empty HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[string]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// Subscribe registers stream with the client's hub, starting one if
// needed. Cleanup cannot remove
// the hub between lookup and registration. A hub closed outside the
// manager is replaced once before giving up.
func (m *HubManager) Subscribe(clientID string, stream *Stream) (*Hub, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for range 2 {
		hub := m.getOrCreateLocked(clientID)
		if hub.Register(stream) {
			return hub, true
		}
	}
	return nil, false
}

func (m *HubManager) getOrCreateLocked(clientID string) *Hub {
	if hub, ok := m.hubs[clientID]; ok && !hub.closed() {
		return hub
	}
	hub := NewHub(clientID, m.logger)
	m.hubs[clientID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the client's hub, or nil if nobody is listening
func (m *HubManager) GetHub(clientID string) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[clientID]
}

// CleanupEmptyHubs stops hubs with no open streams
func (m *HubManager) CleanupEmptyHubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.StreamCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removed))
	}
	return removed
}

// Close stops every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
