// Package diagnostics broadcasts config reload/validation events to
// connected WebSocket clients (dashboards, editors), adapted from
// internal/watch.ReloadServer in this corpus's Conduit compiler, which
// broadcasts dev-server rebuild events the same way.
package diagnostics

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is one reload/validation notification pushed to every
// connected client.
type Event struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"` // "reloaded" | "invalid" | "error"
	Path      string   `json:"path"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// Hub fans Event values out to every connected WebSocket client.
type Hub struct {
	upgrader    websocket.Upgrader
	connections map[*websocket.Conn]bool
	broadcast   chan Event
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	done        chan struct{}
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewHub starts the broadcast goroutine and returns a ready Hub.
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		connections: make(map[*websocket.Conn]bool),
		broadcast:   make(chan Event, 16),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
		logger:      logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.connections {
				c.Close()
			}
			h.mu.Unlock()
			return
		case c := <-h.register:
			h.mu.Lock()
			h.connections[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			delete(h.connections, c)
			h.mu.Unlock()
			c.Close()
		case ev := <-h.broadcast:
			h.sendToAll(ev)
		}
	}
}

func (h *Hub) sendToAll(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("marshal diagnostics event", zap.Error(err))
		return
	}
	h.mu.RLock()
	var dead []*websocket.Conn
	for c := range h.connections {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			dead = append(dead, c)
		}
	}
	h.mu.RUnlock()

	if len(dead) > 0 {
		h.mu.Lock()
		for _, c := range dead {
			delete(h.connections, c)
		}
		h.mu.Unlock()
	}
}

// Publish enqueues ev for broadcast to every connected client.
func (h *Hub) Publish(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	h.broadcast <- ev
}

// NotifyReloaded publishes a successful reload event for path.
func (h *Hub) NotifyReloaded(path string) { h.Publish(Event{Type: "reloaded", Path: path}) }

// NotifyInvalid publishes a validation-failure event for path.
func (h *Hub) NotifyInvalid(path string, errs []string) {
	h.Publish(Event{Type: "invalid", Path: path, Errors: errs})
}

// ServeWS upgrades r into a WebSocket connection and registers it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	h.register <- conn
	go h.readLoop(conn)
	return nil
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister <- conn
			return
		}
	}
}

// ConnectionCount returns the number of currently registered clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close shuts the hub down.
func (h *Hub) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}
