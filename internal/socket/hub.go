// server/internal/socket/hub.go
package socket

import (
	"sync"

	"ecofreight-api-server/internal/logging"

	"github.com/gorilla/websocket"
)

// client is one registered connection with the role it authenticated as.
// gorilla/websocket permits only one concurrent writer per connection, so
// every write goes through the per-client mutex.
type client struct {
	conn *websocket.Conn
	role string
	mu   sync.Mutex
}

func (c *client) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub tracks all WebSocket clients, keyed by user id.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a client to the Hub. A reconnect replaces the old entry.
func (h *Hub) Register(userID, role string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = &client{conn: conn, role: role}
	logging.Get().WithField("userID", userID).Debug("WebSocket client registered")
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		logging.Get().WithField("userID", userID).Debug("WebSocket client unregistered")
	}
}

// Send delivers a message to one client. A missing client (likely offline)
// is not treated as an error.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	c, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		logging.Get().WithField("userID", userID).Debug("WebSocket client not found, message dropped")
		return nil
	}

	return c.write(message)
}

// Broadcast sends a message to every client with one of the given roles.
// Write failures are logged and skipped so one dead connection cannot block
// the rest.
func (h *Hub) Broadcast(message []byte, roles ...string) {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	h.mu.RLock()
	targets := make(map[string]*client, len(h.clients))
	for userID, c := range h.clients {
		if len(roles) > 0 && !allowed[c.role] {
			continue
		}
		targets[userID] = c
	}
	h.mu.RUnlock()

	for userID, c := range targets {
		if err := c.write(message); err != nil {
			logging.Get().WithField("userID", userID).WithError(err).Warn("WebSocket write failed")
		}
	}
}
