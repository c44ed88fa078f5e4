// Package hub pushes live feed events to WebSocket clients.
package hub

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
)

// Event types sent to clients.
const (
	EventNewPost      = "new_post"
	EventDelete       = "delete"
	EventLike         = "like"
	EventComment      = "comment"
	EventNotification = "notification"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

// A Message is the JSON frame sent to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// Hub fans messages out to every connected client. Clients that cannot keep
// up are disconnected.
type Hub struct {
	Logger *slog.Logger

	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*client]struct{}
}

// New returns a Hub accepting connections from any origin.
func New(logger *slog.Logger) *Hub {
	return &Hub{
		Logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client without blocking.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.Logger.Warn("Dropping slow client", "remote_addr", c.conn.RemoteAddr().String())
			h.remove(c)
		}
	}
}

// Notify broadcasts a notification.
func (h *Hub) Notify(_ context.Context, n notify.Notification) {
	h.Broadcast(Message{Type: EventNotification, Data: n})
}

// remove must be called with h.mu held.
func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeHTTP upgrades the request to a WebSocket and streams messages to it
// until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error("Could not upgrade connection", "error", err.Error())
		return
	}

	c := &client{conn: conn, send: make(chan Message, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.Logger.Info("Client connected", "remote_addr", conn.RemoteAddr().String())

	go h.write(c)

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.remove(c)
	h.mu.Unlock()
	h.Logger.Info("Client disconnected", "remote_addr", conn.RemoteAddr().String())
}

func (h *Hub) write(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			h.Logger.Error("Could not write message", "error", err.Error())
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
