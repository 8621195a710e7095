package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"ecommerce-analytics/internal/observability"
)

// Broadcaster pushes metric updates to connected websocket dashboard
// clients. Clients that fail a write are dropped.
type Broadcaster struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewBroadcaster creates a websocket broadcaster.
func NewBroadcaster(logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard is same-origin only in practice; the API is read-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP handler that upgrades connections.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Printf("websocket upgrade failed: %v", err)
			return
		}

		b.add(conn)

		// Reader loop only detects client disconnect; the API is push-only.
		go func() {
			defer b.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// Broadcast sends v as JSON to every connected client.
func (b *Broadcaster) Broadcast(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for conn := range b.clients {
		if err := conn.WriteJSON(v); err != nil {
			conn.Close()
			delete(b.clients, conn)
		}
	}
	observability.SetWSClients(len(b.clients))
}

// Close disconnects all clients.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for conn := range b.clients {
		conn.Close()
		delete(b.clients, conn)
	}
	observability.SetWSClients(0)
}

func (b *Broadcaster) add(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[conn] = struct{}{}
	observability.SetWSClients(len(b.clients))
}

func (b *Broadcaster) remove(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	conn.Close()
	delete(b.clients, conn)
	observability.SetWSClients(len(b.clients))
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
