// Package realtime pushes table change events to open dashboard lists over
// WebSocket. Each table has its own revision counter.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Event tells subscribers that a table changed. Revision grows by one for
// every change of the same table.
type Event struct {
	Table    string `json:"table"`
	Action   string `json:"action"`
	ID       string `json:"id"`
	Revision uint64 `json:"revision"`
}

type client struct {
	conn *ws.Conn
	mu   sync.Mutex
}

type Hub struct {
	// send orders revision bumps, broadcasts and new-client snapshots so every
	// client sees one table's revisions in sequence and none in between.
	send      sync.Mutex
	mu        sync.RWMutex
	clients   map[*client]struct{}
	revisions map[string]uint64
	lg        *zap.SugaredLogger
}

func NewHub(lg *zap.SugaredLogger) *Hub {
	return &Hub{clients: map[*client]struct{}{}, revisions: map[string]uint64{}, lg: lg}
}

// Changed bumps the table revision and broadcasts the change.
func (h *Hub) Changed(table, action, id string) {
	h.send.Lock()
	defer h.send.Unlock()
	h.mu.Lock()
	h.revisions[table]++
	evt := Event{Table: table, Action: action, ID: id, Revision: h.revisions[table]}
	h.mu.Unlock()
	h.broadcast(evt)
}

// Revisions returns a copy of every table revision seen so far.
func (h *Hub) Revisions() map[string]uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]uint64, len(h.revisions))
	for k, v := range h.revisions {
		out[k] = v
	}
	return out
}

func (h *Hub) register(c *client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	return len(h.clients)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

func (h *Hub) Broadcast(evt Event) {
	h.send.Lock()
	defer h.send.Unlock()
	h.broadcast(evt)
}

func (h *Hub) broadcast(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.lg.Warnw("ws marshal failed", "error", err)
		return
	}
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.conn.WriteMessage(ws.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			h.unregister(c)
		}
	}
}

var upgrader = ws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request, sends the current revisions as a snapshot
// and keeps the connection alive until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.lg.Warnw("ws upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	// Registering and writing the snapshot under send means the first event
	// this client reads is the one right after its snapshot.
	h.send.Lock()
	n := h.register(c)
	c.mu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = conn.WriteJSON(map[string]any{"revisions": h.Revisions()})
	c.mu.Unlock()
	h.send.Unlock()
	if err != nil {
		h.unregister(c)
		return
	}
	h.lg.Debugw("ws client connected", "clients", n)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				c.mu.Lock()
				err := conn.WriteControl(ws.PingMessage, nil, time.Now().Add(writeWait))
				c.mu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
	h.lg.Debugw("ws client disconnected")
}
