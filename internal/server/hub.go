package server

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"take5/internal/model"
)

const writeWait = time.Second

// Hub fans game events out to every connected spectator and keeps the last
// board snapshot for late joiners. It implements game.Broadcaster.
type Hub struct {
	conns    map[*websocket.Conn]bool
	lock     sync.Mutex
	last     *model.GameSnapshot
	logger   *slog.Logger
	writeMux sync.Mutex
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

// Publish sends msg to every spectator. A watcher that cannot keep up is dropped.
func (h *Hub) Publish(msg model.Message) {
	if msg.Type == model.EventState {
		if snap, ok := msg.Payload.(model.GameSnapshot); ok {
			h.lock.Lock()
			h.last = &snap
			h.lock.Unlock()
		}
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal event", slog.String("type", msg.Type), slog.String("error", err.Error()))
		return
	}

	h.lock.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.lock.Unlock()

	h.writeMux.Lock()
	defer h.writeMux.Unlock()
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msgBytes); err != nil {
			h.logger.Warn("dropping spectator", slog.String("remote", conn.RemoteAddr().String()), slog.String("error", err.Error()))
			h.Remove(conn)
			conn.Close()
		}
	}
}

// Add registers a spectator and sends it the latest snapshot. A spectator
// that cannot receive the snapshot is not kept.
func (h *Hub) Add(conn *websocket.Conn) {
	h.lock.Lock()
	h.conns[conn] = true
	last := h.last
	h.lock.Unlock()

	if last == nil {
		return
	}
	h.writeMux.Lock()
	defer h.writeMux.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(model.Message{Type: model.EventState, Payload: last}); err != nil {
		h.logger.Warn("failed to send snapshot", slog.String("remote", conn.RemoteAddr().String()), slog.String("error", err.Error()))
		h.Remove(conn)
	}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.lock.Lock()
	delete(h.conns, conn)
	h.lock.Unlock()
}

func (h *Hub) Watchers() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.conns)
}

// Snapshot returns the last published board state, if any.
func (h *Hub) Snapshot() (model.GameSnapshot, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.last == nil {
		return model.GameSnapshot{}, false
	}
	return *h.last, true
}
