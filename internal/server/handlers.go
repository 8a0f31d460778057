package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"take5/internal/model"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// StatsSource is the read side of the results ledger.
type StatsSource interface {
	Stats(ctx context.Context) ([]model.PlayerStat, error)
}

type Handler struct {
	Hub    *Hub
	Stats  StatsSource
	logger *slog.Logger
}

func NewHandler(hub *Hub, stats StatsSource, logger *slog.Logger) *Handler {
	return &Handler{Hub: hub, Stats: stats, logger: logger}
}

// HandleWatchWS streams game events to a spectator. Anything the client sends is ignored.
func (h *Handler) HandleWatchWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.Hub.Add(ws)
	h.logger.Info("spectator joined", slog.String("remote", r.RemoteAddr))

	defer func() {
		h.Hub.Remove(ws)
		ws.Close()
		h.logger.Info("spectator left", slog.String("remote", r.RemoteAddr))
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) StateHandler(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Hub.Snapshot()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no game in progress"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats := make([]model.PlayerStat, 0)
	if h.Stats != nil {
		var err error
		stats, err = h.Stats.Stats(r.Context())
		if err != nil {
			h.logger.Error("failed to load stats", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
