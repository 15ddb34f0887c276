// Package telemetry broadcasts live training progress to connected
// monitor clients over a websocket, modeled on the teacher's ws.Hub but
// one-directional: episode summaries flow out, nothing flows in.
package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// backlog bounds how many un-delivered summaries the hub will queue
// in the broadcast channel (and in each client's send channel); once
// a channel is full, newer summaries are dropped rather than queued,
// so a stalled client can never back-pressure training.
const backlog = 64

// Summary is the wire shape broadcast to monitor clients. It mirrors
// sarsa.EpisodeSummary field-for-field plus a sequence number, kept
// separate so telemetry's JSON encoding doesn't leak into sarsa.
type Summary struct {
	Sequence int     `json:"sequence"`
	Winner   int     `json:"winner"`
	Score0   int     `json:"score0"`
	Score1   int     `json:"score1"`
	Steps    int     `json:"steps"`
	Epsilon  float64 `json:"epsilon"`
}

// Hub fans out broadcast frames to every registered client. There is
// no inbound path: clients are pure observers of training progress.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	log        *slog.Logger
}

// NewHub constructs a hub ready to Run.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, backlog),
		log:        log,
	}
}

// Run drives registration and broadcast until ctx is canceled, at
// which point every client's send channel is closed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case data := <-h.broadcast:
			for c := range h.clients {
				safeSend(c.send, data)
			}
		}
	}
}

// Publish marshals s and enqueues it for broadcast. It never blocks:
// if the hub's internal broadcast buffer is full, the frame is dropped
// rather than stalling the training loop that calls it.
func (h *Hub) Publish(s Summary) {
	data, err := json.Marshal(s)
	if err != nil {
		h.log.Error("telemetry: marshal summary failed", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("telemetry: broadcast buffer full, dropping summary", "sequence", s.Sequence)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP connection to a websocket and registers a
// new monitor client on the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("telemetry: upgrade failed", "error", err)
		return
	}

	client := newClient(conn, h.log)
	h.register <- client
	go client.writePump(h.unregister)
}
