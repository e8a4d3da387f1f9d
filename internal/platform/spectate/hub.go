// Package spectate streams simulation frames to WebSocket clients so an
// external renderer can follow a game without touching its terminal.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hauntmaze/internal/games/hauntmaze/sim"
)

// broadcastBuffer is how many frames may queue before new ones are dropped.
const broadcastBuffer = 64

// Frame is the JSON message sent to spectators once per tick.
type Frame struct {
	Snapshot sim.Snapshot `json:"snapshot"`
	Rows     []string     `json:"rows"`
	Events   []sim.Event  `json:"events"`
}

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	logger     *log.Logger
	upgrader   websocket.Upgrader
}

// NewHub initializes a new WebSocket hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Spectators are read-only
			},
		},
	}
}

// Run handles client registration and broadcasts until ctx is done.
// A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("spectate hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("spectator connected", "remote", client.conn.RemoteAddr().String())
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("spectator disconnected", "remote", client.conn.RemoteAddr().String())
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client; drop it rather than stall the others.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Observe serializes one frame and queues it for every client. It never
// blocks the game loop: frames are dropped while the queue is full.
func (h *Hub) Observe(snap sim.Snapshot, events []sim.Event) {
	if h.Clients() == 0 {
		return
	}
	if events == nil {
		events = []sim.Event{}
	}

	payload, err := json.Marshal(Frame{Snapshot: snap, Rows: snap.TileRows(), Events: events})
	if err != nil {
		h.logger.Error("cannot serialize frame", "error", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Debug("spectate queue full, frame dropped", "tick", snap.Tick)
	}
}

// ServeWS upgrades an HTTP request and attaches the connection as a spectator.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("cannot upgrade websocket connection", "error", err)
		return
	}

	client := newClient(h, conn)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Handler returns an HTTP handler serving the feed at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	return mux
}

// Serve runs the hub and an HTTP server on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("spectate feed listening", "address", addr, "path", "/ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectate: %w", err)
	}
	return nil
}
