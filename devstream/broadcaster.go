// Package devstream implements an optional, off-by-default WebSocket
// broadcaster that fans out simulation event-bus activity to an external
// dev-tools/UI process — the engine's one deliberate concession to the
// "host platform glue" non-goal, wired here purely because
// github.com/gorilla/websocket is already a confirmed dependency of the
// example pack with nowhere else in SPEC_FULL.md to live.
//
// Grounded on the teacher's event/wsc.Client, which owns one
// *websocket.Conn and pumps JSON messages over it with a read goroutine
// and WriteMessage calls guarded against concurrent writers; Broadcaster
// inverts the direction (engine -> many dev-tool observers instead of one
// upstream service -> engine) but keeps the same "one write mutex per
// connection, JSON text frames, a read loop solely to detect the peer
// going away" shape.
package devstream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Envelope is the wire shape every broadcast message takes: a string kind
// tag (matching the emitting Go event type's name by convention) plus its
// JSON-encoded payload.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Broadcaster fans out Envelope messages to every currently connected
// dev-tool client. It is safe for concurrent use; Broadcast may be called
// from an event-bus subscriber during the simulation's single-threaded
// event drain.
type Broadcaster struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex // per-connection write lock
}

// New creates a Broadcaster with no connected clients. It does nothing
// until HandleWS is wired into an http.ServeMux by the embedding host;
// the engine never starts its own HTTP listener.
func New(log *slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.Default()
	}
	return &Broadcaster{
		log:     log,
		clients: make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // dev-tooling only, never exposed in production
		},
	}
}

// HandleWS upgrades r to a WebSocket connection and registers it as a
// broadcast recipient until it disconnects. Intended to be mounted as an
// http.HandlerFunc, e.g. mux.HandleFunc("/devstream", broadcaster.HandleWS).
func (b *Broadcaster) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("devstream: upgrade failed", "subsystem", "devstream", "error", err)
		return
	}

	writeLock := &sync.Mutex{}
	b.mu.Lock()
	b.clients[conn] = writeLock
	b.mu.Unlock()
	b.log.Info("devstream: client connected", "subsystem", "devstream", "remote", r.RemoteAddr)

	// The read loop exists solely to detect the peer closing the
	// connection; this endpoint is output-only from the engine's side.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.mu.Lock()
	delete(b.clients, conn)
	b.mu.Unlock()
	conn.Close()
	b.log.Info("devstream: client disconnected", "subsystem", "devstream", "remote", r.RemoteAddr)
}

// Broadcast JSON-encodes payload under kind and writes it to every
// currently connected client, dropping (and unregistering) any connection
// whose write fails.
func (b *Broadcaster) Broadcast(kind string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		b.log.Error("devstream: marshal failed", "subsystem", "devstream", "kind", kind, "error", err)
		return
	}
	frame, err := json.Marshal(Envelope{Kind: kind, Payload: body})
	if err != nil {
		b.log.Error("devstream: envelope marshal failed", "subsystem", "devstream", "kind", kind, "error", err)
		return
	}

	b.mu.Lock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(b.clients))
	for conn, lock := range b.clients {
		targets[conn] = lock
	}
	b.mu.Unlock()

	for conn, lock := range targets {
		lock.Lock()
		err := conn.WriteMessage(websocket.TextMessage, frame)
		lock.Unlock()
		if err != nil {
			b.log.Warn("devstream: write failed, dropping client", "subsystem", "devstream", "error", err)
			b.mu.Lock()
			delete(b.clients, conn)
			b.mu.Unlock()
			conn.Close()
		}
	}
}

// ClientCount returns the number of currently connected dev-tool clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
