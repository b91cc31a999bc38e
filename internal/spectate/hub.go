package spectate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"

	"github.com/diegok/hoopsim/internal/protocol"
)

// DefaultMaxSpectators caps concurrent spectator connections
const DefaultMaxSpectators = 16

// Spectators never send anything meaningful
const readLimit = 512

// HubStats holds live spectator metrics.
type HubStats struct {
	Spectators       int    `json:"spectators"`
	TotalConnections uint64 `json:"totalConnections"`
	FramesSent       uint64 `json:"framesSent"`
	FramesDropped    uint64 `json:"framesDropped"`
}

// Hub fans frames out to every connected spectator
type Hub struct {
	mu       sync.Mutex
	conns    map[*Conn]struct{}
	maxConns int
	nextID   atomic.Uint64

	totalConnections atomic.Uint64
	framesSent       atomic.Uint64
	framesDropped    atomic.Uint64

	originPatterns []string
}

func NewHub(maxConns int, originPatterns []string) *Hub {
	if maxConns <= 0 {
		maxConns = DefaultMaxSpectators
	}
	return &Hub{
		conns:          make(map[*Conn]struct{}),
		maxConns:       maxConns,
		originPatterns: originPatterns,
	}
}

// Count returns the number of connected spectators
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Stats returns a snapshot of current hub metrics.
func (h *Hub) Stats() HubStats {
	return HubStats{
		Spectators:       h.Count(),
		TotalConnections: h.totalConnections.Load(),
		FramesSent:       h.framesSent.Load(),
		FramesDropped:    h.framesDropped.Load(),
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	if h.Count() >= h.maxConns {
		http.Error(w, "too many spectators", http.StatusServiceUnavailable)
		return
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		acceptOpts.OriginPatterns = h.originPatterns
	}

	ws, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		log.Printf("spectate: accept error: %v", err)
		return
	}
	ws.SetReadLimit(readLimit)

	h.totalConnections.Add(1)
	conn := NewConn(ws, fmt.Sprintf("spectator-%d", h.nextID.Add(1)))
	h.add(conn)
	log.Printf("spectate: %s connected from %s (now %d)", conn.ID, r.RemoteAddr, h.Count())

	// Connection outlives the request context
	ctx := context.Background()
	go conn.WriteLoop(ctx)
	go conn.DiscardLoop(ctx)

	<-conn.Done()
	h.remove(conn)
	log.Printf("spectate: %s disconnected", conn.ID)
}

// Broadcast queues a frame for every spectator. Slow spectators miss frames
// rather than stalling the caller.
func (h *Hub) Broadcast(f protocol.Frame) {
	h.mu.Lock()
	if len(h.conns) == 0 {
		h.mu.Unlock()
		return
	}
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	data, err := protocol.Marshal(f)
	if err != nil {
		log.Printf("spectate: encode error: %v", err)
		return
	}
	for _, c := range conns {
		if c.Send(data) {
			h.framesSent.Add(1)
		} else {
			h.framesDropped.Add(1)
		}
	}
}

// HealthHandler serves Stats as JSON
func (h *Hub) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Stats())
}

// CloseAll disconnects every spectator
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

func (h *Hub) add(c *Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}
