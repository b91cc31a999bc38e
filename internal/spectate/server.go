package spectate

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Server exposes a Hub over HTTP: /ws for the frame stream, /health for stats
type Server struct {
	hub      *Hub
	server   *http.Server
	listener net.Listener
}

func NewServer(addr string, hub *Hub) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/health", hub.HealthHandler)

	return &Server{
		hub: hub,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
	}
}

// Start binds the listen address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.server.Addr)
	}
	s.listener = ln
	log.Printf("spectate: serving on %s", ln.Addr())

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("spectate: server error: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound address, useful when listening on port 0
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.server.Addr
	}
	return s.listener.Addr().String()
}

// Stop disconnects spectators and shuts the HTTP server down
func (s *Server) Stop(ctx context.Context) error {
	s.hub.CloseAll()
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown spectator server")
	}
	return nil
}
