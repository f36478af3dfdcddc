package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// EventsPath is where websocket subscribers connect.
const EventsPath = "/events"

// Server hosts the callback receiver, the event stream and, optionally, a
// metrics handler on one listener.
type Server struct {
	log *slog.Logger
	srv *http.Server
	hub *Hub
}

// NewServer wires handler under callbackPath and hub under EventsPath.
// metrics may be nil.
func NewServer(log *slog.Logger, listen, callbackPath string, handler *Handler, hub *Hub, metrics http.Handler) *Server {
	mux := http.NewServeMux()
	mux.Handle("POST "+callbackPath, handler)
	mux.Handle("GET "+EventsPath, hub)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Server{
		log: log,
		hub: hub,
		srv: &http.Server{
			Addr:              listen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the server's routing handler.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("callback server listening", "addr", ln.Addr().String())
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown callback server: %w", err)
	}
	return nil
}
