package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"restecho/internal/config"
	"restecho/internal/logging"

	"github.com/klauspost/compress/gzhttp"
)

// Server is the HTTP server role. It owns its listener and exposes an
// explicit start/stop lifecycle plus a readiness signal, so callers
// never have to sleep-and-hope before issuing requests.
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	cfg      config.ServerConfig
	logger   *logging.Logger
	listener net.Listener
	ready    chan struct{}
}

// NewServer creates a new HTTP server instance
func NewServer(cfg config.ServerConfig, logger *logging.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: http.NewServeMux(),
		ready:  make(chan struct{}),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}

	return s
}

// Start binds the listener, signals readiness, and serves until
// Shutdown is called. Binding happens synchronously so that Ready
// closing guarantees the port is accepting connections.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.cfg.Addr(), err)
	}
	s.listener = ln
	close(s.ready)

	s.logger.Info("HTTP server listening", logging.Fields{
		"addr": ln.Addr().String(),
	})

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Ready returns a channel that is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the actual bound address. Valid once Ready is closed;
// before that it reports the configured address. Binding port 0 is
// how tests get an ephemeral port.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order.
// Applied in reverse: CORS ends up outermost so its headers reach every
// response, including auth failures and recovered panics.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	handler = s.authMiddleware(handler)
	handler = gzhttp.GzipHandler(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
