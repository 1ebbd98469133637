package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/config"
)

const defaultShutdownTimeout = 10 * time.Second

// Server serves the dashboard over HTTP and shuts down gracefully.
type Server struct {
	srv    *http.Server
	logger *slog.Logger

	mu        sync.Mutex
	listener  net.Listener
	listening chan struct{}
}

// NewServer builds a Server listening on cfg.Host:cfg.Port. A nil logger
// discards output.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger:    logger,
		listening: make(chan struct{}),
	}
}

// Start binds the listen address and serves until Shutdown. Request contexts
// derive from ctx. It returns nil after a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	close(s.listening)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "serving dashboard", slog.String("addr", ln.Addr().String()))

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Listening is closed once Start has bound its listener.
func (s *Server) Listening() <-chan struct{} {
	return s.listening
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends, or for 10 seconds when ctx has no deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.InfoContext(ctx, "shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}

// Addr returns the bound address once listening, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}
