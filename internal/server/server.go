// Package server exposes a resolver over HTTP: the generated stylesheet, the
// bootstrap script and a JSON API for reading and changing the theme.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/resolver"
)

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string
	// ShutdownTimeout bounds how long Shutdown waits for open requests.
	ShutdownTimeout time.Duration
	// Version is reported in the OpenAPI document.
	Version string
}

// DefaultConfig returns a Config with the same defaults as the config package.
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:7420",
		ShutdownTimeout: 10 * time.Second,
		Version:         "dev",
	}
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// Server represents the HTTP server.
type Server struct {
	config     Config
	router     *chi.Mux
	api        huma.API
	httpServer *http.Server
	resolver   *resolver.Resolver
	log        *logger.Logger
}

// New builds the router and registers every route. The resolver must already
// be initialized.
func New(config Config, r *resolver.Resolver, opts ...Option) *Server {
	if config.Version == "" {
		config.Version = "dev"
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	s := &Server{
		config:   config,
		resolver: r,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "server")

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(requestID)
	router.Use(requestLogger(s.log))
	router.Use(chimiddleware.Recoverer)
	router.Use(clientHints)

	humaConfig := huma.DefaultConfig("sablier API", config.Version)
	humaConfig.Info.Description = "Theme resolution and persistence"
	api := humachi.New(router, humaConfig)

	handler := newThemeHandler(r)
	handler.Register(api)
	handler.RegisterChiRoutes(router)

	s.router = router
	s.api = api
	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the Huma API instance for registering more operations.
func (s *Server) API() huma.API {
	return s.api
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.log.With("address", ln.Addr().String()).Info("starting HTTP server")

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.With("timeout", s.config.ShutdownTimeout.String()).Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// ListenAndServe starts the server and blocks until ctx is cancelled or the
// server fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}
