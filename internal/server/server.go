// Package server wires the reference record collection server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/extstorage/internal/server/handlers"
	"github.com/iudanet/extstorage/internal/server/middleware"
	"github.com/iudanet/extstorage/internal/server/storage"
)

const (
	// HealthPath is served without authentication
	HealthPath = "/api/v1/health"
	// RecordsPath is the record collection endpoint
	RecordsPath = "/api/v1/storage/records"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Storage is the record store the router serves
type Storage interface {
	storage.RecordStorage
	handlers.Pinger
}

// RouterConfig holds the router dependencies
type RouterConfig struct {
	Logger  *slog.Logger
	Storage Storage
	Tokens  middleware.TokenValidator
	Limiter *middleware.RateLimiter
	Version string
}

// NewRouter builds the HTTP handler with the full middleware chain:
// recovery -> logging -> (records only) auth -> rate limit -> handler
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	health := handlers.NewHealthHandler(logger, cfg.Version, cfg.Storage)
	records := handlers.NewRecordsHandler(logger, cfg.Storage)

	var recordsHandler http.Handler = http.HandlerFunc(records.HandleRecords)
	if cfg.Limiter != nil {
		recordsHandler = middleware.RateLimitMiddleware(cfg.Limiter, logger)(recordsHandler)
	}
	recordsHandler = middleware.AuthMiddleware(logger, cfg.Tokens)(recordsHandler)

	mux := http.NewServeMux()
	mux.HandleFunc(HealthPath, health.Health)
	mux.Handle(RecordsPath, recordsHandler)

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{HealthPath})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	return handler
}

// Server is the HTTP server of the record collection
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a server listening on addr
func New(addr string, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		logger: logger,
	}
}

// ListenAndServe runs the HTTP server until the context ends.
// On cancellation in-flight requests are drained before the server closes.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context ends
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	s.logger.Info("server listening", "addr", ln.Addr().String())
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve http: %w", err)
	}
}
