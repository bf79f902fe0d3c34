// Package api serves program comparisons over HTTP.
//
// Endpoints:
//   - GET  /healthz                  - Liveness and configured features
//   - GET  /api/programs             - List programs (?limit=N)
//   - GET  /api/programs/{id}        - One program with its university
//   - POST /api/compare/ai-explain   - AI comparison summary of two programs
//   - POST /api/compare/export       - Comparison document (?format=json for the recording)
//
// Errors are JSON objects of the form {"success": false, "code": ..., "message": ...}.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/backtoschool/progcompare/pkg/buildinfo"
	"github.com/backtoschool/progcompare/pkg/pipeline"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultMaxBodyBytes bounds request bodies (1MB).
	DefaultMaxBodyBytes = 1 << 20

	// DefaultReadTimeout and DefaultWriteTimeout apply when Run is given zero.
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// ============================================================================
// SERVER
// ============================================================================

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
	maxBody int64
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMaxBodyBytes bounds request bodies.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBody = n } }

// WithClock sets the time source for generated documents.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New creates a server around runner. The runner's store answers program
// lookups and its explainer answers summary requests; either may be nil.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		maxBody: DefaultMaxBodyBytes,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/programs", s.handleListPrograms)
		r.Get("/programs/{id}", s.handleGetProgram)

		r.Route("/compare", func(r chi.Router) {
			r.Post("/ai-explain", s.handleExplain)
			r.Post("/export", s.handleExport)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
	})
	return r
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// RunConfig holds listener settings.
type RunConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg RunConfig) error {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", cfg.Addr, "version", buildinfo.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
