package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Server hosts the validation HTTP API with rate limiting, request IDs,
// health endpoints and graceful shutdown.
type Server struct {
	name    string
	version string
	cfg     *Config

	handlers map[string]http.HandlerFunc
	limiter  *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName returns an Option that sets the server's service name.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion returns an Option that sets the server's version string.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithConfig returns an Option that replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithHandler returns an Option that registers API handlers by route.
// Registered routes are wrapped with the server middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		s.handlers = handlers
	}
}

// New creates a new Server with the provided options.
func New(opts ...Option) *Server {
	s := &Server{
		cfg:      DefaultConfig(),
		handlers: make(map[string]http.HandlerFunc),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.limiter = rate.NewLimiter(s.cfg.RateLimit, s.cfg.RateLimitBurst)
	return s
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails. Shutdown is graceful within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.mu.Lock()
	s.ready = false
	s.mu.Unlock()

	slog.Info("shutting down server", "timeout", s.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// withMiddleware wraps an API handler with request ID, metrics, logging and
// rate limiting.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		r = r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, requestID))
		w.Header().Set("X-Request-Id", requestID)

		if !s.limiter.Allow() {
			httpRequestsTotal.WithLabelValues(r.URL.Path, "429").Inc()
			WriteError(w, r, http.StatusTooManyRequests,
				ErrCodeRateLimitExceeded, "rate limit exceeded", true, nil)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		httpRequestsTotal.WithLabelValues(r.URL.Path, fmt.Sprintf("%d", rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())

		slog.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", requestID,
			"duration", time.Since(start))
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
