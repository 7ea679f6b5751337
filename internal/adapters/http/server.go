// Package http is the server-rendered web UI: authentication screens
// and the items CRUD screen. Every handler follows the same cycle:
// bind the session bridge, call the backend, flush the accumulated
// Set-Cookie headers, render or redirect.
package http

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/curio/internal/logging"
	"github.com/aretw0/curio/pkg/observability"
	"github.com/aretw0/curio/pkg/ports"
	"github.com/aretw0/curio/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the handler dependencies.
type Server struct {
	bridge  *session.Bridge
	limiter ports.RateLimiter
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLimiter installs a login rate limiter.
func WithLimiter(l ports.RateLimiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

// WithMetrics installs Prometheus instrumentation and the /metrics
// endpoint.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the app.
func NewHandler(bridge *session.Bridge, opts ...Option) http.Handler {
	s := &Server{
		bridge:  bridge,
		limiter: ports.NopLimiter{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.observe)
		r.Method("GET", "/metrics", s.metrics.Handler())
	}

	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterPage)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)
	r.Post("/items", s.handleItemCreate)
	r.Post("/items/{id}", s.handleItemUpdate)
	r.Post("/items/{id}/delete", s.handleItemDelete)

	return r
}
