package server

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/hostguard/middlewares"
	"github.com/dmitrymomot/hostguard/pkg/cookie"
	"github.com/dmitrymomot/hostguard/pkg/health"
	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/hostrouter"
	"github.com/dmitrymomot/hostguard/pkg/metrics"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 10 * time.Second
	defaultRequestTimeout    = 30 * time.Second
)

// Server serves the diagnostics endpoints and the admin dashboard.
type Server struct {
	resolver        *hostresolver.Resolver
	metrics         *metrics.Recorder
	cookies         *cookie.Manager
	logger          *slog.Logger
	adminHost       string
	shutdownTimeout time.Duration
	draining        atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records every resolution and exposes the recorder on the
// metrics listener.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Server) {
		s.metrics = rec
	}
}

// WithAdminHost serves the admin dashboard only on the given host.
// Matching uses the resolved host, so a spoofed Host header from an
// untrusted peer cannot reach it.
func WithAdminHost(host string) Option {
	return func(s *Server) {
		s.adminHost = host
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// New creates a Server around a configured resolver.
func New(resolver *hostresolver.Resolver, opts ...Option) *Server {
	s := &Server{
		resolver:        resolver,
		logger:          slog.New(slog.DiscardHandler),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cookies = cookie.New(cookie.WithResolver(resolver))
	return s
}

// Handler returns the main HTTP handler.
func (s *Server) Handler() http.Handler {
	originOpts := []middlewares.OriginOption{middlewares.WithOriginLogger(s.logger)}
	if s.metrics != nil {
		originOpts = append(originOpts, middlewares.WithOriginRecorder(s.metrics))
	}

	r := chi.NewRouter()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Origin(s.resolver, originOpts...))
	r.Use(middlewares.Recover(s.logger))
	r.Use(middleware.Timeout(defaultRequestTimeout))

	r.Get("/healthz", health.Live())
	r.Get("/readyz", health.Ready(health.Checks{
		"shutdown": s.readiness,
	}, health.WithLogger(s.logger)))

	app := chi.NewRouter()
	app.With(middleware.NoCache).Get("/whoami", s.whoami)
	app.With(middlewares.RequireRequestURL()).Get("/go", s.redirect)

	if s.adminHost == "" {
		app.Mount("/admin", s.adminRoutes())
		r.Mount("/", app)
		return r
	}

	admin := chi.NewRouter()
	admin.With(middleware.NoCache).Get("/whoami", s.whoami)
	admin.Mount("/admin", s.adminRoutes())

	r.Mount("/", hostrouter.New(hostrouter.Routes{s.adminHost: admin}, app))
	return r
}

// MetricsHandler returns the handler served on the metrics listener.
func (s *Server) MetricsHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares.Recover(s.logger))
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) adminRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.dashboard)
	r.Get("/dismiss", s.dismissBanner)
	return r
}
