// Package server implements the HTTP preview server.
//
// The server renders a single page that previews an artwork, lets the user
// pick a palette, regenerate, and download what is on screen. Generated
// artworks live in a [session.Store] for their TTL so downloads return the
// previewed artwork, not a new one.
//
// Routes:
//
//	GET  /                          preview page
//	GET  /healthz                   build info
//	GET  /metrics                   Prometheus metrics
//	GET  /api/palettes              palette list
//	POST /api/artworks              generate (?palette=&count=&seed=)
//	GET  /api/artworks/{id}         SVG document
//	GET  /api/artworks/{id}.{ext}   download (?w=&h= for raster sizes)
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/ellipsegen/pkg/pipeline"
	"github.com/matzehuels/ellipsegen/pkg/session"
)

// Config configures a Server. Only Runner is required.
type Config struct {
	Runner   *pipeline.Runner
	Sessions session.Store
	Logger   *log.Logger

	// Metrics serves /metrics. Nil uses the default Prometheus registry.
	Metrics http.Handler

	// SessionTTL bounds how long a generated artwork stays downloadable.
	SessionTTL time.Duration

	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	ShutdownTimeout time.Duration

	// MaxConcurrentRenders bounds how many raster downloads render at once.
	// Further requests wait for a slot until their context ends.
	MaxConcurrentRenders int
}

// DefaultMaxConcurrentRenders is used when Config.MaxConcurrentRenders is
// not positive.
const DefaultMaxConcurrentRenders = 2

// Server serves the preview page and the artwork API.
type Server struct {
	runner   *pipeline.Runner
	sessions session.Store
	logger   *log.Logger
	metrics  http.Handler
	ttl      time.Duration
	shutdown time.Duration
	slots    chan struct{}
	now      func() time.Time
}

// New creates a server from cfg, filling defaults.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		ttl:      cfg.SessionTTL,
		shutdown: cfg.ShutdownTimeout,
		now:      time.Now,
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, nil, nil, nil)
	}
	if s.sessions == nil {
		s.sessions = session.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.metrics == nil {
		s.metrics = promhttp.Handler()
	}
	if s.ttl <= 0 {
		s.ttl = session.DefaultTTL
	}
	if s.shutdown <= 0 {
		s.shutdown = 10 * time.Second
	}
	n := cfg.MaxConcurrentRenders
	if n <= 0 {
		n = DefaultMaxConcurrentRenders
	}
	s.slots = make(chan struct{}, n)
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/palettes", s.handlePalettes)
		r.Post("/artworks", s.handleCreateArtwork)
		r.Get("/artworks/{file}", s.handleGetArtwork)
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
