// Package server exposes the accessible palettes over HTTP so a browser-side
// editor can fetch filtered pickers and report selection changes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/editor"
	"github.com/jmylchreest/legible/internal/options"
	"github.com/jmylchreest/legible/internal/palette"
)

const shutdownTimeout = 5 * time.Second

// Config holds server settings.
type Config struct {
	Addr  string
	Level accessibility.Level
}

// Server is the HTTP bridge.
type Server struct {
	config   Config
	store    *palette.Store
	registry *options.Registry
	handler  *editor.Handler
	router   chi.Router
	logger   hclog.Logger
}

// New creates a server reading originals from store and publishing filtered
// palettes into registry.
func New(cfg Config, store *palette.Store, registry *options.Registry, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.Level == "" {
		cfg.Level = accessibility.LevelAA
	}

	s := &Server{
		config:   cfg,
		store:    store,
		registry: registry,
		logger:   logger.Named("server"),
	}
	s.handler = editor.NewHandler(registry, store, cfg.Level, s.dispatch, s.logger)
	s.router = s.setupRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/palettes/text", s.handleTextPalette)
		r.Get("/palettes/background", s.handleBackgroundPalette)
		r.Post("/selection", s.handleSelection)
		r.Post("/reset", s.handleReset)
		r.Get("/options", s.handleListOptions)
		r.Get("/options/{key}", s.handleGetOption)
		r.Get("/contrast", s.handleContrast)
		r.Get("/settings/colours", s.handleGetColours)
		r.Post("/settings/colours/validate", s.handleValidateColours)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown failed", "error", err)
		}
	}()

	s.logger.Info("listening", "addr", ln.Addr().String(), "level", s.config.Level)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// dispatch records picker refresh events.
func (s *Server) dispatch(e editor.Event) {
	editorEventsTotal.WithLabelValues(string(e.Name)).Inc()
	s.logger.Trace("picker refresh", "format", e.Name, "colour", e.Colour)
}

// instrument records request metrics and logs each request at debug.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		requestDurationSeconds.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Debug("request",
			"method", r.Method, "route", route, "status", status,
			"duration", elapsed, "request_id", middleware.GetReqID(r.Context()))
	})
}

// corsMiddleware allows the editor page to call the bridge from another origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
