package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/craftburger/internal/db"
	"github.com/ziadkadry99/craftburger/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Host     string
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// ImmutableAssets are doublestar patterns of request paths served with
	// a long-lived immutable Cache-Control header.
	ImmutableAssets []string
	WriteTimeout    time.Duration
}

// Server is the HTTP front of the site.
type Server struct {
	cfg        Config
	db         *db.DB
	logger     *logging.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with the shared middleware stack and health check.
// Feature packages add their routes through Router.
func New(cfg Config, database *db.DB, logger *logging.Logger) *Server {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		db:     database,
		logger: logger.With("component", "server"),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(immutableAssets(s.cfg.ImmutableAssets))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Tab-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := `{"status":"ok"}`
		if s.db != nil {
			if err := s.db.PingContext(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body = `{"status":"degraded"}`
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})

	return r
}

// immutableAssets marks responses whose path matches one of patterns as
// cacheable forever. Asset URLs carry a content hash, so a new build gets
// new URLs.
func immutableAssets(patterns []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(patterns) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range patterns {
				if ok, _ := doublestar.Match(p, r.URL.Path); ok {
					w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
					break
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Start begins listening on the configured address. It returns nil once
// Shutdown has stopped the server.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.WithFields(map[string]any{"addr": s.Addr()}).Info("craftburger listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
