// Package api serves the drawing pipeline over HTTP.
//
// # Endpoints
//
//	GET  /health                          liveness probe
//	POST /api/v1/draw                     render a drawing, returns its id
//	GET  /api/v1/drawings/{id}/{format}   download a rendered artifact
//	POST /api/v1/layout                   coordinates, bounding box and edges
//	POST /api/v1/colors                   one resolved colour per residue
//	GET  /api/v1/palettes                 available schemes and palettes
//
// Request bodies are JSON-encoded [pipeline.Options]. Errors are returned
// as {"error": message, "code": code}; input errors map to 400, unknown
// drawings to 404.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rnadraw/pkg/cache"
	"github.com/matzehuels/rnadraw/pkg/config"
	"github.com/matzehuels/rnadraw/pkg/pipeline"
)

// Server is the HTTP API server for rnadraw.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	keyer  cache.Keyer
	log    *log.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. Drawings are stored in
// the runner's cache, scoped under "rnadraw:api:".
func NewServer(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		keyer:  cache.NewScopedKeyer(runner.Keyer, "rnadraw:api:"),
		log:    logger,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(s.cfg.Server.MaxBodyBytes))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/draw", s.handleDraw)
		r.Get("/drawings/{id}/{format}", s.handleDrawing)
		r.Post("/layout", s.handleLayout)
		r.Post("/colors", s.handleColors)
		r.Get("/palettes", s.handlePalettes)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       s.cfg.Server.ReadTimeout.Duration,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.Server.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
