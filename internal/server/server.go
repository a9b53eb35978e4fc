// Package server implements the harkje HTTP API.
//
// The API exposes the layout pipeline over HTTP so charts can be laid
// out and rendered without the CLI, plus optional snapshot persistence
// when a store is configured:
//
//	POST   /api/layout        compute a layout for a posted chart
//	POST   /api/render        render a posted chart to svg/png/pdf/json
//	GET    /api/charts        list stored snapshots
//	PUT    /api/charts/{id}   store a chart snapshot
//	GET    /api/charts/{id}   fetch a stored snapshot
//	DELETE /api/charts/{id}   delete a stored snapshot
//	GET    /healthz           liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/pondevelopment/harkje/pkg/pipeline"
	"github.com/pondevelopment/harkje/pkg/store"
)

// Store is the snapshot persistence interface the server depends on.
// *store.MongoStore satisfies it; tests supply an in-memory fake.
type Store interface {
	Save(ctx context.Context, snap store.Snapshot) error
	Get(ctx context.Context, id string) (store.Snapshot, error)
	List(ctx context.Context) ([]store.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// Server is the harkje HTTP API server.
type Server struct {
	runner *pipeline.Runner
	store  Store // nil disables the /api/charts endpoints
	logger *log.Logger

	httpServer *http.Server
}

// Option configures the server.
type Option func(*Server)

// WithStore enables snapshot persistence.
func WithStore(s Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// New creates a server around a pipeline runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	srv := &Server{
		runner: runner,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Put("/{id}", s.handleSaveChart)
			r.Get("/{id}", s.handleGetChart)
			r.Delete("/{id}", s.handleDeleteChart)
		})
	})
	return r
}

// ListenAndServe starts the server and blocks until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
