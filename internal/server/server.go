// Package server exposes a loaded layout over a read-only HTTP API.
//
// Routes:
//
//	GET /healthz                       liveness and object count
//	GET /objects                       object summaries
//	GET /objects/{name}                one object as JSON (?format=agp for AGP)
//	GET /objects/{name}/fasta          assembled sequence (needs a provider)
//	GET /map?component=&start=&end=    component coordinates to object coordinates
//
// The layout and its mapper are built once and shared by all requests.
// Coded errors map to 400, 404 or 409.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/agp/transform"
	"github.com/matzehuels/agptools/pkg/assemble"
	"github.com/matzehuels/agptools/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	// Provider serves component sequences. Nil disables the fasta route.
	Provider assemble.SequenceProvider
	// Runner assembles and caches objects. Nil means an uncached runner.
	Runner *pipeline.Runner
	// LineWidth wraps FASTA output. Zero means one line per sequence.
	LineWidth int
	Logger    *log.Logger
}

// Server answers queries against one immutable layout.
type Server struct {
	layout *agp.Layout
	mapper *transform.Mapper
	hash   string
	opts   Options
}

// New indexes layout for serving.
func New(layout *agp.Layout, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	return &Server{
		layout: layout,
		mapper: transform.NewMapper(layout),
		hash:   pipeline.LayoutHash(layout),
		opts:   opts,
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/map", s.handleMap)
	r.Route("/objects", func(r chi.Router) {
		r.Get("/", s.handleObjects)
		r.Get("/{name}", s.handleObject)
		if s.opts.Provider != nil {
			r.Get("/{name}/fasta", s.handleFASTA)
		}
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

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("serving layout", "addr", addr, "objects", s.layout.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
