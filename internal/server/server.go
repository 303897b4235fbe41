// Package server exposes the project library over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/alexanderramin/effortplan/internal/contract"
	"github.com/alexanderramin/effortplan/internal/importer"
	"github.com/alexanderramin/effortplan/internal/repository"
	"github.com/alexanderramin/effortplan/internal/service"
)

const notFoundPrefix = "Project not found. Error message:"

// ShutdownTimeout bounds the graceful drain in Run.
const ShutdownTimeout = 5 * time.Second

type Server struct {
	library service.LibraryService
	logger  *slog.Logger
	flight  singleflight.Group
}

// NewRouter builds the lookup API:
//
//	GET /api/projects/{code}           stored project body, verbatim
//	GET /api/projects/{code}/estimate  computed totals, timeline and summary
//	GET /health
func NewRouter(library service.LibraryService, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{library: library, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", srv.handleHealth)
	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Get("/{code}", srv.handleProject)
		r.Get("/{code}/estimate", srv.handleEstimate)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.library.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromEntries(entries))
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	// Joined callers share this lookup, so it must outlive any one request.
	ctx := context.WithoutCancel(r.Context())
	v, err, _ := s.flight.Do("body:"+code, func() (any, error) {
		return s.library.Lookup(ctx, code)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec := v.(*repository.ProjectRecord)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Body)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	ctx := context.WithoutCancel(r.Context())
	v, err, _ := s.flight.Do("estimate:"+code, func() (any, error) {
		view, err := s.library.LookupView(ctx, code)
		if err != nil {
			return nil, err
		}
		return contract.FromView(code, view), nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v.(contract.ProjectView))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var parseErr *importer.ParseError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, contract.ErrorResponse{Error: notFoundPrefix + err.Error()})
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusUnprocessableEntity, contract.ErrorResponse{Error: err.Error()})
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, contract.ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to ShutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
