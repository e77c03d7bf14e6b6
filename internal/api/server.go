// Package api implements the HTTP surface for netlearn's serve mode.
//
// The server wraps the learning pipeline: clients POST a CSV dataset to
// /api/learn, the server runs the structure search, persists the run, and
// exposes the learned network in several formats under /api/runs.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/netlearn/pkg/pipeline"
	"github.com/matzehuels/netlearn/pkg/store"
)

// Server holds all HTTP handler dependencies.
type Server struct {
	runner *pipeline.Runner
	runs   store.RunStore
	logger *log.Logger
}

// NewServer creates a Server. A nil store falls back to in-memory storage
// and a nil logger to the default logger.
func NewServer(runner *pipeline.Runner, runs store.RunStore, logger *log.Logger) *Server {
	if runs == nil {
		runs = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, runs: runs, logger: logger}
}

// Router builds the HTTP routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/learn", s.handleLearn)
		r.Get("/runs", s.handleListRuns)
		r.Route("/runs/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetRun)
			r.Get("/gph", s.handleRunGPH)
			r.Get("/dot", s.handleRunDOT)
			r.Get("/svg", s.handleRunSVG)
		})
	})
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// logRequests logs one line per request with method, path, status, and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
