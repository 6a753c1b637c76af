package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/gymscore/internal/config"
	"github.com/dgallion1/gymscore/internal/results"
)

// ResultsSource provides the current results document.
type ResultsSource interface {
	Fetch(ctx context.Context) (*results.Document, error)
}

// Server is the HTTP server for the results page.
type Server struct {
	router chi.Router
	source ResultsSource
	stats  *results.FetchStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(source ResultsSource, stats *results.FetchStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		source: source,
		stats:  stats,
		log:    log,
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
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/api/stats/fetch", s.handleFetchStats)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)

		r.Get("/", s.handlePage)
		r.Get("/fragment", s.handleFragment)
		r.Get("/results.md", s.handleMarkdown)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
