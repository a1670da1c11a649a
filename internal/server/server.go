// Package server exposes the extractor and the history reader over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/adphone/internal/extract"
	"github.com/sells-group/adphone/internal/model"
)

// Extractor runs one extraction for a submitted URL.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*extract.Result, error)
}

// HistoryReader lists the most recent audit records.
type HistoryReader interface {
	ParseLimit(raw string, present bool) (int, error)
	List(ctx context.Context, limit int) ([]model.HistoryEntry, error)
}

// Pinger checks store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the request handlers' dependencies.
type Server struct {
	extractor Extractor
	history   HistoryReader
	pinger    Pinger
}

// New creates a Server. pinger may be nil when no store is configured.
func New(extractor Extractor, history HistoryReader, pinger Pinger) *Server {
	return &Server{extractor: extractor, history: history, pinger: pinger}
}

// Handler builds the chi router with middleware and routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type"},
		MaxAge:             corsMaxAge,
		OptionsPassthrough: true,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})

	r.Post("/parse", s.handleParse)
	r.Options("/parse", preflight(parseMethods))
	r.Get("/history", s.handleHistory)
	r.Options("/history", preflight(historyMethods))
	r.Get("/health", s.handleHealth)

	return r
}
