// Package rest exposes the recommendation engine over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jeredson/Spoti-Finder/internal/core/ports"
	"github.com/jeredson/Spoti-Finder/internal/core/services"
	"github.com/jeredson/Spoti-Finder/internal/worker"
)

// Limits applied to the "limit" field of recommendation requests.
type Limits struct {
	Default int
	Max     int
}

// Handler manages the HTTP interface for the application.
type Handler struct {
	rec      *services.Recommender
	library  *services.Library
	detector ports.EmotionDetector
	pool     *worker.Pool
	limits   Limits
	router   chi.Router
	log      zerolog.Logger
}

// NewHandler initializes the HTTP adapter and sets up routes. The pool may
// be nil, in which case refreshes skip preview backfill.
func NewHandler(rec *services.Recommender, library *services.Library, detector ports.EmotionDetector, pool *worker.Pool, limits Limits, log zerolog.Logger) *Handler {
	if limits.Default <= 0 {
		limits.Default = 10
	}
	if limits.Max <= 0 {
		limits.Max = 50
	}

	h := &Handler{
		rec:      rec,
		library:  library,
		detector: detector,
		pool:     pool,
		limits:   limits,
		router:   chi.NewRouter(),
		log:      log,
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.Use(requestID)
	h.router.Use(requestLogger(h.log))

	h.router.Get("/health", h.HealthCheck)

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze-text", h.AnalyzeText)
		r.Post("/recommendations", h.Recommendations)
		r.Get("/tracks/{id}/similar", h.SimilarTracks)
		r.Get("/catalog", h.CatalogInfo)
		r.Post("/catalog/refresh", h.RefreshCatalog)
	})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clampLimit folds a client-supplied limit into the configured bounds.
func (h *Handler) clampLimit(limit int) int {
	if limit <= 0 {
		return h.limits.Default
	}
	if limit > h.limits.Max {
		return h.limits.Max
	}
	return limit
}
