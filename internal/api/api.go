// Package api serves stored finals over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/metrics"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

const (
	msgMissingYear  = "Please provide a year in the query parameter. Example: /wimbledon?year=2021"
	msgInvalidYear  = "Year must be an integer."
	msgNotFound     = "No data found for Wimbledon final %d."
	msgUnavailable  = "Finals data is temporarily unavailable."
	requestDeadline = 10 * time.Second
)

// Reader looks up a stored final by year
type Reader interface {
	GetByYear(ctx context.Context, year int) (final.Final, error)
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	store Reader
	log   *logger.Logger
}

// NewRouter builds the read API. A nil m serves an empty /metrics.
func NewRouter(store Reader, m *metrics.Metrics, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.Default()
	}
	h := &handler{store: store, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestDeadline))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Get("/wimbledon", h.getByQuery)
	r.Get("/finals/{year}", h.getByPath)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getByQuery serves GET /wimbledon?year=YYYY
func (h *handler) getByQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingYear})
		return
	}
	h.lookup(w, r, raw)
}

// getByPath serves GET /finals/{year}
func (h *handler) getByPath(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, chi.URLParam(r, "year"))
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request, raw string) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidYear})
		return
	}

	f, err := h.store.GetByYear(r.Context(), year)
	if errors.Is(err, storage.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf(msgNotFound, year)})
		return
	}
	if err != nil {
		h.log.Error("Failed to read final", logger.Fields{
			"year":       year,
			"request_id": middleware.GetReqID(r.Context()),
		}, err)
		respondJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: msgUnavailable})
		return
	}

	respondJSON(w, http.StatusOK, f)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Debug("HTTP request", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		})
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}
