// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/praticodes/litloom/internal/app"
	"github.com/praticodes/litloom/internal/domain/selection"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend returns display-formatted picks for the selected genres.
	Recommend(ctx context.Context, selectedGenres []string) ([]string, error)

	// Genres lists the distinct genres available in the pool.
	Genres(ctx context.Context) ([]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	genresHandler    *GenresHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		genresHandler:    NewGenresHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendHandler.HandlePostRecommendations, "recommendations"))
	mux.HandleFunc("/genres", MetricsMiddleware(s.genresHandler.HandleGetGenres, "genres"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates facade errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, "empty_selection", err)
	case errors.Is(err, service.ErrRepositoryUnavailable):
		writeError(w, http.StatusServiceUnavailable, "pool_unavailable", err)
	case errors.Is(err, selection.ErrInfeasible):
		writeError(w, http.StatusUnprocessableEntity, "infeasible", err)
	case errors.Is(err, selection.ErrInvalidVotes):
		writeError(w, http.StatusBadRequest, "invalid_votes", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
