// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// GenresDependencies defines the interface for genre listing.
type GenresDependencies interface {
	Genres(ctx context.Context) ([]string, error)
}

// GenresHandler handles genre listing requests.
type GenresHandler struct {
	deps GenresDependencies
}

// NewGenresHandler creates a new genres handler.
func NewGenresHandler(deps GenresDependencies) *GenresHandler {
	return &GenresHandler{deps: deps}
}

type genresResponse struct {
	Genres []string `json:"genres"`
}

// HandleGetGenres handles GET /genres requests.
func (h *GenresHandler) HandleGetGenres(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	genres, err := h.deps.Genres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genresResponse{Genres: genres})
}
