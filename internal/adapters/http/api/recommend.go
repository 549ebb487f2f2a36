// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// formSubmittedField marks browser form posts that expect a redirect to the
// results page instead of a JSON body.
const formSubmittedField = "form_submitted"

// RecommendDependencies defines the interface for recommendation requests.
type RecommendDependencies interface {
	Recommend(ctx context.Context, selectedGenres []string) ([]string, error)
}

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// recommendRequest mirrors the OpenAPI schema for POST /recommendations.
type recommendRequest struct {
	Genres []string `json:"genres"`
}

type recommendResponse struct {
	Books []string `json:"books"`
}

// HandlePostRecommendations handles POST /recommendations requests.
//
// JSON bodies get a JSON response. Browser form posts carrying
// form_submitted=true get a 303 redirect to /results with one book query
// parameter per pick, so the static results page can render them.
func (h *RecommendHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if isFormPost(r) {
		h.handleFormPost(w, r)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	books, err := h.deps.Recommend(r.Context(), cleanGenres(req.Genres))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Books: books})
}

func (h *RecommendHandler) handleFormPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if r.PostForm.Get(formSubmittedField) != "true" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingFormMarker)
		return
	}

	books, err := h.deps.Recommend(r.Context(), cleanGenres(r.PostForm["genres"]))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	q := url.Values{}
	for _, b := range books {
		q.Add("book", b)
	}
	http.Redirect(w, r, "/results?"+q.Encode(), http.StatusSeeOther)
}

func isFormPost(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/x-www-form-urlencoded"
}

// cleanGenres drops blank entries so a stray empty checkbox value does not
// count as a vote.
func cleanGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
