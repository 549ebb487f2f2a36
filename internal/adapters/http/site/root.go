// Package site serves the embedded genre-selection and results pages.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the embedded site routes to mux.
//
// The genre form lives at / and the recommendation results page at /results.
// The results page reads its book list from repeated "book" query
// parameters, which the API fills in on form submissions.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.FileServer(FS())
	mux.Handle("/", files)
	mux.HandleFunc("/results", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, staticFS, "static/results.html")
	})
}
