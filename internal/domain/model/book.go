// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// UnavailableTitle is the sentinel title the catalog source returns when a
// page could not be parsed. Records carrying it never enter the scoring pool.
const UnavailableTitle = "Title Unavailable"

// Book is an immutable record of one scraped catalog entry.
type Book struct {
	Title       string   // display identity, not guaranteed unique
	Author      string   // display identity, not guaranteed unique
	Rating      float64  // [0,5]; 0.0 means "rating unavailable"
	RatingCount int      // >= 0; 0 means "count unavailable"
	Genres      []string // source order preserved
}

// Key returns a stable identifier for score maps and lookups.
// Struct identity is deliberately not relied on for equality.
func (b Book) Key() string {
	return b.Title + "|" + b.Author
}

// Display formats the record the way results pages show it.
func (b Book) Display() string {
	return fmt.Sprintf("'%s' by %s", b.Title, b.Author)
}

// HasGenre reports whether name appears in the record's genre list.
// Matching is exact; no case folding or synonym mapping.
func (b Book) HasGenre(name string) bool {
	for _, g := range b.Genres {
		if g == name {
			return true
		}
	}
	return false
}

// Unavailable reports whether the record carries an unavailability sentinel.
// The repository filters these on load so they never reach the score engine.
func (b Book) Unavailable() bool {
	return b.Title == UnavailableTitle || b.Rating == 0.0
}

// VoteMap maps genre names to non-negative integer vote weights.
type VoteMap map[string]int

// Total returns the sum of all vote weights.
func (v VoteMap) Total() int {
	total := 0
	for _, w := range v {
		total += w
	}
	return total
}

// EqualVotes builds a VoteMap assigning weight 1 to every listed genre.
// Duplicates collapse to a single entry.
func EqualVotes(genres []string) VoteMap {
	votes := make(VoteMap, len(genres))
	for _, g := range genres {
		votes[g] = 1
	}
	return votes
}

// FetchJob is one unit of work for the harvest pipeline: a catalog page to
// fetch and turn into a Book.
type FetchJob struct {
	JobID        string    // unique id for deduplication
	URL          string    // catalog page to fetch
	DiscoveredAt time.Time // when the link was discovered
}
