// Package selection chooses the fixed-size subset of books that maximizes
// total combined score. Two strategies are provided: an exact binary
// optimizer and a sort-and-take heuristic. Both maximize the same objective
// and are guaranteed to reach the same total score; they may differ in which
// tied books they admit.
package selection

import (
	"context"

	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/internal/domain/scoring"
)

// Selector picks exactly k books from the candidate pool.
type Selector interface {
	// Select returns k distinct books from books. It fails with
	// ErrInfeasible when k exceeds the pool size and with ErrInvalidVotes
	// when the vote map has zero total weight. k == 0 yields an empty
	// result without error.
	Select(ctx context.Context, books []model.Book, votes model.VoteMap, k int) ([]model.Book, error)
}

// scoreAll computes each book's combined score once, in input order.
// Selectors share this so a sort or solve never re-derives scores per
// comparison.
func scoreAll(scorer scoring.Scorer, books []model.Book, votes model.VoteMap) ([]float64, error) {
	scores := make([]float64, len(books))
	for i, book := range books {
		score, err := scorer.CombinedScore(book, votes)
		if err != nil {
			return nil, ErrInvalidVotes
		}
		scores[i] = score
	}
	return scores, nil
}

// checkArgs validates the shared selector preconditions.
// The boolean reports whether the selection is trivially empty.
func checkArgs(books []model.Book, votes model.VoteMap, k int) (bool, error) {
	if k == 0 {
		return true, nil
	}
	if k < 0 || k > len(books) {
		return false, ErrInfeasible
	}
	if votes.Total() == 0 {
		return false, ErrInvalidVotes
	}
	return false, nil
}
