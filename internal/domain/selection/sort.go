package selection

import (
	"context"
	"sort"

	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/internal/domain/scoring"
)

// SortSelector implements Selector with the sort-and-take heuristic: order
// the pool by combined score and take the top k. Results come back in
// descending-score order, ties broken by original input order.
type SortSelector struct {
	scorer scoring.Scorer
}

// NewSortSelector creates a sort-based selector backed by scorer.
func NewSortSelector(scorer scoring.Scorer) *SortSelector {
	return &SortSelector{scorer: scorer}
}

// Select returns the k highest-combined-score books, highest first.
func (s *SortSelector) Select(_ context.Context, books []model.Book, votes model.VoteMap, k int) ([]model.Book, error) {
	empty, err := checkArgs(books, votes, k)
	if err != nil {
		return nil, err
	}
	if empty {
		return []model.Book{}, nil
	}

	scores, err := scoreAll(s.scorer, books, votes)
	if err != nil {
		return nil, err
	}

	// Stable sort keeps input order among equal scores, which makes
	// tie-break membership deterministic.
	order := make([]int, len(books))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	// The last k indices hold the winners; reverse them so the highest
	// score comes first.
	picked := make([]model.Book, 0, k)
	for i := len(order) - 1; i >= len(order)-k; i-- {
		picked = append(picked, books[order[i]])
	}
	return picked, nil
}
