package selection

import (
	"container/heap"
	"context"
	"sort"

	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/internal/domain/scoring"
)

// OptimalSelector implements Selector by posing book choice as a binary
// program: one 0/1 decision per book, objective = sum of combined scores of
// chosen books, single equality constraint "exactly k chosen". With that
// constraint structure the exact optimum is a top-k selection, so the solver
// runs in O(n log k) with a bounded min-heap rather than a general ILP
// search. The program formulation is kept so richer constraints (reading
// time, price budget) can slot in later.
type OptimalSelector struct {
	scorer    scoring.Scorer
	warmStart bool
}

// OptimalOption applies a configuration option to the OptimalSelector.
type OptimalOption func(*OptimalSelector)

// WithWarmStart toggles seeding the solve with an initial feasible guess
// (the first k books rated above 4.0). The hint never changes the optimal
// objective value; among tied-optimal subsets it may change membership.
func WithWarmStart(enabled bool) OptimalOption {
	return func(s *OptimalSelector) {
		s.warmStart = enabled
	}
}

// NewOptimalSelector creates an exact selector backed by scorer.
func NewOptimalSelector(scorer scoring.Scorer, opts ...OptimalOption) *OptimalSelector {
	s := &OptimalSelector{
		scorer:    scorer,
		warmStart: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// binaryProgram is the posed 0/1 selection problem.
type binaryProgram struct {
	objective []float64 // objective coefficient per decision variable
	pick      int       // equality constraint: exactly this many ones
	hint      []int     // optional warm-start indices, len <= pick
}

// Select returns the k books whose decision variables are 1 in the optimal
// solution, in input order. The returned set's total combined score is >=
// that of every other size-k subset.
func (s *OptimalSelector) Select(_ context.Context, books []model.Book, votes model.VoteMap, k int) ([]model.Book, error) {
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

	prog := binaryProgram{objective: scores, pick: k}
	if s.warmStart {
		prog.hint = warmStartHint(books, k)
	}

	chosen := prog.solve()

	picked := make([]model.Book, 0, k)
	for _, i := range chosen {
		picked = append(picked, books[i])
	}
	return picked, nil
}

// warmStartHint pre-marks the first k books rated above 4.0, in index order,
// as an initial feasible guess.
func warmStartHint(books []model.Book, k int) []int {
	hint := make([]int, 0, k)
	for i, book := range books {
		if book.Rating > 4.0 {
			hint = append(hint, i)
			if len(hint) == k {
				break
			}
		}
	}
	return hint
}

// solve returns the indices of the optimal decision variables in ascending
// order. Ties resolve toward the lower index, so repeated solves over
// identical programs return identical sets regardless of the hint.
func (p binaryProgram) solve() []int {
	h := &coeffHeap{objective: p.objective}
	heap.Init(h)

	// Seed the incumbent with the warm-start hint, then sweep the remaining
	// variables. Any variable beating the incumbent's worst coefficient
	// displaces it.
	seeded := make(map[int]bool, len(p.hint))
	for _, i := range p.hint {
		heap.Push(h, i)
		seeded[i] = true
	}

	for i := range p.objective {
		if seeded[i] {
			continue
		}
		if h.Len() < p.pick {
			heap.Push(h, i)
			continue
		}
		if worse(p.objective, h.indices[0], i) {
			h.indices[0] = i
			heap.Fix(h, 0)
		}
	}

	chosen := make([]int, h.Len())
	copy(chosen, h.indices)
	sort.Ints(chosen)
	return chosen
}

// worse reports whether variable a ranks strictly below variable b: a lower
// coefficient loses, and between equal coefficients the higher index loses.
func worse(objective []float64, a, b int) bool {
	if objective[a] != objective[b] {
		return objective[a] < objective[b]
	}
	return a > b
}

// coeffHeap is a min-heap of variable indices ordered by objective
// coefficient, worst at the root.
type coeffHeap struct {
	objective []float64
	indices   []int
}

func (h *coeffHeap) Len() int           { return len(h.indices) }
func (h *coeffHeap) Less(a, b int) bool { return worse(h.objective, h.indices[a], h.indices[b]) }
func (h *coeffHeap) Swap(a, b int)      { h.indices[a], h.indices[b] = h.indices[b], h.indices[a] }
func (h *coeffHeap) Push(x any)         { h.indices = append(h.indices, x.(int)) }

func (h *coeffHeap) Pop() any {
	n := len(h.indices)
	x := h.indices[n-1]
	h.indices = h.indices[:n-1]
	return x
}
