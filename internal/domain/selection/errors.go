package selection

import "errors"

// Sentinel kinds for selection errors. Both indicate caller misuse and are
// surfaced immediately, never retried.
var (
	// ErrInfeasible reports that the equality constraint "pick exactly k"
	// cannot be satisfied because k exceeds the candidate pool.
	ErrInfeasible = errors.New("infeasible selection: k exceeds candidate pool")

	// ErrInvalidVotes reports a vote map with zero total weight.
	ErrInvalidVotes = errors.New("invalid votes: zero total weight")
)
