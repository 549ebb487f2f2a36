package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	// ErrNoVotes reports a vote map whose total weight is zero. Scoring
	// divides by the total, so this is a caller error, never retried.
	ErrNoVotes = errors.New("vote map has zero total weight")
)
