package benchmark

import "errors"

// ErrParity is returned when the two strategies disagree on the achievable
// objective for the same input.
var ErrParity = errors.New("strategy objectives diverged")
