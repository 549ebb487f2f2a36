// Package scoring computes per-book desirability scores from genre votes and
// rating credibility.
package scoring

import (
	"math"

	"github.com/praticodes/litloom/internal/domain/model"
)

// Default scoring configuration constants.
const (
	// defaultProvenRating is the shelf rating a book must clear, once its
	// rating count stops discounting it, before the rating score rewards it.
	defaultProvenRating = 4.0
	// defaultCountDecay controls how fast a growing rating count shrinks the
	// credibility discount exp(-countDecay * ratingCount).
	defaultCountDecay = 3e-5
	// defaultMaxAdvantage normalizes the rating advantage to a 0-100 score.
	// With provenRating 4.0 and ratings capped at 5.0 the advantage tops out
	// at 1.0 as the discount vanishes.
	defaultMaxAdvantage = 1.0

	maxScoreValue = 100
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithProvenRating sets the baseline rating a book must exceed.
func WithProvenRating(rating float64) Option {
	return func(e *Engine) {
		if rating > 0 {
			e.provenRating = rating
		}
	}
}

// WithCountDecay sets the rating-count discount decay rate.
func WithCountDecay(decay float64) Option {
	return func(e *Engine) {
		if decay > 0 {
			e.countDecay = decay
		}
	}
}

// WithMaxAdvantage sets the normalization constant for the rating score.
func WithMaxAdvantage(max float64) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxAdvantage = max
		}
	}
}

// Scorer computes a combined score for a book given a genre vote map.
type Scorer interface {
	CombinedScore(book model.Book, votes model.VoteMap) (float64, error)
}

// Engine implements Scorer with the genre-match and rating-credibility model.
// Engines are stateless after construction and safe for concurrent use.
type Engine struct {
	provenRating float64
	countDecay   float64
	maxAdvantage float64
}

// NewEngine creates a score engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		provenRating: defaultProvenRating,
		countDecay:   defaultCountDecay,
		maxAdvantage: defaultMaxAdvantage,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// GenreScore returns 100 * matched vote weight / total vote weight.
// A book matching none of the voted genres scores 0; a book whose genre list
// covers every voted genre scores 100. Genre names must match the catalog's
// exact string form; no normalization is applied.
func (e *Engine) GenreScore(book model.Book, votes model.VoteMap) (float64, error) {
	total := votes.Total()
	if total == 0 {
		return 0, ErrNoVotes
	}

	matched := 0
	for genre, weight := range votes {
		if book.HasGenre(genre) {
			matched += weight
		}
	}

	return maxScoreValue * float64(matched) / float64(total), nil
}

// RatingScore returns the credibility-adjusted rating score in [0,100].
//
// A book earns an advantage of rating - (provenRating + exp(-countDecay*n)):
// the discount term starts at one star for an unrated book and decays toward
// zero as the rating count n grows, so the score is monotonically
// non-decreasing in both rating and rating count. A non-positive advantage
// means the book is not yet proven and scores 0.
func (e *Engine) RatingScore(book model.Book) float64 {
	discount := math.Exp(-e.countDecay * float64(book.RatingCount))
	advantage := book.Rating - (e.provenRating + discount)
	if advantage <= 0 {
		return 0.0
	}

	score := advantage / e.maxAdvantage * maxScoreValue
	return math.Max(0, math.Min(maxScoreValue, score))
}

// CombinedScore returns GenreScore + RatingScore, range [0,200]. This is the
// sole objective both selection strategies maximize.
func (e *Engine) CombinedScore(book model.Book, votes model.VoteMap) (float64, error) {
	genreScore, err := e.GenreScore(book, votes)
	if err != nil {
		return 0, err
	}
	return genreScore + e.RatingScore(book), nil
}

// GenreMatch converts a vote map into per-genre percentages of the total vote
// weight, e.g. {"horror": 7, "fantasy": 2, "romance": 1} yields
// {"horror": 70, "fantasy": 20, "romance": 10}.
func GenreMatch(votes model.VoteMap) (map[string]float64, error) {
	total := votes.Total()
	if total == 0 {
		return nil, ErrNoVotes
	}

	percents := make(map[string]float64, len(votes))
	for genre, weight := range votes {
		percents[genre] = maxScoreValue * float64(weight) / float64(total)
	}
	return percents, nil
}
