package benchmark

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/praticodes/litloom/internal/domain/model"
)

// Constants for random generation ranges.
const (
	maxVoteWeight    = 10
	maxGenresPerBook = 4
	ratingFloor      = 3.0
	ratingSpan       = 1.9
	maxRatingCount   = 2_000_000
	randomDivisor    = 1_000_000
)

// genreCatalog is the set of genres observed across the scraped pool. Vote
// maps are drawn over it so benchmark inputs look like real form input.
var genreCatalog = []string{
	"Romance", "Fiction", "Contemporary", "Contemporary Romance", "Audiobook",
	"Adult", "Chick Lit", "Thriller", "Mystery", "Mystery Thriller", "Suspense",
	"Psychological Thriller", "Nonfiction", "Memoir", "Biography", "Autobiography",
	"Biography Memoir", "LGBT", "Horror", "Literary Fiction", "Feminist", "African American",
	"Magical Realism", "Historical Fiction", "Science Fiction", "Mental Health", "Essays",
	"Humor", "Sports", "Christmas", "Queer", "New Adult", "Gothic", "Classic",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomDivisor))
	return float64(n.Int64()) / float64(randomDivisor)
}

// getRandomInt returns a random int in [0, bound).
func getRandomInt(bound int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	return int(n.Int64())
}

// generateVoteMaps creates count random vote maps over the genre catalog,
// each genre weighted 0 to 10.
func generateVoteMaps(count int) []model.VoteMap {
	maps := make([]model.VoteMap, count)
	for i := range maps {
		votes := make(model.VoteMap, len(genreCatalog))
		for _, genre := range genreCatalog {
			votes[genre] = getRandomInt(maxVoteWeight + 1)
		}
		maps[i] = votes
	}
	return maps
}

// generatePool creates a synthetic book pool with unique titles, plausible
// rating distributions, and one to four genres drawn from the catalog.
func generatePool(size int) []model.Book {
	books := make([]model.Book, size)
	for i := range books {
		genreCount := 1 + getRandomInt(maxGenresPerBook)
		genres := make([]string, 0, genreCount)
		seen := make(map[string]bool, genreCount)
		for len(genres) < genreCount {
			g := genreCatalog[getRandomInt(len(genreCatalog))]
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}

		books[i] = model.Book{
			Title:       fmt.Sprintf("Benchmark Book %s", uuid.New().String()),
			Author:      fmt.Sprintf("Author %d", i),
			Rating:      ratingFloor + ratingSpan*getRandomFloat(),
			RatingCount: getRandomInt(maxRatingCount) + 1,
			Genres:      genres,
		}
	}
	return books
}
