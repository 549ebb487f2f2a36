package selection_test

import (
	"context"
	"fmt"
	"math/bits"
	"testing"

	model "github.com/praticodes/litloom/internal/domain/model"
	scoring "github.com/praticodes/litloom/internal/domain/scoring"
	selection "github.com/praticodes/litloom/internal/domain/selection"
	. "github.com/smartystreets/goconvey/convey"
)

// testPool builds a deterministic synthetic pool cycling through a few genre
// shapes and rating profiles.
func testPool(n int) []model.Book {
	genres := [][]string{
		{"Fiction", "Romance"},
		{"Horror", "Gothic"},
		{"Fiction", "Feminism"},
		{"Fantasy"},
		{"Romance", "Horror", "Fiction"},
	}
	books := make([]model.Book, n)
	for i := range books {
		books[i] = model.Book{
			Title:       fmt.Sprintf("Book %02d", i),
			Author:      fmt.Sprintf("Author %02d", i),
			Rating:      3.5 + 0.3*float64(i%6),
			RatingCount: 1000 * (i%7 + 1) * (i%7 + 1),
			Genres:      genres[i%len(genres)],
		}
	}
	return books
}

func totalScore(engine *scoring.Engine, books []model.Book, votes model.VoteMap) float64 {
	total := 0.0
	for _, b := range books {
		s, err := engine.CombinedScore(b, votes)
		So(err, ShouldBeNil)
		total += s
	}
	return total
}

// bruteForceBest scans every size-k subset and returns the best total score.
func bruteForceBest(engine *scoring.Engine, books []model.Book, votes model.VoteMap, k int) float64 {
	best := -1.0
	for mask := 0; mask < 1<<len(books); mask++ {
		if bits.OnesCount(uint(mask)) != k {
			continue
		}
		total := 0.0
		for i := range books {
			if mask&(1<<i) != 0 {
				s, _ := engine.CombinedScore(books[i], votes)
				total += s
			}
		}
		if total > best {
			best = total
		}
	}
	return best
}

func TestSortSelector(t *testing.T) {
	Convey("Given a sort selector over a synthetic pool", t, func() {
		ctx := context.Background()
		engine := scoring.NewEngine()
		sel := selection.NewSortSelector(engine)
		books := testPool(20)
		votes := model.VoteMap{"Fiction": 4, "Romance": 3, "Feminism": 2, "Horror": 1}

		Convey("When selecting the top 9", func() {
			picked, err := sel.Select(ctx, books, votes, 9)
			So(err, ShouldBeNil)
			So(len(picked), ShouldEqual, 9)

			Convey("Then results come back highest score first", func() {
				prev := 201.0
				for _, b := range picked {
					s, serr := engine.CombinedScore(b, votes)
					So(serr, ShouldBeNil)
					So(s, ShouldBeLessThanOrEqualTo, prev)
					prev = s
				}
			})

			Convey("And no unpicked book outscores a picked one", func() {
				pickedKeys := make(map[string]bool, len(picked))
				worst := 201.0
				for _, b := range picked {
					pickedKeys[b.Key()] = true
					s, _ := engine.CombinedScore(b, votes)
					if s < worst {
						worst = s
					}
				}
				for _, b := range books {
					if pickedKeys[b.Key()] {
						continue
					}
					s, _ := engine.CombinedScore(b, votes)
					So(s, ShouldBeLessThanOrEqualTo, worst)
				}
			})
		})

		Convey("When k is 0", func() {
			picked, err := sel.Select(ctx, books, votes, 0)
			So(err, ShouldBeNil)
			So(picked, ShouldBeEmpty)
		})

		Convey("When k equals the pool size", func() {
			picked, err := sel.Select(ctx, books, votes, len(books))
			So(err, ShouldBeNil)
			So(len(picked), ShouldEqual, len(books))
		})

		Convey("When k exceeds the pool size", func() {
			_, err := sel.Select(ctx, books, votes, len(books)+1)
			So(err, ShouldEqual, selection.ErrInfeasible)
		})

		Convey("When the votes have zero total weight", func() {
			_, err := sel.Select(ctx, books, model.VoteMap{"Fiction": 0}, 3)
			So(err, ShouldEqual, selection.ErrInvalidVotes)
		})

		Convey("When selecting twice with identical inputs", func() {
			first, err := sel.Select(ctx, books, votes, 7)
			So(err, ShouldBeNil)
			second, err := sel.Select(ctx, books, votes, 7)
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
		})
	})
}

func TestOptimalSelector(t *testing.T) {
	Convey("Given an optimal selector over a synthetic pool", t, func() {
		ctx := context.Background()
		engine := scoring.NewEngine()
		sel := selection.NewOptimalSelector(engine)
		votes := model.VoteMap{"Fiction": 4, "Romance": 3, "Feminism": 2, "Horror": 1}

		Convey("When selecting 9 from a pool of 20", func() {
			books := testPool(20)
			picked, err := sel.Select(ctx, books, votes, 9)
			So(err, ShouldBeNil)

			Convey("Then exactly 9 distinct books come back", func() {
				So(len(picked), ShouldEqual, 9)
				seen := make(map[string]bool)
				for _, b := range picked {
					So(seen[b.Key()], ShouldBeFalse)
					seen[b.Key()] = true
				}
			})
		})

		Convey("When brute force can verify the optimum", func() {
			books := testPool(12)
			for _, k := range []int{1, 3, 6, 9, 12} {
				picked, err := sel.Select(ctx, books, votes, k)
				So(err, ShouldBeNil)
				So(len(picked), ShouldEqual, k)
				So(totalScore(engine, picked, votes), ShouldAlmostEqual,
					bruteForceBest(engine, books, votes, k), 1e-9)
			}
		})

		Convey("When the warm start is disabled", func() {
			books := testPool(12)
			cold := selection.NewOptimalSelector(engine, selection.WithWarmStart(false))

			Convey("Then the objective value is unchanged", func() {
				warmPick, err := sel.Select(ctx, books, votes, 5)
				So(err, ShouldBeNil)
				coldPick, err := cold.Select(ctx, books, votes, 5)
				So(err, ShouldBeNil)
				So(totalScore(engine, warmPick, votes), ShouldAlmostEqual,
					totalScore(engine, coldPick, votes), 1e-9)
			})
		})

		Convey("When k is 0", func() {
			picked, err := sel.Select(ctx, testPool(5), votes, 0)
			So(err, ShouldBeNil)
			So(picked, ShouldBeEmpty)
		})

		Convey("When k exceeds the pool size", func() {
			_, err := sel.Select(ctx, testPool(5), votes, 6)
			So(err, ShouldEqual, selection.ErrInfeasible)
		})

		Convey("When the votes have zero total weight", func() {
			_, err := sel.Select(ctx, testPool(5), model.VoteMap{}, 2)
			So(err, ShouldEqual, selection.ErrInvalidVotes)
		})

		Convey("When selecting twice with identical inputs", func() {
			books := testPool(15)
			first, err := sel.Select(ctx, books, votes, 6)
			So(err, ShouldBeNil)
			second, err := sel.Select(ctx, books, votes, 6)
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
		})

		Convey("When every book scores identically", func() {
			books := make([]model.Book, 8)
			for i := range books {
				books[i] = model.Book{
					Title:  fmt.Sprintf("Tied %d", i),
					Author: "Same",
					Rating: 4.5, RatingCount: 100000,
					Genres: []string{"Fiction"},
				}
			}

			Convey("Then ties resolve toward the lower input index", func() {
				picked, err := sel.Select(ctx, books, model.VoteMap{"Fiction": 1}, 3)
				So(err, ShouldBeNil)
				So(picked[0].Title, ShouldEqual, "Tied 0")
				So(picked[1].Title, ShouldEqual, "Tied 1")
				So(picked[2].Title, ShouldEqual, "Tied 2")
			})
		})
	})
}

func TestStrategyEquivalence(t *testing.T) {
	Convey("Given both strategies over the same inputs", t, func() {
		ctx := context.Background()
		engine := scoring.NewEngine()
		sortSel := selection.NewSortSelector(engine)
		optSel := selection.NewOptimalSelector(engine)

		voteMaps := []model.VoteMap{
			{"Fiction": 4, "Romance": 3, "Feminism": 2, "Horror": 1},
			{"Horror": 7, "Fantasy": 2, "Romance": 1},
			{"Gothic": 1},
			{"Fiction": 10, "Fantasy": 5},
		}

		Convey("Then both reach the same total combined score", func() {
			for _, n := range []int{5, 12, 20, 40} {
				books := testPool(n)
				for _, votes := range voteMaps {
					for _, k := range []int{0, 1, n / 2, n} {
						fromSort, err := sortSel.Select(ctx, books, votes, k)
						So(err, ShouldBeNil)
						fromOpt, err := optSel.Select(ctx, books, votes, k)
						So(err, ShouldBeNil)
						So(totalScore(engine, fromSort, votes), ShouldAlmostEqual,
							totalScore(engine, fromOpt, votes), 1e-9)
					}
				}
			}
		})
	})
}
