package benchmark

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/praticodes/litloom/internal/adapters/repository"
	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/internal/domain/scoring"
	"github.com/praticodes/litloom/internal/domain/selection"
	"github.com/praticodes/litloom/pkg/logger"
)

// parityEpsilon bounds the allowed drift between the two strategies'
// objective totals.
const parityEpsilon = 1e-6

// Run executes the selector benchmark: both strategies over the same pool
// and the same random vote maps, timed per run, with objective parity
// checked on every pair of results.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting selector benchmark",
		logger.String("dataFile", config.DataFile),
		logger.Int("poolSize", config.PoolSize),
		logger.Int("runs", config.Runs),
		logger.Int("pickCount", config.PickCount))

	pool, err := loadPool(ctx, config)
	if err != nil {
		return fmt.Errorf("pool setup failed: %w", err)
	}
	stats.PoolSize = len(pool)

	engine := scoring.NewEngine()
	optimal := selection.NewOptimalSelector(engine)
	sorter := selection.NewSortSelector(engine)
	voteMaps := generateVoteMaps(config.Runs)

	for i, votes := range voteMaps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		optStart := time.Now()
		optPicks, err := optimal.Select(ctx, pool, votes, config.PickCount)
		if err != nil {
			return fmt.Errorf("optimal selector failed on run %d: %w", i, err)
		}
		stats.OptimalTotal += time.Since(optStart)

		sortStart := time.Now()
		sortPicks, err := sorter.Select(ctx, pool, votes, config.PickCount)
		if err != nil {
			return fmt.Errorf("sort selector failed on run %d: %w", i, err)
		}
		stats.SortTotal += time.Since(sortStart)

		if !objectiveParity(engine, votes, optPicks, sortPicks) {
			stats.ParityMismatches++
			if config.Verbose {
				logger.Get().Warn(ctx, "objective mismatch between strategies",
					logger.Int("run", i))
			}
		}
		stats.RunsCompleted++
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.ParityMismatches > 0 {
		return fmt.Errorf("%w: %d of %d runs diverged",
			ErrParity, stats.ParityMismatches, stats.RunsCompleted)
	}
	return nil
}

// loadPool reads the configured CSV pool, or generates a synthetic one when
// no data file is set.
func loadPool(ctx context.Context, config *Config) ([]model.Book, error) {
	if config.DataFile == "" {
		logger.Get().Info(ctx, "generating synthetic pool", logger.Int("size", config.PoolSize))
		return generatePool(config.PoolSize), nil
	}

	store := repository.NewCSVStore(repository.WithPath(config.DataFile))
	books, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool from %s: %w", config.DataFile, err)
	}
	return books, nil
}

// objectiveParity reports whether both strategies reached the same total
// combined score. Membership may differ on ties; the objective may not.
func objectiveParity(engine *scoring.Engine, votes model.VoteMap, a, b []model.Book) bool {
	return math.Abs(objectiveTotal(engine, votes, a)-objectiveTotal(engine, votes, b)) < parityEpsilon
}

func objectiveTotal(engine *scoring.Engine, votes model.VoteMap, picks []model.Book) float64 {
	total := 0.0
	for _, book := range picks {
		score, err := engine.CombinedScore(book, votes)
		if err != nil {
			return math.NaN()
		}
		total += score
	}
	return total
}

// displayFinalStats prints the final benchmark statistics.
func displayFinalStats(stats *Stats) {
	var avgOptimalMs, avgSortMs float64
	if stats.RunsCompleted > 0 {
		avgOptimalMs = float64(stats.OptimalTotal.Microseconds()) / float64(stats.RunsCompleted) / 1000.0
		avgSortMs = float64(stats.SortTotal.Microseconds()) / float64(stats.RunsCompleted) / 1000.0
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("runsCompleted", stats.RunsCompleted),
		logger.Int("poolSize", stats.PoolSize),
		logger.Float64("avgOptimalMs", avgOptimalMs),
		logger.Float64("avgSortMs", avgSortMs),
		logger.Int("parityMismatches", stats.ParityMismatches),
		logger.String("duration", stats.Duration.String()))
}
