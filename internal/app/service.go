// Package service provides the recommendation facade that HTTP handlers and
// the harvest CLI talk to. It orchestrates repository loads, vote
// normalization, selector invocation, and result formatting.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/praticodes/litloom/internal/adapters/catalog"
	"github.com/praticodes/litloom/internal/adapters/mq/queue"
	workerpool "github.com/praticodes/litloom/internal/adapters/mq/worker"
	"github.com/praticodes/litloom/internal/adapters/repository"
	"github.com/praticodes/litloom/internal/domain/dedupe"
	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/internal/domain/scoring"
	"github.com/praticodes/litloom/internal/domain/selection"
	"github.com/praticodes/litloom/pkg/logger"
	"github.com/praticodes/litloom/pkg/metrics"
)

// Defaults for the facade.
const (
	defaultPickCount  = 9
	defaultWorkers    = 4
	defaultQueueSize  = 10_000
	defaultDedupeSize = 50_000
)

// Strategy names for metrics labels.
const (
	strategyOptimal = "optimal"
	strategySort    = "sort"
)

// Service implements the recommendation and harvest facades.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	engine   *scoring.Engine
	selector selection.Selector
	source   catalog.Source
	deduper  dedupe.Deduper
	jobs     queue.Queue
	pool     *workerpool.Pool

	// Configuration
	pickCount   int
	strategy    string
	workerCount int
	queueSize   int
	dedupeSize  int
	harvest     bool
	dataFile    string
	catalogOpts []catalog.Option
	scoringOpts []scoring.Option

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the book repository. Defaults to a CSV store on the
// configured data file.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataFile sets the CSV pool path used when no store is injected.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithPickCount sets how many books a recommendation returns.
func WithPickCount(k int) Option {
	return func(s *Service) {
		if k >= 0 {
			s.pickCount = k
		}
	}
}

// WithStrategy selects the subset strategy, "optimal" or "sort".
func WithStrategy(strategy string) Option {
	return func(s *Service) {
		if strategy == strategyOptimal || strategy == strategySort {
			s.strategy = strategy
		}
	}
}

// WithScoringOptions forwards options to the score engine.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scoringOpts = opts
	}
}

// WithHarvest enables the offline harvest pipeline (queue, dedupe, workers,
// catalog client). The recommendation server leaves it off.
func WithHarvest(enabled bool) Option {
	return func(s *Service) {
		s.harvest = enabled
	}
}

// WithCatalogOptions forwards options to the catalog client.
func WithCatalogOptions(opts ...catalog.Option) Option {
	return func(s *Service) {
		s.catalogOpts = opts
	}
}

// WithWorkerCount sets the number of harvest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the harvest job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the seen-link cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pickCount:   defaultPickCount,
		strategy:    strategyOptimal,
		workerCount: defaultWorkers,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		dataFile:    "books.csv",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.store == nil {
		s.store = repository.NewCSVStore(repository.WithPath(s.dataFile))
	}
	s.engine = scoring.NewEngine(s.scoringOpts...)

	switch s.strategy {
	case strategySort:
		s.selector = selection.NewSortSelector(s.engine)
	default:
		s.selector = selection.NewOptimalSelector(s.engine)
	}

	if s.harvest {
		s.source = catalog.NewClient(s.catalogOpts...)
		s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
		s.jobs = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
		s.pool = workerpool.NewPool(s.jobs, s.source, s.store,
			workerpool.WithSize(s.workerCount),
		)
		s.pool.Start(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.String("strategy", s.strategy),
		logger.Int("pickCount", s.pickCount),
		logger.Any("harvest", s.harvest),
	)
	return nil
}

// Stop shuts the service down. With harvesting enabled it closes the queue
// and waits for in-flight jobs to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.harvest && s.jobs != nil {
		_ = s.jobs.Close()
		s.pool.Wait()
	}

	s.started = false
	s.logger.Info(context.Background(), "service stopped")
}

// Recommend loads the candidate pool, scores it against an equal-weight vote
// over selectedGenres, selects the configured number of books, and formats
// them for display. When the pool holds fewer books than the pick count the
// whole pool is recommended.
func (s *Service) Recommend(ctx context.Context, selectedGenres []string) ([]string, error) {
	if len(selectedGenres) == 0 {
		metrics.RecordRecommendationError()
		return nil, ErrEmptySelection
	}

	books, err := s.loadPool(ctx)
	if err != nil {
		metrics.RecordRecommendationError()
		return nil, err
	}

	votes := model.EqualVotes(selectedGenres)

	k := s.pickCount
	if k > len(books) {
		k = len(books)
	}

	start := time.Now()
	picked, err := s.selector.Select(ctx, books, votes, k)
	if err != nil {
		metrics.RecordRecommendationError()
		return nil, err
	}
	metrics.RecordRecommendation(s.strategy, float64(time.Since(start).Milliseconds()))

	titles := make([]string, len(picked))
	for i, book := range picked {
		titles[i] = book.Display()
	}

	s.logger.Info(ctx, "recommendation served",
		logger.Int("pool", len(books)),
		logger.Int("picked", len(titles)),
		logger.Int("genres", len(selectedGenres)),
	)
	return titles, nil
}

// Genres returns the distinct genres present in the pool, sorted, for the
// selection form.
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	books, err := s.loadPool(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var genres []string
	for _, book := range books {
		for _, g := range book.Genres {
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}
	}
	sort.Strings(genres)
	return genres, nil
}

// loadPool reads the repository, mapping read failures and an empty pool to
// ErrRepositoryUnavailable.
func (s *Service) loadPool(ctx context.Context) ([]model.Book, error) {
	books, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, ErrRepositoryUnavailable
	}
	if len(books) == 0 {
		return nil, ErrRepositoryUnavailable
	}
	return books, nil
}

// EnqueueLink submits a catalog link for harvesting. Returns false when the
// link was already seen or the queue is saturated.
func (s *Service) EnqueueLink(ctx context.Context, jobID, url string) bool {
	if !s.harvest {
		return false
	}

	if s.deduper.SeenAndRecord(ctx, url) {
		return false
	}

	ok := s.jobs.Enqueue(ctx, model.FetchJob{
		JobID:        jobID,
		URL:          url,
		DiscoveredAt: time.Now(),
	})
	if !ok {
		// Give the link another chance on a later sweep.
		s.deduper.Unrecord(ctx, url)
	}
	return ok
}

// DiscoverLinks proxies to the catalog client for the harvest CLI.
func (s *Service) DiscoverLinks(ctx context.Context, listURL string) ([]string, error) {
	if !s.harvest {
		return nil, ErrHarvestDisabled
	}
	client, ok := s.source.(*catalog.Client)
	if !ok {
		return nil, ErrHarvestDisabled
	}
	return client.DiscoverLinks(ctx, listURL)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"strategy":  s.strategy,
		"pickCount": s.pickCount,
		"harvest":   s.harvest,
	}

	if s.started {
		stats["poolSize"] = s.store.Count(ctx)
		if s.harvest {
			stats["queueLength"] = s.jobs.Len(ctx)
			stats["seenLinks"] = s.deduper.Size()
			stats["workerCount"] = s.workerCount
		}
	}

	return stats
}
