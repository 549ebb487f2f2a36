// Package worker runs the harvest worker pool: jobs come off the queue, the
// catalog source turns them into book records, and available records land in
// the repository.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/praticodes/litloom/internal/adapters/mq/queue"
	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/pkg/logger"
	"github.com/praticodes/litloom/pkg/metrics"
)

// defaultPoolSize is small on purpose: the catalog client throttles to a
// handful of requests per second, so extra workers would only idle.
const defaultPoolSize = 4

// Fetcher turns a catalog link into a book record.
type Fetcher interface {
	Fetch(ctx context.Context, link string) (model.Book, error)
}

// Appender persists freshly scraped records.
type Appender interface {
	Append(ctx context.Context, books []model.Book) error
}

// Source defines how workers receive jobs.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Pool fans harvest jobs out over a fixed set of workers.
type Pool struct {
	size     int
	queue    Source
	fetcher  Fetcher
	appender Appender
	logger   logger.Logger

	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// NewPool creates a worker pool with configuration options.
func NewPool(q Source, fetcher Fetcher, appender Appender, opts ...Option) *Pool {
	p := &Pool{
		size:     defaultPoolSize,
		queue:    q,
		fetcher:  fetcher,
		appender: appender,
		logger:   logger.Get().Named("harvest"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start launches the workers. Each runs until the queue closes and drains or
// ctx is canceled.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true
	metrics.UpdateWorkerCount(p.size)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func(name string) {
			defer p.wg.Done()
			p.run(ctx, name)
		}(fmt.Sprintf("worker-%d", i))
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context, name string) {
	jobs := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			p.process(ctx, name, job)
		}
	}
}

func (p *Pool) process(ctx context.Context, name string, job queue.Job) {
	start := time.Now()

	book, err := p.fetcher.Fetch(ctx, job.URL)
	if err != nil || book.Unavailable() {
		p.logger.Warn(ctx, "dropping unavailable record",
			logger.String("worker", name),
			logger.String("url", job.URL),
			logger.Error(err),
		)
		return
	}

	if err := p.appender.Append(ctx, []model.Book{book}); err != nil {
		metrics.RecordHarvestError()
		p.logger.Error(ctx, "append failed",
			logger.String("worker", name),
			logger.String("title", book.Title),
			logger.Error(err),
		)
		return
	}

	metrics.RecordJobProcessed(float64(time.Since(start).Milliseconds()))
	p.logger.Debug(ctx, "harvested book",
		logger.String("worker", name),
		logger.String("title", book.Title),
	)
}
