package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/praticodes/litloom/internal/adapters/catalog"
	app "github.com/praticodes/litloom/internal/app"
	"github.com/praticodes/litloom/internal/config"
	"github.com/praticodes/litloom/pkg/logger"
)

// harvestTimeout bounds a full harvest sweep.
const harvestTimeout = 2 * time.Hour

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get().Named("scrape")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, harvestTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	// Harvest-enabled service: queue, dedupe, worker pool, catalog client.
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithDataFile(cfg.DataFile),
		app.WithHarvest(true),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithCatalogOptions(
			catalog.WithBaseURL(cfg.CatalogBaseURL),
			catalog.WithRateLimit(cfg.CatalogRPS, cfg.CatalogBurst),
		),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}

	listings := catalog.PopularByDateURLs(cfg.CatalogBaseURL, time.Now())
	loggerInstance.Info(ctx, "starting harvest sweep",
		logger.Int("listings", len(listings)),
		logger.Int("workers", cfg.WorkerCount))

	enqueued := 0
	for _, listing := range listings {
		select {
		case <-ctx.Done():
			loggerInstance.Warn(ctx, "harvest interrupted", logger.Error(ctx.Err()))
			svc.Stop()
			return
		default:
		}

		links, err := svc.DiscoverLinks(ctx, listing)
		if err != nil {
			loggerInstance.Warn(ctx, "listing discovery failed",
				logger.String("listing", listing), logger.Error(err))
			continue
		}

		for _, link := range links {
			if svc.EnqueueLink(ctx, uuid.New().String(), link) {
				enqueued++
			}
		}
	}

	loggerInstance.Info(ctx, "harvest sweep enqueued", logger.Int("links", enqueued))

	// Stop closes the queue and waits for workers to drain it.
	svc.Stop()
	loggerInstance.Info(ctx, "harvest complete", logger.Any("stats", svc.GetStats()))
}
