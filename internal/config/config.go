// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile points at the CSV book pool.
	DataFile string `koanf:"data_file"`

	// PickCount is how many books a recommendation returns.
	PickCount int `koanf:"pick_count"`

	// Strategy selects the subset strategy: "optimal" or "sort".
	Strategy string `koanf:"strategy"`

	// WorkerCount sets the number of harvest workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the harvest job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize bounds the seen-link cache.
	DedupeSize int `koanf:"dedupe_size"`

	// CatalogBaseURL is the catalog site root.
	CatalogBaseURL string `koanf:"catalog_base_url"`

	// CatalogRPS and CatalogBurst throttle outbound catalog requests.
	CatalogRPS   float64 `koanf:"catalog_rps"`
	CatalogBurst int     `koanf:"catalog_burst"`
}

// Strategy names accepted in configuration.
const (
	StrategyOptimal = "optimal"
	StrategySort    = "sort"
)

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8090",
		DataFile:       "books.csv",
		PickCount:      9,
		Strategy:       StrategyOptimal,
		WorkerCount:    runtime.NumCPU(),
		QueueSize:      10_000,
		DedupeSize:     50_000,
		CatalogBaseURL: "https://www.goodreads.com",
		CatalogRPS:     1.0,
		CatalogBurst:   3,
	}
}
