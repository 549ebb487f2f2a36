package benchmark

import "time"

// Config holds configuration for a selector benchmark run.
type Config struct {
	DataFile  string // CSV pool to load; empty means synthetic pool
	PoolSize  int    // Synthetic pool size when no data file is given
	Runs      int    // Number of vote maps to benchmark
	PickCount int    // Books selected per run
	LogFile   string // Log file for benchmark output
	Verbose   bool   // Enable verbose logging
}

// Stats holds benchmark statistics.
type Stats struct {
	RunsCompleted    int
	PoolSize         int
	OptimalTotal     time.Duration
	SortTotal        time.Duration
	ParityMismatches int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
