package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/praticodes/litloom/internal/benchmark"
)

// Default configuration constants.
const (
	defaultPoolSize     = 1000
	defaultRuns         = 100
	defaultPickCount    = 9
	defaultBenchTimeout = 10 * time.Minute
)

func main() {
	var (
		dataFile  = flag.String("data", "", "CSV book pool to benchmark against (default: synthetic pool)")
		poolSize  = flag.Int("pool", defaultPoolSize, "Synthetic pool size when no data file is given")
		runs      = flag.Int("runs", defaultRuns, "Number of random vote maps to benchmark")
		pickCount = flag.Int("pick", defaultPickCount, "Books selected per run")
		logFile   = flag.String("log", "", "Log file for benchmark output (default: bench_log_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		benchmark.ShowHelp()
		return
	}

	// Setup logging
	if err := benchmark.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultBenchTimeout)
	defer cancel()

	config := &benchmark.Config{
		DataFile:  *dataFile,
		PoolSize:  *poolSize,
		Runs:      *runs,
		PickCount: *pickCount,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	if err := benchmark.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Benchmark failed: " + err.Error() + "\n")
		return
	}
}
