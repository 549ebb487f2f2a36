package benchmark

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/praticodes/litloom/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "bench_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the benchmark tool.
func ShowHelp() {
	os.Stdout.WriteString(`LitLoom Selector Benchmark
==========================

Times the optimal and sort selection strategies over identical inputs and
verifies that both reach the same objective.

Usage:
  go run cmd/bench/main.go [options]

Options:
  -data string
        CSV book pool to benchmark against (default: synthetic pool)
  -pool int
        Synthetic pool size when no data file is given (default 1000)
  -runs int
        Number of random vote maps to benchmark (default 100)
  -pick int
        Books selected per run (default 9)
  -log string
        Log file for benchmark output (default: bench_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Benchmark with a synthetic pool
  go run cmd/bench/main.go

  # Benchmark the scraped pool
  go run cmd/bench/main.go -data books.csv -runs 500

  # Larger synthetic pool, bigger picks
  go run cmd/bench/main.go -pool 10000 -pick 20
`)
}
