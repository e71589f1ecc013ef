package demo

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/stocksanalyzer/pkg/logger"
)

// SetupLogging initializes the global logger on stderr so the report on
// stdout stays clean.
func SetupLogging(level string) error {
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the demo tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `StocksAnalyzer Demo
===================

Scores sample social posts and price history, then prints a portfolio
snapshot and the ranked trade ideas.

Usage:
  go run ./cmd/demo [options]

Options:
  -portfolio-sheet string
        CSV sheet with headers ticker,quantity,average_cost
        (default: built-in AAPL and NVDA positions)
  -min-score float
        Inclusive combined-score threshold (default 1)
  -log-level string
        debug, info, warn or error (default "warn")
  -help
        Show this help message

Examples:
  go run ./cmd/demo
  go run ./cmd/demo -portfolio-sheet positions.csv -min-score 9
`)
}
