// Package demo seeds a sample portfolio, scores sample posts and price
// history, and prints the snapshot and the ranked ideas.
package demo

import (
	"io"

	"github.com/okian/stocksanalyzer/internal/domain/ideas"
)

// Config holds configuration for a demo run
type Config struct {
	PortfolioSheet string    // CSV with ticker,quantity,average_cost; sample positions when empty
	MinScore       float64   // Idea threshold
	Out            io.Writer // Report destination
}

// DefaultConfig returns the configuration of the stock demo.
func DefaultConfig(out io.Writer) *Config {
	return &Config{
		MinScore: ideas.DefaultMinScore,
		Out:      out,
	}
}
