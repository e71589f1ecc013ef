package main

import (
	"context"
	"flag"
	"os"
	"time"

	app "github.com/okian/stocksanalyzer/internal/app"
	"github.com/okian/stocksanalyzer/internal/demo"
	"github.com/okian/stocksanalyzer/internal/domain/ideas"
)

const defaultDemoTimeout = 30 * time.Second

func main() {
	var (
		sheet    = flag.String("portfolio-sheet", "", "Path to a CSV sheet with headers: ticker,quantity,average_cost")
		minScore = flag.Float64("min-score", ideas.DefaultMinScore, "Inclusive combined-score threshold")
		logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		demo.ShowHelp(os.Stdout)
		return
	}

	if err := demo.SetupLogging(*logLevel); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDemoTimeout)
	defer cancel()

	config := demo.DefaultConfig(os.Stdout)
	config.PortfolioSheet = *sheet
	config.MinScore = *minScore

	if _, err := demo.Run(ctx, config, app.New(app.WithMinScore(*minScore))); err != nil {
		os.Stderr.WriteString("Demo failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
