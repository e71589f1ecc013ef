package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	app "github.com/okian/stocksanalyzer/internal/app"
	"github.com/okian/stocksanalyzer/internal/domain/model"
	"github.com/okian/stocksanalyzer/internal/domain/portfolio"
	"github.com/okian/stocksanalyzer/pkg/logger"
	"github.com/shopspring/decimal"
)

// Error constants.
var (
	ErrNoOutput = errors.New("demo output is nil")
)

// Engine runs the full scoring pipeline.
type Engine interface {
	Run(ctx context.Context, in app.Input) app.Result
}

// Report is everything a demo run produces.
type Report struct {
	Portfolio map[string]portfolio.PositionView
	CostBasis decimal.Decimal
	Result    app.Result
}

// Run builds the portfolio, scores the sample data with engine and writes
// the report to config.Out.
func Run(ctx context.Context, config *Config, engine Engine) (*Report, error) {
	if config.Out == nil {
		return nil, ErrNoOutput
	}

	book, err := buildPortfolio(ctx, config)
	if err != nil {
		return nil, err
	}

	minScore := config.MinScore
	res := engine.Run(ctx, app.Input{
		Posts:    Posts(),
		Tracked:  Tracked,
		History:  History(),
		MinScore: &minScore,
	})

	report := &Report{
		Portfolio: book.Snapshot(),
		CostBasis: book.TotalCostBasis(),
		Result:    res,
	}
	if err := report.Write(config.Out); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return report, nil
}

func buildPortfolio(ctx context.Context, config *Config) (*portfolio.Portfolio, error) {
	book := portfolio.New()

	if config.PortfolioSheet != "" {
		n, err := book.LoadSheetFile(config.PortfolioSheet)
		if err != nil {
			return nil, fmt.Errorf("load portfolio sheet: %w", err)
		}
		logger.Get().Info(ctx, "portfolio sheet loaded",
			logger.String("path", config.PortfolioSheet),
			logger.Int("positions", n))
	} else {
		for _, s := range seedPositions {
			if _, err := book.AddPosition(s.ticker, decimal.RequireFromString(s.quantity), decimal.RequireFromString(s.cost)); err != nil {
				return nil, fmt.Errorf("seed portfolio: %w", err)
			}
		}
	}

	for _, s := range seedUpdates {
		if _, err := book.AddUpdate(s.ticker, s.note, journalSource); err != nil {
			// A custom sheet may not hold the sample tickers.
			logger.Get().Warn(ctx, "journal entry skipped",
				logger.String("ticker", s.ticker),
				logger.Error(err))
		}
	}
	return book, nil
}

// Write prints the snapshot followed by one line per idea.
func (r *Report) Write(w io.Writer) error {
	snap, err := json.MarshalIndent(r.Portfolio, "", "  ")
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Portfolio Snapshot:\n%s\nTotal cost basis: %s\n\nTrade Ideas:\n",
		snap, r.CostBasis.StringFixed(2)); err != nil {
		return err
	}
	if len(r.Result.Ideas) == 0 {
		_, err := fmt.Fprintln(w, "- none")
		return err
	}
	for _, idea := range r.Result.Ideas {
		if _, err := fmt.Fprintln(w, formatIdea(idea)); err != nil {
			return err
		}
	}
	return nil
}

func formatIdea(idea model.TradeIdea) string {
	return fmt.Sprintf("- %s: score=%.2f | %s", idea.Ticker, idea.Score, idea.Rationale)
}
