package demo_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	app "github.com/okian/stocksanalyzer/internal/app"
	"github.com/okian/stocksanalyzer/internal/demo"
	"github.com/okian/stocksanalyzer/internal/domain/portfolio"
	"github.com/okian/stocksanalyzer/pkg/logger"
	"github.com/okian/stocksanalyzer/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func newEngine() *app.Service {
	return app.New(
		app.WithLogger(logger.New(io.Discard)),
		app.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	)
}

func TestRun(t *testing.T) {
	Convey("Given the demo with default configuration", t, func() {
		So(logger.Init(logger.WithOutput(io.Discard)), ShouldBeNil)
		var out bytes.Buffer
		cfg := demo.DefaultConfig(&out)
		ctx := context.Background()

		Convey("When running it", func() {
			report, err := demo.Run(ctx, cfg, newEngine())
			So(err, ShouldBeNil)

			Convey("Then ideas are ranked AAPL, NVDA, TSLA", func() {
				tickers := make([]string, 0, len(report.Result.Ideas))
				for _, idea := range report.Result.Ideas {
					tickers = append(tickers, idea.Ticker)
				}
				So(tickers, ShouldResemble, []string{"AAPL", "NVDA", "TSLA"})
			})

			Convey("And the sample portfolio carries its journal", func() {
				So(report.Portfolio, ShouldHaveLength, 2)
				So(report.Portfolio["AAPL"].Updates, ShouldHaveLength, 1)
				So(report.Portfolio["AAPL"].Updates[0].Source, ShouldEqual, "journal")
				So(report.CostBasis.String(), ShouldEqual, "6300")
			})

			Convey("And the report is printed", func() {
				text := out.String()
				So(text, ShouldStartWith, "Portfolio Snapshot:\n")
				So(text, ShouldContainSubstring, "Total cost basis: 6300.00")
				So(text, ShouldContainSubstring, "- AAPL: score=11.62 | Social sentiment=4.00, popularity/momentum=19.23;")
			})
		})

		Convey("When the threshold excludes everything", func() {
			cfg.MinScore = 100
			report, err := demo.Run(ctx, cfg, newEngine())
			So(err, ShouldBeNil)
			So(report.Result.Ideas, ShouldBeEmpty)
			So(out.String(), ShouldEndWith, "Trade Ideas:\n- none\n")
		})

		Convey("When a portfolio sheet is given", func() {
			path := filepath.Join(t.TempDir(), "positions.csv")
			So(os.WriteFile(path, []byte("ticker,quantity,average_cost\nMSFT,3,400\n"), 0o600), ShouldBeNil)
			cfg.PortfolioSheet = path

			report, err := demo.Run(ctx, cfg, newEngine())

			Convey("Then it replaces the sample positions", func() {
				So(err, ShouldBeNil)
				So(report.Portfolio, ShouldHaveLength, 1)
				So(report.Portfolio["MSFT"].Updates, ShouldBeEmpty)
			})
		})

		Convey("When the sheet is malformed", func() {
			path := filepath.Join(t.TempDir(), "bad.csv")
			So(os.WriteFile(path, []byte("symbol,qty\nMSFT,3\n"), 0o600), ShouldBeNil)
			cfg.PortfolioSheet = path

			_, err := demo.Run(ctx, cfg, newEngine())
			So(errors.Is(err, portfolio.ErrSheetFormat), ShouldBeTrue)
		})

		Convey("When no output is configured", func() {
			cfg.Out = nil
			_, err := demo.Run(ctx, cfg, newEngine())
			So(errors.Is(err, demo.ErrNoOutput), ShouldBeTrue)
		})
	})
}
