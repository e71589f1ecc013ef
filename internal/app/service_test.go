package service_test

import (
	"bytes"
	"context"
	"io"
	"math"
	"testing"

	app "github.com/okian/stocksanalyzer/internal/app"
	"github.com/okian/stocksanalyzer/internal/domain/model"
	"github.com/okian/stocksanalyzer/pkg/logger"
	"github.com/okian/stocksanalyzer/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func newService(opts ...app.Option) *app.Service {
	base := []app.Option{
		app.WithLogger(logger.New(io.Discard)),
		app.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	}
	return app.New(append(base, opts...)...)
}

func demoInput() app.Input {
	return app.Input{
		Posts: []model.SocialPost{
			{Text: "AAPL looks strong buy into next quarter"},
			{Text: "NVDA bullish but high risk after huge run"},
			{Text: "AAPL upgrade and growth momentum"},
			{Text: "TSLA weak delivery numbers, bearish reaction"},
		},
		Tracked: []string{"AAPL", "NVDA", "TSLA"},
		History: map[string]model.Series{
			"AAPL": {{Close: 178, Volume: 100}, {Close: 179, Volume: 95}, {Close: 181, Volume: 98}, {Close: 185, Volume: 140}},
			"NVDA": {{Close: 870, Volume: 80}, {Close: 890, Volume: 90}, {Close: 910, Volume: 92}, {Close: 935, Volume: 120}},
			"TSLA": {{Close: 190, Volume: 85}, {Close: 188, Volume: 88}, {Close: 185, Volume: 87}, {Close: 180, Volume: 130}},
		},
	}
}

func TestService_Run(t *testing.T) {
	Convey("Given a service with default configuration", t, func() {
		svc := newService()
		ctx := context.Background()

		Convey("When running the full pipeline", func() {
			res := svc.Run(ctx, demoInput())

			Convey("Then sentiment reflects the posts", func() {
				So(res.Social, ShouldResemble, model.Scores{"AAPL": 4, "NVDA": 0, "TSLA": -2})
			})

			Convey("And every series is scored", func() {
				So(res.Popularity.Tickers(), ShouldResemble, []string{"AAPL", "NVDA", "TSLA"})
			})

			Convey("And ideas are ranked by combined score", func() {
				So(res.Ideas, ShouldHaveLength, 3)
				So(res.Ideas[0].Ticker, ShouldEqual, "AAPL")
				So(res.Ideas[1].Ticker, ShouldEqual, "NVDA")
				So(res.Ideas[2].Ticker, ShouldEqual, "TSLA")
				So(res.Ideas[0].Score, ShouldAlmostEqual, (4+res.Popularity["AAPL"])/2, 1e-9)
			})

			Convey("And the stats count each stage", func() {
				stats := svc.GetStats()
				So(stats["sentimentRuns"], ShouldEqual, int64(1))
				So(stats["popularityRuns"], ShouldEqual, int64(1))
				So(stats["ideaRuns"], ShouldEqual, int64(1))
				So(stats["ideasGenerated"], ShouldEqual, int64(3))
			})
		})

		Convey("When a request overrides the threshold", func() {
			in := demoInput()
			high := 10.0
			in.MinScore = &high
			res := svc.Run(ctx, in)

			Convey("Then only AAPL clears it", func() {
				So(res.Ideas, ShouldHaveLength, 1)
				So(res.Ideas[0].Ticker, ShouldEqual, "AAPL")
			})
		})

		Convey("When running twice on the same input", func() {
			first := svc.Run(ctx, demoInput())
			second := svc.Run(ctx, demoInput())

			Convey("Then the results are identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given a service with a configured threshold", t, func() {
		svc := newService(app.WithMinScore(9.5))

		Convey("Then runs without an override use it", func() {
			So(svc.MinScore(), ShouldEqual, 9.5)
			res := svc.Run(context.Background(), demoInput())
			So(res.Ideas, ShouldHaveLength, 1)
		})
	})
}

func TestService_Lexicon(t *testing.T) {
	Convey("Given a service with a custom positive lexicon", t, func() {
		svc := newService(app.WithLexicon([]string{"rocket"}, nil))

		Convey("Then custom words score and replaced defaults do not", func() {
			scores := svc.AnalyzeSocialPosts(context.Background(),
				[]model.SocialPost{{Text: "GME rocket bullish sell"}}, []string{"gme"})
			So(scores, ShouldResemble, model.Scores{"GME": 0})
		})
	})
}

func TestService_Stages(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := newService()
		ctx := context.Background()

		Convey("When a series is too short", func() {
			scores := svc.AnalyzePopularity(ctx, map[string]model.Series{
				"SHORT": {{Close: 1, Volume: 1}, {Close: 2, Volume: 2}},
			})

			Convey("Then it is skipped", func() {
				So(scores, ShouldBeEmpty)
			})
		})

		Convey("When generating from the scenario scores", func() {
			got := svc.GenerateIdeas(ctx, model.Scores{"AAPL": 2}, model.Scores{"AAPL": 19.54}, 1)

			Convey("Then AAPL qualifies", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Score, ShouldAlmostEqual, 10.77, 1e-9)
			})
		})
	})
}

func TestService_NonFinite(t *testing.T) {
	Convey("Given a service logging to a buffer", t, func() {
		var buf bytes.Buffer
		svc := app.New(
			app.WithLogger(logger.New(&buf)),
			app.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
		)

		Convey("When a series produces a NaN score", func() {
			scores := svc.AnalyzePopularity(context.Background(), map[string]model.Series{
				"BAD": {{Close: 1, Volume: 1}, {Close: 1, Volume: 1}, {Close: math.NaN(), Volume: 1}},
			})

			Convey("Then the score is kept and flagged", func() {
				So(math.IsNaN(scores["BAD"]), ShouldBeTrue)
				So(buf.String(), ShouldContainSubstring, "non-finite scores")
				So(svc.GetStats()["nonFiniteScores"], ShouldEqual, int64(1))
			})
		})
	})
}
