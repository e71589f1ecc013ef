package ideas_test

import (
	"math"
	"testing"

	"github.com/okian/stocksanalyzer/internal/domain/ideas"
	"github.com/okian/stocksanalyzer/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func tickersOf(in []model.TradeIdea) []string {
	out := make([]string, len(in))
	for i, idea := range in {
		out[i] = idea.Ticker
	}
	return out
}

func TestGenerate(t *testing.T) {
	Convey("Given AAPL sentiment and popularity", t, func() {
		social := model.Scores{"AAPL": 2}
		pop := model.Scores{"AAPL": 19.54}

		Convey("When generating ideas with the default threshold", func() {
			got := ideas.Generate(social, pop, ideas.DefaultMinScore)

			Convey("Then AAPL qualifies with the averaged score", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Ticker, ShouldEqual, "AAPL")
				So(got[0].Score, ShouldAlmostEqual, 10.77, 1e-9)
			})

			Convey("And the rationale reports both components", func() {
				So(got[0].Rationale, ShouldEqual,
					"Social sentiment=2.00, popularity/momentum=19.54; combined score crossed threshold.")
			})
		})
	})

	Convey("Given tickers known to only one signal", t, func() {
		social := model.Scores{"GME": 4}
		pop := model.Scores{"NVDA": 6}

		Convey("Then the missing signal counts as zero", func() {
			got := ideas.Generate(social, pop, 1)
			So(tickersOf(got), ShouldResemble, []string{"NVDA", "GME"})
			So(got[0].Score, ShouldEqual, 3)
			So(got[1].Score, ShouldEqual, 2)
			So(got[1].Rationale, ShouldContainSubstring, "popularity/momentum=0.00")
		})
	})

	Convey("Given a combined score exactly at the threshold", t, func() {
		social := model.Scores{"EDGE": 1, "LOW": 0.5}
		pop := model.Scores{"EDGE": 1, "LOW": 1.49}

		Convey("Then it qualifies and a lower score does not", func() {
			got := ideas.Generate(social, pop, 1)
			So(tickersOf(got), ShouldResemble, []string{"EDGE"})
		})
	})

	Convey("Given equal combined scores", t, func() {
		social := model.Scores{"MSFT": 4, "AAPL": 2, "ZM": 6}
		pop := model.Scores{"MSFT": 0, "AAPL": 2, "AMD": 8}

		Convey("Then ties break by ticker ascending", func() {
			got := ideas.Generate(social, pop, 1)
			So(tickersOf(got), ShouldResemble, []string{"AMD", "ZM", "AAPL", "MSFT"})
		})

		Convey("And repeated runs return the same order", func() {
			first := ideas.Generate(social, pop, 1)
			for i := 0; i < 20; i++ {
				So(ideas.Generate(social, pop, 1), ShouldResemble, first)
			}
		})
	})

	Convey("Given negative scores and a negative threshold", t, func() {
		social := model.Scores{"TSLA": -2}
		pop := model.Scores{"TSLA": -1}

		Convey("Then the threshold still applies inclusively", func() {
			So(ideas.Generate(social, pop, -1.5), ShouldHaveLength, 1)
			So(ideas.Generate(social, pop, -1.4), ShouldBeEmpty)
		})
	})

	Convey("Given empty inputs", t, func() {
		Convey("Then there are no ideas", func() {
			So(ideas.Generate(nil, nil, 1), ShouldBeEmpty)
		})
	})

	Convey("Given a NaN score", t, func() {
		social := model.Scores{"NAN": math.NaN(), "OK": 4}

		Convey("Then it never clears the threshold", func() {
			So(tickersOf(ideas.Generate(social, nil, 1)), ShouldResemble, []string{"OK"})
		})
	})

	Convey("Given a range of thresholds", t, func() {
		social := model.Scores{"A": 1, "B": 3, "C": 5, "D": -2}
		pop := model.Scores{"A": 2, "B": 0, "C": 1, "E": 7}

		Convey("Then no returned idea falls below its threshold", func() {
			for _, min := range []float64{-5, 0, 1, 1.5, 3, 3.5, 10} {
				for _, idea := range ideas.Generate(social, pop, min) {
					So(idea.Score, ShouldBeGreaterThanOrEqualTo, min)
				}
			}
		})
	})
}

func TestCombine(t *testing.T) {
	Convey("Given two signals", t, func() {
		Convey("Then they are averaged", func() {
			So(ideas.Combine(2, 19.54), ShouldAlmostEqual, 10.77, 1e-9)
			So(ideas.Combine(-4, 4), ShouldEqual, 0)
		})
	})
}
