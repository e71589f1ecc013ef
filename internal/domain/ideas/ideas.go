// Package ideas merges sentiment and popularity scores into ranked trade ideas.
package ideas

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/okian/stocksanalyzer/internal/domain/model"
)

// Synthesis constants.
const (
	DefaultMinScore  = 1.0
	SocialWeight     = 0.5
	PopularityWeight = 0.5
)

// rationaleFormat is part of the output contract; keep it stable.
const rationaleFormat = "Social sentiment=%.2f, popularity/momentum=%.2f; combined score crossed threshold."

// Combine returns the equal-weighted score of the two signals.
func Combine(social, popularity float64) float64 {
	return social*SocialWeight + popularity*PopularityWeight
}

// Rationale explains why a ticker qualified.
func Rationale(social, popularity float64) string {
	return fmt.Sprintf(rationaleFormat, social, popularity)
}

// Generate returns an idea for every ticker in either map whose combined
// score is at least minScore. A missing signal counts as 0. Ideas are
// ordered by score descending, then ticker ascending.
func Generate(social, popularity model.Scores, minScore float64) []model.TradeIdea {
	tickers := make(map[string]struct{}, len(social)+len(popularity))
	for t := range social {
		tickers[t] = struct{}{}
	}
	for t := range popularity {
		tickers[t] = struct{}{}
	}

	out := make([]model.TradeIdea, 0, len(tickers))
	for t := range tickers {
		s := social[t]
		p := popularity[t]
		total := Combine(s, p)
		if total >= minScore {
			out = append(out, model.TradeIdea{Ticker: t, Score: total, Rationale: Rationale(s, p)})
		}
	}

	slices.SortFunc(out, func(a, b model.TradeIdea) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Ticker, b.Ticker)
	})
	return out
}
