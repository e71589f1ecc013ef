// Package sentiment scores ticker mentions in free-text posts with a
// fixed polarity lexicon.
package sentiment

import (
	"strings"

	"github.com/okian/stocksanalyzer/internal/domain/model"
)

// punctuation is stripped from both ends of every token.
const punctuation = `.,!?;:()[]{}"`

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithLexicon replaces the default word lists. Empty lists keep the
// corresponding default list.
func WithLexicon(positive, negative []string) Option {
	return func(a *Analyzer) {
		if len(positive) == 0 {
			positive = defaultPositive
		}
		if len(negative) == 0 {
			negative = defaultNegative
		}
		a.lexicon = NewLexicon(positive, negative)
	}
}

// Analyzer attributes post sentiment to tracked tickers. It is immutable
// after construction and safe for concurrent use.
type Analyzer struct {
	lexicon Lexicon
}

// NewAnalyzer creates an analyzer with the default lexicon.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{lexicon: DefaultLexicon()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// token is a whitespace-delimited word with punctuation trimmed.
type token struct {
	upper string // ticker matching
	lower string // polarity matching
}

func tokenize(text string) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, punctuation)
		out = append(out, token{upper: strings.ToUpper(f), lower: strings.ToLower(f)})
	}
	return out
}

// trackedSet uppercases tickers and drops blanks.
func trackedSet(tickers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// PostScore returns positives minus negatives for one post.
func (a *Analyzer) PostScore(post model.SocialPost) int {
	score := 0
	for _, tok := range tokenize(post.Text) {
		score += int(a.lexicon.Polarity(tok.lower))
	}
	return score
}

// Analyze sums, per tracked ticker, the post score times the number of
// times the post mentions the ticker. Tickers never mentioned are absent.
func (a *Analyzer) Analyze(posts []model.SocialPost, tracked []string) model.Scores {
	set := trackedSet(tracked)
	scores := make(model.Scores)

	for _, post := range posts {
		tokens := tokenize(post.Text)

		postScore := 0
		mentions := make(map[string]int)
		for _, tok := range tokens {
			postScore += int(a.lexicon.Polarity(tok.lower))
			if tok.upper == "" {
				continue
			}
			if _, ok := set[tok.upper]; ok {
				mentions[tok.upper]++
			}
		}

		for ticker, count := range mentions {
			scores[ticker] += float64(postScore * count)
		}
	}

	return scores
}
