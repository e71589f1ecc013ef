package sentiment

import "strings"

// Default polarity words.
var (
	defaultPositive = []string{"buy", "bullish", "moon", "strong", "growth", "up", "beat", "upgrade"}
	defaultNegative = []string{"sell", "bearish", "weak", "down", "miss", "downgrade", "risk"}
)

// Polarity classifies a word.
type Polarity int

// Polarity values.
const (
	Neutral  Polarity = 0
	Positive Polarity = 1
	Negative Polarity = -1
)

// Lexicon is a read-only set of polarity words. Words are stored lowercase.
type Lexicon struct {
	words map[string]Polarity
}

// NewLexicon builds a lexicon from positive and negative word lists.
// Repeats within a list count once. A word listed in both lists nets zero.
func NewLexicon(positive, negative []string) Lexicon {
	words := make(map[string]Polarity, len(positive)+len(negative))
	add := func(list []string, p Polarity) {
		seen := make(map[string]struct{}, len(list))
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if _, dup := seen[w]; dup || w == "" {
				continue
			}
			seen[w] = struct{}{}
			words[w] += p
		}
	}
	add(positive, Positive)
	add(negative, Negative)
	return Lexicon{words: words}
}

// DefaultLexicon returns the built-in word lists.
func DefaultLexicon() Lexicon {
	return NewLexicon(defaultPositive, defaultNegative)
}

// Polarity returns the polarity of an already lowercased word.
func (l Lexicon) Polarity(lower string) Polarity {
	return l.words[lower]
}

// Len returns the number of distinct words.
func (l Lexicon) Len() int { return len(l.words) }
