// Package model contains domain models passed between layers.
package model

import (
	"math"
	"slices"
)

// SocialPost is a free-text post. Text is kept as supplied; scorers normalize it.
type SocialPost struct {
	Text string `json:"text"`
}

// MarketPoint is one close/volume sample of a ticker.
type MarketPoint struct {
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Series is a chronological, oldest-first list of samples for one ticker.
// The last element is the current sample, every earlier one is baseline.
type Series []MarketPoint

// Current returns the latest sample and false for an empty series.
func (s Series) Current() (MarketPoint, bool) {
	if len(s) == 0 {
		return MarketPoint{}, false
	}
	return s[len(s)-1], true
}

// Baseline returns every sample but the latest.
func (s Series) Baseline() Series {
	if len(s) == 0 {
		return nil
	}
	return s[:len(s)-1]
}

// Scores maps an uppercase ticker to a signed score. A ticker that was never
// scored is absent, which is different from a ticker scored at 0.
type Scores map[string]float64

// Lookup reports the score for ticker and whether it was scored at all.
func (s Scores) Lookup(ticker string) (float64, bool) {
	v, ok := s[ticker]
	return v, ok
}

// Tickers returns the scored tickers in ascending order.
func (s Scores) Tickers() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// NonFinite returns the tickers whose score is NaN or infinite, sorted.
func (s Scores) NonFinite() []string {
	var out []string
	for t, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}

// TradeIdea is a ticker whose combined score cleared the threshold.
type TradeIdea struct {
	Ticker    string  `json:"ticker"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}
