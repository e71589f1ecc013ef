package demo

import (
	"github.com/okian/stocksanalyzer/internal/domain/model"
)

// Tracked lists the tickers the sample posts are scanned for.
var Tracked = []string{"AAPL", "NVDA", "TSLA"}

type seed struct {
	ticker   string
	quantity string
	cost     string
	note     string
}

// sample positions used when no sheet is given.
var seedPositions = []seed{
	{ticker: "AAPL", quantity: "10", cost: "180"},
	{ticker: "NVDA", quantity: "5", cost: "900"},
}

// journal entries added after positions are loaded.
var seedUpdates = []seed{
	{ticker: "AAPL", note: "Added on pullback after earnings"},
	{ticker: "NVDA", note: "Watching AI demand trend"},
}

const journalSource = "journal"

// Posts returns the sample social posts.
func Posts() []model.SocialPost {
	return []model.SocialPost{
		{Text: "AAPL looks strong buy into next quarter"},
		{Text: "NVDA bullish but high risk after huge run"},
		{Text: "AAPL upgrade and growth momentum"},
		{Text: "TSLA weak delivery numbers, bearish reaction"},
	}
}

// History returns four sessions of sample price and volume per ticker.
func History() map[string]model.Series {
	return map[string]model.Series{
		"AAPL": {{Close: 178, Volume: 100}, {Close: 179, Volume: 95}, {Close: 181, Volume: 98}, {Close: 185, Volume: 140}},
		"NVDA": {{Close: 870, Volume: 80}, {Close: 890, Volume: 90}, {Close: 910, Volume: 92}, {Close: 935, Volume: 120}},
		"TSLA": {{Close: 190, Volume: 85}, {Close: 188, Volume: 88}, {Close: 185, Volume: 87}, {Close: 180, Volume: 130}},
	}
}
