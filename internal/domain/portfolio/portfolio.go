// Package portfolio tracks held positions, their blended cost and a journal
// of narrative updates per ticker.
package portfolio

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSource is recorded when an update names no source.
const DefaultSource = "manual"

// Update is a timestamped note attached to a position.
type Update struct {
	Timestamp time.Time
	Note      string
	Source    string
}

// Position is a holding with its average cost and update journal.
type Position struct {
	Ticker      string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	Updates     []Update
}

// CostBasis returns quantity times average cost.
func (p *Position) CostBasis() decimal.Decimal {
	return p.Quantity.Mul(p.AverageCost)
}

// Option applies a configuration option to the Portfolio.
type Option func(*Portfolio)

// WithClock sets the time source for update timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Portfolio) {
		if now != nil {
			p.now = now
		}
	}
}

// Portfolio is a set of positions keyed by uppercase ticker. It is safe for
// concurrent use.
type Portfolio struct {
	mu        sync.RWMutex
	positions map[string]*Position
	now       func() time.Time
}

// New creates an empty portfolio.
func New(opts ...Option) *Portfolio {
	p := &Portfolio{
		positions: make(map[string]*Position),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// AddPosition buys quantity at averageCost. Adding to an existing ticker
// blends the cost weighted by quantity. The returned position is a copy.
func (p *Portfolio) AddPosition(ticker string, quantity, averageCost decimal.Decimal) (Position, error) {
	ticker = normalize(ticker)
	if ticker == "" {
		return Position{}, ErrEmptyTicker
	}
	if !quantity.IsPositive() {
		return Position{}, fmt.Errorf("%s: %w: %s", ticker, ErrInvalidQuantity, quantity)
	}
	if !averageCost.IsPositive() {
		return Position{}, fmt.Errorf("%s: %w: %s", ticker, ErrInvalidCost, averageCost)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.positions[ticker]
	if !ok {
		pos = &Position{Ticker: ticker, Quantity: quantity, AverageCost: averageCost}
		p.positions[ticker] = pos
		return pos.clone(), nil
	}

	total := pos.Quantity.Add(quantity)
	pos.AverageCost = pos.CostBasis().Add(quantity.Mul(averageCost)).Div(total)
	pos.Quantity = total
	return pos.clone(), nil
}

// AddUpdate appends a note to an existing position. An empty source is
// recorded as DefaultSource.
func (p *Portfolio) AddUpdate(ticker, note, source string) (Update, error) {
	ticker = normalize(ticker)
	if source == "" {
		source = DefaultSource
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.positions[ticker]
	if !ok {
		return Update{}, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}
	u := Update{Timestamp: p.now().UTC(), Note: note, Source: source}
	pos.Updates = append(pos.Updates, u)
	return u, nil
}

// Position returns a copy of the position for ticker.
func (p *Portfolio) Position(ticker string) (Position, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pos, ok := p.positions[normalize(ticker)]
	if !ok {
		return Position{}, false
	}
	return pos.clone(), true
}

// Tickers returns held tickers in ascending order.
func (p *Portfolio) Tickers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.positions))
	for t := range p.positions {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TotalCostBasis sums the cost basis of every position.
func (p *Portfolio) TotalCostBasis() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := decimal.Zero
	for _, pos := range p.positions {
		total = total.Add(pos.CostBasis())
	}
	return total
}

// UpdateView is the serializable form of an Update.
type UpdateView struct {
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
	Source    string `json:"source"`
}

// PositionView is the serializable form of a Position.
type PositionView struct {
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	CostBasis   decimal.Decimal `json:"cost_basis"`
	Updates     []UpdateView    `json:"updates"`
}

// Snapshot returns every position keyed by ticker, with RFC3339 timestamps.
func (p *Portfolio) Snapshot() map[string]PositionView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]PositionView, len(p.positions))
	for t, pos := range p.positions {
		updates := make([]UpdateView, 0, len(pos.Updates))
		for _, u := range pos.Updates {
			updates = append(updates, UpdateView{
				Timestamp: u.Timestamp.Format(time.RFC3339),
				Note:      u.Note,
				Source:    u.Source,
			})
		}
		out[t] = PositionView{
			Quantity:    pos.Quantity,
			AverageCost: pos.AverageCost,
			CostBasis:   pos.CostBasis(),
			Updates:     updates,
		}
	}
	return out
}

func (p *Position) clone() Position {
	c := *p
	c.Updates = slices.Clone(p.Updates)
	return c
}
