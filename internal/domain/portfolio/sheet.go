package portfolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Sheet column names. Matching is case-insensitive and column order is free.
const (
	ColumnTicker      = "ticker"
	ColumnQuantity    = "quantity"
	ColumnAverageCost = "average_cost"
)

// LoadSheet adds every row of a CSV sheet via AddPosition and returns the
// number of rows loaded. Rows before a failing one stay applied.
func (p *Portfolio) LoadSheet(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: missing header", ErrSheetFormat)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSheetFormat, err)
	}

	cols := map[string]int{ColumnTicker: -1, ColumnQuantity: -1, ColumnAverageCost: -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if idx, ok := cols[name]; ok && idx < 0 {
			cols[name] = i
		}
	}
	for _, name := range []string{ColumnTicker, ColumnQuantity, ColumnAverageCost} {
		if cols[name] < 0 {
			return 0, fmt.Errorf("%w: missing column %q", ErrSheetFormat, name)
		}
	}

	loaded := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return loaded, nil
		}
		if err != nil {
			return loaded, fmt.Errorf("%w: %w", ErrSheetFormat, err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}

		ticker := field(rec, cols[ColumnTicker])
		qty, err := decimal.NewFromString(field(rec, cols[ColumnQuantity]))
		if err != nil {
			return loaded, fmt.Errorf("%w: line %d: quantity: %w", ErrSheetFormat, line, err)
		}
		cost, err := decimal.NewFromString(field(rec, cols[ColumnAverageCost]))
		if err != nil {
			return loaded, fmt.Errorf("%w: line %d: average_cost: %w", ErrSheetFormat, line, err)
		}
		if _, err := p.AddPosition(ticker, qty, cost); err != nil {
			return loaded, fmt.Errorf("line %d: %w", line, err)
		}
		loaded++
	}
}

// LoadSheetFile opens path and loads it with LoadSheet.
func (p *Portfolio) LoadSheetFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open portfolio sheet: %w", err)
	}
	defer f.Close()
	return p.LoadSheet(f)
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
