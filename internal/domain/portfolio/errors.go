package portfolio

import "errors"

// Error constants.
var (
	ErrEmptyTicker     = errors.New("ticker is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidCost     = errors.New("average cost must be positive")
	ErrUnknownTicker   = errors.New("ticker not found in portfolio")
	ErrSheetFormat     = errors.New("invalid portfolio sheet")
)
