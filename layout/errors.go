package layout

import "errors"

// Sentinel errors for layout configuration problems.
var (
	ErrInvalidBudget = errors.New("layout: invalid page budget")
	ErrUnknownPreset = errors.New("layout: unknown budget preset")
	ErrInvalidConfig = errors.New("layout: invalid layout file")
)
