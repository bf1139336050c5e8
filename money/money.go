// Package money provides the pure discount and tax arithmetic used by the
// cart. All functions operate on decimals at full precision; rounding is
// applied by callers at output boundaries via Round.
package money

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Rounding selects how amounts are rounded at output boundaries.
type Rounding string

const (
	// RoundNearest rounds half away from zero to 2 decimal places.
	RoundNearest Rounding = "round"
	// RoundFloor rounds down to a whole unit.
	RoundFloor Rounding = "floor"
	// RoundCeil rounds up to a whole unit.
	RoundCeil Rounding = "ceil"
)

// ParseRounding parses a rounding mode name, case-insensitively.
func ParseRounding(s string) (Rounding, error) {
	switch Rounding(strings.ToLower(s)) {
	case RoundNearest:
		return RoundNearest, nil
	case RoundFloor:
		return RoundFloor, nil
	case RoundCeil:
		return RoundCeil, nil
	default:
		return "", errors.Errorf("unsupported rounding mode: %q", s)
	}
}

// Round applies the rounding mode to the given amount. Unknown modes fall
// back to RoundNearest.
func Round(mode Rounding, d decimal.Decimal) decimal.Decimal {
	switch mode {
	case RoundFloor:
		return d.Floor()
	case RoundCeil:
		return d.Ceil()
	default:
		return d.Round(2)
	}
}
