package money

import (
	"github.com/shopspring/decimal"
)

// Amounts are stored as integer milliunits (1/1000 of the major currency
// unit): $10.50 -> 10500. Three decimals cover sub-cent pricing and keep the
// representation cross-language safe.

var thousand = decimal.NewFromInt(1000)

// ToMilliunits converts a display amount to milliunits, rounding half away
// from zero. This is the only path that produces stored amounts, so stored
// values are always whole milliunits.
func ToMilliunits(d decimal.Decimal) int64 {
	return d.Mul(thousand).Round(0).IntPart()
}

// FromMilliunits converts a stored amount back to a display amount.
func FromMilliunits(m int64) decimal.Decimal {
	return decimal.NewFromInt(m).Div(thousand)
}

// ParseAmount parses a decimal string ("10.5", "-588.74") into milliunits.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return ToMilliunits(d), nil
}
