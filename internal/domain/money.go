package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is an amount of money in integer minor units (US cents). Every
// monetary value crossing the engine boundary is Cents; internal arithmetic
// is done in decimal dollars and converted back at the edge.
type Cents int64

var centsPerDollar = decimal.NewFromInt(100)

// Dollars converts the amount to decimal dollars for internal arithmetic.
func (c Cents) Dollars() decimal.Decimal {
	return decimal.NewFromInt(int64(c)).Div(centsPerDollar)
}

// CentsFromDollars converts decimal dollars back to integer cents, rounding
// half away from zero.
func CentsFromDollars(d decimal.Decimal) Cents {
	return Cents(d.Mul(centsPerDollar).Round(0).IntPart())
}

// String renders the amount as a fixed two-decimal dollar figure.
func (c Cents) String() string {
	return "$" + c.Dollars().StringFixed(2)
}

// IsNegative reports whether the amount is below zero.
func (c Cents) IsNegative() bool { return c < 0 }

// Annual converts a monthly amount to its annual equivalent.
func (c Cents) Annual() Cents { return c * 12 }

// FractionToPercent converts an internal 0-1 fraction to a boundary 0-100
// percentage.
func FractionToPercent(f decimal.Decimal) decimal.Decimal {
	return f.Mul(decimal.NewFromInt(100))
}

// MustDecimal parses a decimal literal used in rule tables, panicking on
// malformed constants. Only for package-level table construction.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("bad decimal constant %q: %v", s, err))
	}
	return d
}
