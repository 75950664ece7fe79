// Package money converts between decimal amounts and integer cents.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseCents parses a decimal amount such as "1234.56" or "1234,56" into
// cents, rounding half-up to the nearest cent.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// FromFloat converts a float amount in units into cents.
func FromFloat(f float64) int64 {
	return decimal.NewFromFloat(f).Mul(hundred).Round(0).IntPart()
}

// Decimal returns cents as a decimal amount in units.
func Decimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders cents with two decimal places.
func Format(cents int64) string {
	return Decimal(cents).StringFixed(2)
}

// MinInstallment returns value*(1+ratePercent/100)/n in cents, rounded
// half-up. It returns 0 when n is not positive.
func MinInstallment(value int64, ratePercent float64, n int) int64 {
	if n <= 0 {
		return 0
	}
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(ratePercent).Div(hundred))
	return decimal.NewFromInt(value).
		Mul(factor).
		Div(decimal.NewFromInt(int64(n))).
		Round(0).
		IntPart()
}
