// Package money provides shared helpers for decimal currency arithmetic:
// cent rounding, display formatting, and inflation factor math used across
// the simulation and its output layers.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatCurrency formats a decimal as currency with a dollar sign and
// thousands separators, e.g. "$1,234,567.89".
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("$")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent formats a decimal rate (0.05) as a percentage ("5.00%").
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// InflationFactor returns (1 + rate)^yearIndex, the multiplier converting
// year-zero dollars into nominal dollars for the given year. Year zero has a
// factor of exactly 1.
func InflationFactor(rate decimal.Decimal, yearIndex int) decimal.Decimal {
	if yearIndex <= 0 {
		return decimal.NewFromInt(1)
	}
	base := decimal.NewFromInt(1).Add(rate)
	return base.Pow(decimal.NewFromInt(int64(yearIndex)))
}

// DeflateToYearZero converts a nominal amount into year-zero dollars given
// the inflation factor of its year.
func DeflateToYearZero(amount, factor decimal.Decimal) decimal.Decimal {
	if factor.IsZero() {
		return amount
	}
	return RoundCents(amount.Div(factor))
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
