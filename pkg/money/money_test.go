package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	assert.Equal(t, "10.56", RoundCents(decimal.NewFromFloat(10.555)).String())
	assert.Equal(t, "10.55", RoundCents(decimal.NewFromFloat(10.554)).String())
	assert.Equal(t, "-10.56", RoundCents(decimal.NewFromFloat(-10.555)).String())
	assert.Equal(t, "100", RoundCents(decimal.NewFromInt(100)).String())
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{999.99, "$999.99"},
		{1000, "$1,000.00"},
		{1234567.89, "$1,234,567.89"},
		{-1234.5, "-$1,234.50"},
		{-0.01, "-$0.01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(decimal.NewFromFloat(tt.amount)))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "5.00%", FormatPercent(decimal.NewFromFloat(0.05)))
	assert.Equal(t, "13.16%", FormatPercent(decimal.NewFromFloat(0.1316)))
	assert.Equal(t, "0.00%", FormatPercent(decimal.Zero))
}

func TestInflationFactor(t *testing.T) {
	rate := decimal.NewFromFloat(0.02)

	assert.True(t, decimal.NewFromInt(1).Equal(InflationFactor(rate, 0)))
	assert.True(t, decimal.NewFromInt(1).Equal(InflationFactor(rate, -3)))
	assert.True(t, decimal.NewFromFloat(1.02).Equal(InflationFactor(rate, 1)))
	assert.True(t, decimal.NewFromFloat(1.0404).Equal(InflationFactor(rate, 2)))
	assert.True(t, decimal.NewFromFloat(1.061208).Equal(InflationFactor(rate, 3)))

	// Zero inflation keeps every year at factor 1.
	assert.True(t, decimal.NewFromInt(1).Equal(InflationFactor(decimal.Zero, 40)))

	// Deflation shrinks the factor below 1.
	deflated := InflationFactor(decimal.NewFromFloat(-0.01), 2)
	assert.True(t, deflated.LessThan(decimal.NewFromInt(1)))
	assert.True(t, decimal.NewFromFloat(0.9801).Equal(deflated))
}

func TestDeflateToYearZero(t *testing.T) {
	amount := decimal.NewFromInt(10404)
	factor := decimal.NewFromFloat(1.0404)
	assert.True(t, decimal.NewFromInt(10000).Equal(DeflateToYearZero(amount, factor)))

	// Factor 1 is the identity; a zero factor passes the amount through.
	assert.True(t, amount.Equal(DeflateToYearZero(amount, decimal.NewFromInt(1))))
	assert.True(t, amount.Equal(DeflateToYearZero(amount, decimal.Zero)))
}

func TestMinMax(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(7)
	assert.True(t, a.Equal(Min(a, b)))
	assert.True(t, a.Equal(Min(b, a)))
	assert.True(t, b.Equal(Max(a, b)))
	assert.True(t, b.Equal(Max(b, a)))
	assert.True(t, a.Equal(Min(a, a)))
}
