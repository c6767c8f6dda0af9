package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// TaxBracket is one rung of a progressive tax table: income above Threshold
// (up to the next bracket's threshold) is taxed at Rate.
type TaxBracket struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// BracketTable is an ordered progressive tax table. Thresholds are lower
// bounds, strictly increasing, starting at zero; the top bracket is
// unbounded.
type BracketTable []TaxBracket

// Validate checks the structural invariants of the table.
func (bt BracketTable) Validate() error {
	if len(bt) == 0 {
		return validationErrorf("bracket table is empty")
	}
	if !bt[0].Threshold.IsZero() {
		return validationErrorf("first bracket threshold must be zero, got %s", bt[0].Threshold)
	}
	for i := 1; i < len(bt); i++ {
		if bt[i].Threshold.LessThanOrEqual(bt[i-1].Threshold) {
			return validationErrorf("bracket thresholds must be strictly increasing: %s after %s",
				bt[i].Threshold, bt[i-1].Threshold)
		}
	}
	for _, b := range bt {
		if b.Rate.IsNegative() {
			return validationErrorf("bracket rate cannot be negative: %s", b.Rate)
		}
	}
	return nil
}

// ComputeTax returns the total progressive tax owed on taxableIncome under
// the given table. Bracket thresholds are scaled by inflationAdjustment
// before comparison; rates are not. The table is jurisdiction-agnostic.
func ComputeTax(taxableIncome decimal.Decimal, table BracketTable, inflationAdjustment decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, validationErrorf("taxable income cannot be negative: %s", taxableIncome)
	}
	if err := table.Validate(); err != nil {
		return decimal.Zero, err
	}
	if inflationAdjustment.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, validationErrorf("inflation adjustment must be positive: %s", inflationAdjustment)
	}

	tax := decimal.Zero
	for i, bracket := range table {
		lower := bracket.Threshold.Mul(inflationAdjustment)
		if taxableIncome.LessThanOrEqual(lower) {
			break
		}
		top := taxableIncome
		if i+1 < len(table) {
			upper := table[i+1].Threshold.Mul(inflationAdjustment)
			top = money.Min(taxableIncome, upper)
		}
		tax = tax.Add(top.Sub(lower).Mul(bracket.Rate))
	}
	return money.RoundCents(tax), nil
}

// ComputeCombinedTax sums the tax owed under each table independently, the
// way federal and provincial liabilities combine.
func ComputeCombinedTax(taxableIncome decimal.Decimal, tables []BracketTable, inflationAdjustment decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, table := range tables {
		tax, err := ComputeTax(taxableIncome, table, inflationAdjustment)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(tax)
	}
	return money.RoundCents(total), nil
}
