package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// PolicyKind selects how a deposit or withdrawal target is computed each
// year. Policies are rules evaluated by the cash-flow step, not amounts
// captured at apply time.
type PolicyKind string

const (
	// PolicyFixedAmount targets a configured dollar amount, optionally
	// inflation adjusted.
	PolicyFixedAmount PolicyKind = "fixed_amount"
	// PolicyPercentage targets a fraction of available free cash (deposits)
	// or of the total portfolio balance (withdrawals).
	PolicyPercentage PolicyKind = "percentage"
	// PolicyFillRoom targets whatever contribution room the ordered
	// accounts still have. Deposit policies only.
	PolicyFillRoom PolicyKind = "fill_room"
)

// DepositPolicy is the rule for annual contributions into investment
// accounts, in priority order.
type DepositPolicy struct {
	Kind              PolicyKind
	Amount            decimal.Decimal
	Percent           decimal.Decimal
	AccountOrder      []string
	InflationAdjusted bool
}

// Validate checks the policy is well formed.
func (p DepositPolicy) Validate() error {
	switch p.Kind {
	case PolicyFixedAmount:
		if p.Amount.IsNegative() {
			return validationErrorf("deposit amount cannot be negative: %s", p.Amount)
		}
	case PolicyPercentage:
		if p.Percent.IsNegative() || p.Percent.GreaterThan(decimal.NewFromInt(1)) {
			return validationErrorf("deposit percentage must be in [0, 1], got %s", p.Percent)
		}
	case PolicyFillRoom:
	default:
		return validationErrorf("unknown deposit policy kind %q", p.Kind)
	}
	if len(p.AccountOrder) == 0 {
		return validationErrorf("deposit policy requires at least one target account")
	}
	return nil
}

// ContributionForYear resolves the policy into this year's contribution
// target given the portfolio, the free cash on hand, and the year's
// inflation factor.
func (p DepositPolicy) ContributionForYear(portfolio *Portfolio, freeCash, inflationFactor decimal.Decimal) (decimal.Decimal, error) {
	if inflationFactor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, validationErrorf("inflation factor must be positive: %s", inflationFactor)
	}
	available := money.Max(freeCash, decimal.Zero)
	switch p.Kind {
	case PolicyFixedAmount:
		target := p.Amount
		if p.InflationAdjusted {
			target = target.Mul(inflationFactor)
		}
		return money.RoundCents(target), nil
	case PolicyPercentage:
		return money.RoundCents(available.Mul(p.Percent)), nil
	case PolicyFillRoom:
		return portfolio.DepositCapacity(available, p.AccountOrder)
	default:
		return decimal.Zero, validationErrorf("unknown deposit policy kind %q", p.Kind)
	}
}

// WithdrawalPolicy is the rule for annual withdrawals from investment
// accounts, in priority order.
type WithdrawalPolicy struct {
	Kind              PolicyKind
	Amount            decimal.Decimal
	Percent           decimal.Decimal
	AccountOrder      []string
	InflationAdjusted bool
}

// Validate checks the policy is well formed.
func (w WithdrawalPolicy) Validate() error {
	switch w.Kind {
	case PolicyFixedAmount:
		if w.Amount.IsNegative() {
			return validationErrorf("withdrawal amount cannot be negative: %s", w.Amount)
		}
	case PolicyPercentage:
		if w.Percent.IsNegative() || w.Percent.GreaterThan(decimal.NewFromInt(1)) {
			return validationErrorf("withdrawal percentage must be in [0, 1], got %s", w.Percent)
		}
	default:
		return validationErrorf("unknown withdrawal policy kind %q", w.Kind)
	}
	if len(w.AccountOrder) == 0 {
		return validationErrorf("withdrawal policy requires at least one source account")
	}
	return nil
}

// WithdrawalForYear resolves the policy into this year's withdrawal target.
// Percentage policies draw down a fraction of the current total balance.
func (w WithdrawalPolicy) WithdrawalForYear(portfolio *Portfolio, inflationFactor decimal.Decimal) (decimal.Decimal, error) {
	if inflationFactor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, validationErrorf("inflation factor must be positive: %s", inflationFactor)
	}
	switch w.Kind {
	case PolicyFixedAmount:
		target := w.Amount
		if w.InflationAdjusted {
			target = target.Mul(inflationFactor)
		}
		return money.RoundCents(target), nil
	case PolicyPercentage:
		return money.RoundCents(portfolio.TotalBalance().Mul(w.Percent)), nil
	default:
		return decimal.Zero, validationErrorf("unknown withdrawal policy kind %q", w.Kind)
	}
}
