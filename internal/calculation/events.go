package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// Event is a one-shot state mutation resolved at the start of a simulation
// year. Events capture their parameters at construction and apply them to
// the state given the year's context; malformed construction fails fast at
// apply time.
type Event interface {
	Apply(state *SimulationState, ctx YearContext) error
}

// SetAnnualIncomeEvent sets the annual income for the current year,
// optionally scaling the amount by the year's inflation factor.
type SetAnnualIncomeEvent struct {
	Amount            decimal.Decimal
	InflationAdjusted bool
}

func (e SetAnnualIncomeEvent) Apply(state *SimulationState, ctx YearContext) error {
	if e.Amount.IsNegative() {
		return validationErrorf("annual income cannot be negative: %s", e.Amount)
	}
	amount := e.Amount
	if e.InflationAdjusted {
		amount = amount.Mul(ctx.Factor)
	}
	state.SetAnnualIncome(amount)
	return nil
}

// SetAnnualSpendingEvent sets the annual spending for the current year,
// optionally scaling the amount by the year's inflation factor.
type SetAnnualSpendingEvent struct {
	Amount            decimal.Decimal
	InflationAdjusted bool
}

func (e SetAnnualSpendingEvent) Apply(state *SimulationState, ctx YearContext) error {
	if e.Amount.IsNegative() {
		return validationErrorf("annual spending cannot be negative: %s", e.Amount)
	}
	amount := e.Amount
	if e.InflationAdjusted {
		amount = amount.Mul(ctx.Factor)
	}
	state.SetAnnualSpending(amount)
	return nil
}

// SetDepositPolicyEvent replaces the active contribution rule. The rule is
// evaluated by the cash-flow step each year, not at apply time.
type SetDepositPolicyEvent struct {
	Policy DepositPolicy
}

func (e SetDepositPolicyEvent) Apply(state *SimulationState, _ YearContext) error {
	if err := e.Policy.Validate(); err != nil {
		return err
	}
	state.SetDepositPolicy(e.Policy)
	return nil
}

// SetWithdrawalPolicyEvent replaces the active drawdown rule.
type SetWithdrawalPolicyEvent struct {
	Policy WithdrawalPolicy
}

func (e SetWithdrawalPolicyEvent) Apply(state *SimulationState, _ YearContext) error {
	if err := e.Policy.Validate(); err != nil {
		return err
	}
	state.SetWithdrawalPolicy(e.Policy)
	return nil
}

// SetRetirementEvent marks the household retired and zeroes annual income.
// When configured with a withdrawal policy it also switches the drawdown
// rule.
type SetRetirementEvent struct {
	WithdrawalPolicy *WithdrawalPolicy
}

func (e SetRetirementEvent) Apply(state *SimulationState, _ YearContext) error {
	if e.WithdrawalPolicy != nil {
		if err := e.WithdrawalPolicy.Validate(); err != nil {
			return err
		}
		state.SetWithdrawalPolicy(*e.WithdrawalPolicy)
	}
	state.SetRetired()
	return nil
}

// SetInvestmentAccountValuesEvent initializes or overwrites one account's
// starting balance, contribution room, and cost basis. Typically scheduled
// once at the timeline's first bucket.
type SetInvestmentAccountValuesEvent struct {
	AccountID        string
	Balance          *decimal.Decimal
	ContributionRoom *decimal.Decimal
	CostBasis        *decimal.Decimal
}

func (e SetInvestmentAccountValuesEvent) Apply(state *SimulationState, _ YearContext) error {
	account, err := state.Portfolio.Account(e.AccountID)
	if err != nil {
		return validationErrorf("unknown account %q", e.AccountID)
	}
	if e.Balance != nil && e.Balance.IsNegative() {
		return validationErrorf("account balance cannot be negative: %s", e.Balance)
	}
	if e.ContributionRoom != nil && e.ContributionRoom.IsNegative() {
		return validationErrorf("contribution room cannot be negative: %s", e.ContributionRoom)
	}
	if e.CostBasis != nil && e.CostBasis.IsNegative() {
		return validationErrorf("cost basis cannot be negative: %s", e.CostBasis)
	}
	account.resetOpeningState(e.Balance, e.ContributionRoom, e.CostBasis)
	return nil
}

// SetFreeCashEvent initializes the free cash balance. Typically scheduled
// once at the timeline's first bucket.
type SetFreeCashEvent struct {
	Amount decimal.Decimal
}

func (e SetFreeCashEvent) Apply(state *SimulationState, _ YearContext) error {
	if e.Amount.IsNegative() {
		return validationErrorf("free cash cannot be negative: %s", e.Amount)
	}
	state.SetFreeCash(money.RoundCents(e.Amount))
	return nil
}
