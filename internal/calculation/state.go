package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// SimulationState is the single mutable aggregate advanced by the yearly
// loop. It is owned exclusively by the running simulation; events and the
// year-end step mutate it through the named transitions below.
type SimulationState struct {
	FreeCash       decimal.Decimal
	AnnualIncome   decimal.Decimal
	AnnualSpending decimal.Decimal
	Retired        bool

	DepositPolicy    *DepositPolicy
	WithdrawalPolicy *WithdrawalPolicy

	Portfolio *Portfolio
}

// NewSimulationState creates the initial state around a portfolio.
func NewSimulationState(portfolio *Portfolio) *SimulationState {
	return &SimulationState{Portfolio: portfolio}
}

// SetFreeCash overwrites the free cash balance.
func (s *SimulationState) SetFreeCash(amount decimal.Decimal) {
	s.FreeCash = money.RoundCents(amount)
}

// CreditFreeCash adds to the free cash balance (negative amounts debit).
func (s *SimulationState) CreditFreeCash(amount decimal.Decimal) {
	s.FreeCash = money.RoundCents(s.FreeCash.Add(amount))
}

// SetAnnualIncome overwrites the current annual income.
func (s *SimulationState) SetAnnualIncome(amount decimal.Decimal) {
	s.AnnualIncome = money.RoundCents(amount)
}

// SetAnnualSpending overwrites the current annual spending.
func (s *SimulationState) SetAnnualSpending(amount decimal.Decimal) {
	s.AnnualSpending = money.RoundCents(amount)
}

// SetDepositPolicy replaces the active contribution rule.
func (s *SimulationState) SetDepositPolicy(p DepositPolicy) {
	s.DepositPolicy = &p
}

// SetWithdrawalPolicy replaces the active drawdown rule.
func (s *SimulationState) SetWithdrawalPolicy(w WithdrawalPolicy) {
	s.WithdrawalPolicy = &w
}

// SetRetired marks the household retired and zeroes annual income.
func (s *SimulationState) SetRetired() {
	s.Retired = true
	s.AnnualIncome = decimal.Zero
}
