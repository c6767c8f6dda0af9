// Package domain holds the plan configuration consumed by the simulation
// and the per-year snapshot records it produces.
package domain

import (
	"github.com/shopspring/decimal"
)

// PlanConfig is the root of a plan file: the simulated age range, global
// assumptions, starting accounts, and the scheduled events.
type PlanConfig struct {
	StartAge         int             `yaml:"start_age" json:"start_age"`
	EndAge           int             `yaml:"end_age" json:"end_age"`
	InflationRate    decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	LiquidationYears int             `yaml:"liquidation_years" json:"liquidation_years"`
	InitialFreeCash  decimal.Decimal `yaml:"initial_free_cash" json:"initial_free_cash"`
	Accounts         []AccountConfig `yaml:"accounts" json:"accounts"`
	Events           []EventConfig   `yaml:"events" json:"events"`
}

// AccountConfig declares one investment account and its starting state.
type AccountConfig struct {
	ID               string           `yaml:"id" json:"id"`
	Type             string           `yaml:"type" json:"type"` // tfsa, rrsp, unregistered
	Asset            AssetConfig      `yaml:"asset" json:"asset"`
	Balance          decimal.Decimal  `yaml:"balance" json:"balance"`
	ContributionRoom decimal.Decimal  `yaml:"contribution_room" json:"contribution_room"`
	CostBasis        *decimal.Decimal `yaml:"cost_basis,omitempty" json:"cost_basis,omitempty"`
}

// AssetConfig declares how an account's holdings generate returns.
type AssetConfig struct {
	Class      string          `yaml:"class" json:"class"` // fixed_income, global_equity_index
	GrowthRate decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	IncomeRate decimal.Decimal `yaml:"income_rate" json:"income_rate"`
}

// PolicyConfig declares a deposit or withdrawal rule.
type PolicyConfig struct {
	Kind              string          `yaml:"kind" json:"kind"` // fixed_amount, percentage, fill_room
	Amount            decimal.Decimal `yaml:"amount" json:"amount"`
	Percent           decimal.Decimal `yaml:"percent" json:"percent"`
	AccountOrder      []string        `yaml:"account_order" json:"account_order"`
	InflationAdjusted bool            `yaml:"inflation_adjusted" json:"inflation_adjusted"`
}

// EventConfig schedules one event at an age, or across a closed age range
// when end_age is set.
type EventConfig struct {
	Age    int    `yaml:"age" json:"age"`
	EndAge *int   `yaml:"end_age,omitempty" json:"end_age,omitempty"`
	Kind   string `yaml:"kind" json:"kind"`

	// set_annual_income, set_annual_spending, set_free_cash
	Amount            decimal.Decimal `yaml:"amount" json:"amount"`
	InflationAdjusted bool            `yaml:"inflation_adjusted" json:"inflation_adjusted"`

	// set_deposit_policy, set_withdrawal_policy, set_retirement
	Policy *PolicyConfig `yaml:"policy,omitempty" json:"policy,omitempty"`

	// set_account_values
	AccountID        string           `yaml:"account_id,omitempty" json:"account_id,omitempty"`
	Balance          *decimal.Decimal `yaml:"balance,omitempty" json:"balance,omitempty"`
	ContributionRoom *decimal.Decimal `yaml:"contribution_room,omitempty" json:"contribution_room,omitempty"`
	CostBasis        *decimal.Decimal `yaml:"cost_basis,omitempty" json:"cost_basis,omitempty"`
}

// Event kinds accepted in plan files.
const (
	EventSetAnnualIncome     = "set_annual_income"
	EventSetAnnualSpending   = "set_annual_spending"
	EventSetDepositPolicy    = "set_deposit_policy"
	EventSetWithdrawalPolicy = "set_withdrawal_policy"
	EventSetRetirement       = "set_retirement"
	EventSetAccountValues    = "set_account_values"
	EventSetFreeCash         = "set_free_cash"
)
