package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// AccountType tags the tax treatment of an investment account.
type AccountType string

const (
	AccountTFSA         AccountType = "tfsa"
	AccountRRSP         AccountType = "rrsp"
	AccountUnregistered AccountType = "unregistered"
)

// AssetClass tags how an account's holdings generate returns.
type AssetClass string

const (
	// AssetFixedIncome produces interest income only, no capital growth.
	AssetFixedIncome AssetClass = "fixed_income"
	// AssetGlobalEquityIndex splits the year's return between capital
	// growth and distributed income.
	AssetGlobalEquityIndex AssetClass = "global_equity_index"
)

// AssetProfile describes the return generation of an account's holdings.
// For fixed income only IncomeRate is used; for equity the year's return is
// GrowthRate capital appreciation plus IncomeRate distributions.
type AssetProfile struct {
	Class      AssetClass
	GrowthRate decimal.Decimal
	IncomeRate decimal.Decimal
}

// Validate checks the profile is well formed.
func (a AssetProfile) Validate() error {
	switch a.Class {
	case AssetFixedIncome:
		if !a.GrowthRate.IsZero() {
			return validationErrorf("fixed income asset cannot have a growth rate")
		}
	case AssetGlobalEquityIndex:
	default:
		return validationErrorf("unknown asset class %q", a.Class)
	}
	return nil
}

// Returns is one year's investment return, split between capital
// appreciation and distributed income.
type Returns struct {
	Growth decimal.Decimal `json:"growth"`
	Income decimal.Decimal `json:"income"`
}

// TaxImpact is the contribution of one account's annual activity to the
// year-end tax computation.
type TaxImpact struct {
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	Deductions    decimal.Decimal `json:"deductions"`
}

// Account is a single investment account: balance, contribution room
// (registered types only), and running totals of the current year's
// activity. Tax and room rules are selected by Type.
type Account struct {
	ID    string
	Type  AccountType
	Asset AssetProfile

	Balance          decimal.Decimal
	ContributionRoom decimal.Decimal
	CostBasis        decimal.Decimal // unregistered only

	YearStartBalance decimal.Decimal
	Deposits         decimal.Decimal
	Withdrawals      decimal.Decimal

	// Realized capital activity for the current year (unregistered only).
	// Losses are tracked but never offset other income.
	RealizedGains  decimal.Decimal
	RealizedLosses decimal.Decimal
}

// NewTFSA creates a tax-free account with the given starting room.
func NewTFSA(id string, asset AssetProfile, room decimal.Decimal) *Account {
	return &Account{ID: id, Type: AccountTFSA, Asset: asset, ContributionRoom: room}
}

// NewRRSP creates a tax-deferred account with the given starting room.
func NewRRSP(id string, asset AssetProfile, room decimal.Decimal) *Account {
	return &Account{ID: id, Type: AccountRRSP, Asset: asset, ContributionRoom: room}
}

// NewUnregistered creates a fully taxable account.
func NewUnregistered(id string, asset AssetProfile) *Account {
	return &Account{ID: id, Type: AccountUnregistered, Asset: asset}
}

// Registered reports whether the account tracks contribution room.
func (a *Account) Registered() bool {
	return a.Type == AccountTFSA || a.Type == AccountRRSP
}

// DepositCapacity returns how much the account can still accept this year.
// Unregistered accounts are unconstrained and report the requested amount.
func (a *Account) DepositCapacity(requested decimal.Decimal) decimal.Decimal {
	if !a.Registered() {
		return requested
	}
	return money.Min(requested, money.Max(a.ContributionRoom, decimal.Zero))
}

// Deposit adds funds to the account. Registered accounts reject deposits
// beyond their available contribution room.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return validationErrorf("deposit cannot be negative: %s", amount)
	}
	amount = money.RoundCents(amount)
	if a.Registered() && amount.GreaterThan(a.ContributionRoom) {
		return validationErrorf("deposit %s exceeds %s contribution room %s", amount, a.Type, a.ContributionRoom)
	}
	a.Balance = money.RoundCents(a.Balance.Add(amount))
	a.Deposits = money.RoundCents(a.Deposits.Add(amount))
	if a.Registered() {
		a.ContributionRoom = money.RoundCents(a.ContributionRoom.Sub(amount))
	} else {
		a.CostBasis = money.RoundCents(a.CostBasis.Add(amount))
	}
	return nil
}

// Withdraw removes up to amount from the account, clamping to the available
// balance, and returns the amount actually withdrawn. On unregistered
// accounts the withdrawal realizes a capital gain or loss proportional to
// the withdrawn fraction of unrealized appreciation.
func (a *Account) Withdraw(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, validationErrorf("withdrawal cannot be negative: %s", amount)
	}
	withdrawn := money.RoundCents(money.Min(amount, a.Balance))
	if withdrawn.IsZero() {
		return decimal.Zero, nil
	}
	if a.Type == AccountUnregistered {
		basisShare := money.RoundCents(a.CostBasis.Mul(withdrawn.Div(a.Balance)))
		gain := money.RoundCents(withdrawn.Sub(basisShare))
		if gain.IsPositive() {
			a.RealizedGains = money.RoundCents(a.RealizedGains.Add(gain))
		} else {
			a.RealizedLosses = money.RoundCents(a.RealizedLosses.Sub(gain))
		}
		a.CostBasis = money.RoundCents(a.CostBasis.Sub(basisShare))
	}
	a.Balance = money.RoundCents(a.Balance.Sub(withdrawn))
	a.Withdrawals = money.RoundCents(a.Withdrawals.Add(withdrawn))
	return withdrawn, nil
}

// CalculateReturns computes this year's return on the year-end balance
// (opening balance plus net deposits and withdrawals).
func (a *Account) CalculateReturns() Returns {
	switch a.Asset.Class {
	case AssetFixedIncome:
		return Returns{
			Growth: decimal.Zero,
			Income: money.RoundCents(a.Balance.Mul(a.Asset.IncomeRate)),
		}
	default:
		return Returns{
			Growth: money.RoundCents(a.Balance.Mul(a.Asset.GrowthRate)),
			Income: money.RoundCents(a.Balance.Mul(a.Asset.IncomeRate)),
		}
	}
}

// CalculateTax computes the account's contribution to the year-end tax
// inputs, given the returns already computed for the year.
func (a *Account) CalculateTax(returns Returns, inclusionRate decimal.Decimal) TaxImpact {
	switch a.Type {
	case AccountTFSA:
		return TaxImpact{}
	case AccountRRSP:
		// Deposits deduct from taxable income; withdrawals add to it.
		return TaxImpact{TaxableIncome: a.Withdrawals, Deductions: a.Deposits}
	default:
		taxable := returns.Income.Add(a.RealizedGains.Mul(inclusionRate))
		return TaxImpact{TaxableIncome: money.RoundCents(taxable)}
	}
}

// reinvest applies the year's returns to the balance before the year
// closes. Distributed income on an unregistered account is taxed this year,
// so its reinvestment raises the cost basis.
func (a *Account) reinvest(returns Returns) {
	a.Balance = money.RoundCents(a.Balance.Add(returns.Growth).Add(returns.Income))
	if a.Type == AccountUnregistered {
		a.CostBasis = money.RoundCents(a.CostBasis.Add(returns.Income))
	}
}

// advanceRoom rolls contribution room forward for the next year.
// inflationAdjustment scales the year's nominal limits.
func (a *Account) advanceRoom(priorYearIncome, inflationAdjustment decimal.Decimal, policy TaxPolicy) {
	switch a.Type {
	case AccountTFSA:
		// Annual limit accrues indefinitely; withdrawals made this year
		// restore the same dollar amount of room next year.
		limit := policy.TFSAAnnualLimit.Mul(inflationAdjustment)
		a.ContributionRoom = money.RoundCents(a.ContributionRoom.Add(limit).Add(a.Withdrawals))
	case AccountRRSP:
		earned := priorYearIncome.Mul(policy.RRSPRate)
		cap := policy.RRSPAnnualLimit.Mul(inflationAdjustment)
		a.ContributionRoom = money.RoundCents(a.ContributionRoom.Add(money.Min(earned, cap)))
	}
}

// closeYear resets the annual activity counters after returns and room have
// been processed.
func (a *Account) closeYear() {
	a.YearStartBalance = a.Balance
	a.Deposits = decimal.Zero
	a.Withdrawals = decimal.Zero
	a.RealizedGains = decimal.Zero
	a.RealizedLosses = decimal.Zero
}

// resetOpeningState overwrites the account's starting balances and room, as
// a timeline initialization event does.
func (a *Account) resetOpeningState(balance, room, costBasis *decimal.Decimal) {
	if balance != nil {
		a.Balance = money.RoundCents(*balance)
		a.YearStartBalance = a.Balance
		if a.Type == AccountUnregistered && costBasis == nil {
			a.CostBasis = a.Balance
		}
	}
	if room != nil && a.Registered() {
		a.ContributionRoom = money.RoundCents(*room)
	}
	if costBasis != nil && a.Type == AccountUnregistered {
		a.CostBasis = money.RoundCents(*costBasis)
	}
	a.Deposits = decimal.Zero
	a.Withdrawals = decimal.Zero
	a.RealizedGains = decimal.Zero
	a.RealizedLosses = decimal.Zero
}
