package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// TaxPolicy carries the bracket tables and contribution-limit constants the
// portfolio applies at year end. The zero value is not usable; start from
// DefaultTaxPolicy.
type TaxPolicy struct {
	Tables          []BracketTable
	InclusionRate   decimal.Decimal
	TFSAAnnualLimit decimal.Decimal
	RRSPAnnualLimit decimal.Decimal
	RRSPRate        decimal.Decimal
}

// DefaultTaxPolicy returns the 2026 Canada/Ontario policy constants.
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		Tables:          DefaultBracketTables,
		InclusionRate:   CapitalGainsInclusionRate,
		TFSAAnnualLimit: TFSAAnnualContributionLimit,
		RRSPAnnualLimit: RRSPAnnualContributionLimit,
		RRSPRate:        RRSPContributionRate,
	}
}

// AccountSummary reports one account's activity for a closed year.
type AccountSummary struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Deposits       decimal.Decimal `json:"deposits"`
	Withdrawals    decimal.Decimal `json:"withdrawals"`
	Returns        Returns         `json:"returns"`
	TaxImpact      TaxImpact       `json:"tax_impact"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// TaxSummary reports the year-end tax computation across all accounts plus
// the year's employment income.
type TaxSummary struct {
	TaxableIncome    decimal.Decimal `json:"taxable_income"`
	Deductions       decimal.Decimal `json:"deductions"`
	NetTaxableIncome decimal.Decimal `json:"net_taxable_income"`
	TaxOwed          decimal.Decimal `json:"tax_owed"`
}

// YearResult is the outcome of closing one portfolio year.
type YearResult struct {
	AccountSummaries map[string]AccountSummary `json:"account_summaries"`
	TaxSummary       TaxSummary                `json:"tax_summary"`
}

// Portfolio owns a set of investment accounts and the tax policy applied to
// their annual activity.
type Portfolio struct {
	Policy TaxPolicy

	accounts map[string]*Account
	order    []string
}

// NewPortfolio builds a portfolio over the given accounts. Account IDs must
// be unique and asset profiles valid.
func NewPortfolio(policy TaxPolicy, accounts ...*Account) (*Portfolio, error) {
	p := &Portfolio{Policy: policy, accounts: make(map[string]*Account, len(accounts))}
	for _, a := range accounts {
		if a.ID == "" {
			return nil, validationErrorf("account id cannot be empty")
		}
		if _, dup := p.accounts[a.ID]; dup {
			return nil, validationErrorf("duplicate account id %q", a.ID)
		}
		if err := a.Asset.Validate(); err != nil {
			return nil, err
		}
		p.accounts[a.ID] = a
		p.order = append(p.order, a.ID)
	}
	return p, nil
}

// Account returns the account with the given id.
func (p *Portfolio) Account(id string) (*Account, error) {
	a, ok := p.accounts[id]
	if !ok {
		return nil, &NotFoundError{Kind: "account", Key: id}
	}
	return a, nil
}

// AccountIDs returns the account ids in registration order.
func (p *Portfolio) AccountIDs() []string {
	return append([]string(nil), p.order...)
}

// TotalBalance returns the nominal (pre-tax) sum of account balances.
func (p *Portfolio) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, id := range p.order {
		total = total.Add(p.accounts[id].Balance)
	}
	return total
}

// DepositCapacity returns how much of amount the ordered accounts can
// accept given their current contribution room.
func (p *Portfolio) DepositCapacity(amount decimal.Decimal, accountOrder []string) (decimal.Decimal, error) {
	capacity := decimal.Zero
	remaining := amount
	for _, id := range accountOrder {
		a, err := p.Account(id)
		if err != nil {
			return decimal.Zero, err
		}
		take := a.DepositCapacity(remaining)
		capacity = capacity.Add(take)
		remaining = remaining.Sub(take)
		if !remaining.IsPositive() {
			break
		}
	}
	return capacity, nil
}

// Deposit distributes amount across the accounts in priority order,
// respecting contribution room. Depositing more than the ordered accounts
// can accept is a ValidationError.
func (p *Portfolio) Deposit(amount decimal.Decimal, accountOrder []string) error {
	if amount.IsNegative() {
		return validationErrorf("deposit cannot be negative: %s", amount)
	}
	remaining := money.RoundCents(amount)
	for _, id := range accountOrder {
		a, err := p.Account(id)
		if err != nil {
			return err
		}
		take := a.DepositCapacity(remaining)
		if take.IsPositive() {
			if err := a.Deposit(take); err != nil {
				return err
			}
			remaining = remaining.Sub(take)
		}
		if !remaining.IsPositive() {
			return nil
		}
	}
	if remaining.IsPositive() {
		return validationErrorf("insufficient contribution room: %s of %s could not be deposited", remaining, amount)
	}
	return nil
}

// Withdraw takes up to amount from the accounts in priority order, clamping
// to each account's balance. It returns the amount actually withdrawn; the
// caller records any shortfall.
func (p *Portfolio) Withdraw(amount decimal.Decimal, accountOrder []string) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, validationErrorf("withdrawal cannot be negative: %s", amount)
	}
	remaining := money.RoundCents(amount)
	withdrawn := decimal.Zero
	for _, id := range accountOrder {
		a, err := p.Account(id)
		if err != nil {
			return decimal.Zero, err
		}
		took, err := a.Withdraw(remaining)
		if err != nil {
			return decimal.Zero, err
		}
		withdrawn = withdrawn.Add(took)
		remaining = remaining.Sub(took)
		if !remaining.IsPositive() {
			break
		}
	}
	return withdrawn, nil
}

// IncrementYear closes the portfolio year: computes each account's returns
// on its year-end balance, reinvests them, resolves the combined tax owed on
// the year's activity plus annualIncome, advances contribution room for the
// next year, and resets annual counters.
//
// inflationAdjustment scales the bracket thresholds for this year's tax;
// nextYearAdjustment scales the contribution limits granted for next year.
func (p *Portfolio) IncrementYear(annualIncome, inflationAdjustment, nextYearAdjustment decimal.Decimal) (YearResult, error) {
	if annualIncome.IsNegative() {
		return YearResult{}, validationErrorf("annual income cannot be negative: %s", annualIncome)
	}

	result := YearResult{AccountSummaries: make(map[string]AccountSummary, len(p.order))}
	taxable := annualIncome
	deductions := decimal.Zero

	for _, id := range p.order {
		a := p.accounts[id]
		opening := a.YearStartBalance
		returns := a.CalculateReturns()
		impact := a.CalculateTax(returns, p.Policy.InclusionRate)
		a.reinvest(returns)
		a.advanceRoom(annualIncome, nextYearAdjustment, p.Policy)

		result.AccountSummaries[id] = AccountSummary{
			OpeningBalance: opening,
			Deposits:       a.Deposits,
			Withdrawals:    a.Withdrawals,
			Returns:        returns,
			TaxImpact:      impact,
			ClosingBalance: a.Balance,
		}
		taxable = taxable.Add(impact.TaxableIncome)
		deductions = deductions.Add(impact.Deductions)
		a.closeYear()
	}

	net := money.Max(money.RoundCents(taxable.Sub(deductions)), decimal.Zero)
	owed, err := ComputeCombinedTax(net, p.Policy.Tables, inflationAdjustment)
	if err != nil {
		return YearResult{}, err
	}
	result.TaxSummary = TaxSummary{
		TaxableIncome:    money.RoundCents(taxable),
		Deductions:       money.RoundCents(deductions),
		NetTaxableIncome: net,
		TaxOwed:          owed,
	}
	return result, nil
}

// TotalValue estimates the after-tax cash obtainable by fully liquidating
// every account, spreading the deferred-tax base evenly across
// liquidationYears synthetic years. Each slice is taxed with the current
// bracket table (scaled once by inflationAdjustment, not re-inflated per
// slice). The method does not mutate account state.
func (p *Portfolio) TotalValue(liquidationYears int, inflationAdjustment decimal.Decimal) (decimal.Decimal, error) {
	if liquidationYears < 1 {
		return decimal.Zero, validationErrorf("liquidation years must be at least 1, got %d", liquidationYears)
	}

	gross := decimal.Zero
	deferred := decimal.Zero
	for _, id := range p.order {
		a := p.accounts[id]
		gross = gross.Add(a.Balance)
		switch a.Type {
		case AccountRRSP:
			deferred = deferred.Add(a.Balance)
		case AccountUnregistered:
			gain := a.Balance.Sub(a.CostBasis)
			if gain.IsPositive() {
				deferred = deferred.Add(gain.Mul(p.Policy.InclusionRate))
			}
		}
	}

	years := decimal.NewFromInt(int64(liquidationYears))
	slice := deferred.Div(years)
	sliceTax, err := ComputeCombinedTax(money.Max(slice, decimal.Zero), p.Policy.Tables, inflationAdjustment)
	if err != nil {
		return decimal.Zero, err
	}
	totalTax := sliceTax.Mul(years)
	return money.RoundCents(gross.Sub(totalTax)), nil
}
