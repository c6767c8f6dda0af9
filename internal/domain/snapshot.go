package domain

import (
	"github.com/shopspring/decimal"
)

// YearSnapshot is the record emitted for each simulated year, in nominal
// dollars. InflationFactor lets formatters deflate values back to year-zero
// purchasing power.
type YearSnapshot struct {
	Year            int             `json:"year"`
	YearIndex       int             `json:"year_index"`
	InflationFactor decimal.Decimal `json:"inflation_factor"`

	FreeCash       decimal.Decimal `json:"free_cash"`
	AnnualIncome   decimal.Decimal `json:"annual_income"`
	AnnualSpending decimal.Decimal `json:"annual_spending"`
	Retired        bool            `json:"retired"`

	AccountBalances  map[string]decimal.Decimal `json:"account_balances"`
	ContributionRoom map[string]decimal.Decimal `json:"contribution_room"`

	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	NetTaxableIncome    decimal.Decimal `json:"net_taxable_income"`
	TaxPaid             decimal.Decimal `json:"tax_paid"`
	WithdrawalShortfall decimal.Decimal `json:"withdrawal_shortfall"`

	// TotalInvestments is the after-tax liquidation value of the portfolio;
	// NetWorth adds free cash.
	TotalInvestments decimal.Decimal `json:"total_investments"`
	NetWorth         decimal.Decimal `json:"net_worth"`
}

// ProjectionResult is a completed simulation run: one snapshot per year
// bucket, stamped with a run identifier.
type ProjectionResult struct {
	RunID            string          `json:"run_id"`
	StartYear        int             `json:"start_year"`
	EndYear          int             `json:"end_year"`
	InflationRate    decimal.Decimal `json:"inflation_rate"`
	LiquidationYears int             `json:"liquidation_years"`
	AccountIDs       []string        `json:"account_ids"`
	Snapshots        []YearSnapshot  `json:"snapshots"`
}

// FinalSnapshot returns the last year's snapshot, or nil for an empty run.
func (pr *ProjectionResult) FinalSnapshot() *YearSnapshot {
	if len(pr.Snapshots) == 0 {
		return nil
	}
	return &pr.Snapshots[len(pr.Snapshots)-1]
}
