package calculation

import "github.com/shopspring/decimal"

// 2026 tax brackets (CAD), expressed as lower-bound thresholds with marginal
// rates. The top bracket of each table is unbounded.

// OntarioBrackets is the 2026 Ontario provincial income tax table.
var OntarioBrackets = BracketTable{
	{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.0505)},
	{Threshold: decimal.NewFromInt(53891), Rate: decimal.NewFromFloat(0.0915)},
	{Threshold: decimal.NewFromInt(107785), Rate: decimal.NewFromFloat(0.1116)},
	{Threshold: decimal.NewFromInt(150000), Rate: decimal.NewFromFloat(0.1216)},
	{Threshold: decimal.NewFromInt(220000), Rate: decimal.NewFromFloat(0.1316)},
}

// CanadaBrackets is the 2026 federal income tax table.
var CanadaBrackets = BracketTable{
	{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.14)},
	{Threshold: decimal.NewFromInt(58523), Rate: decimal.NewFromFloat(0.205)},
	{Threshold: decimal.NewFromInt(117045), Rate: decimal.NewFromFloat(0.26)},
	{Threshold: decimal.NewFromInt(181440), Rate: decimal.NewFromFloat(0.29)},
	{Threshold: decimal.NewFromInt(258482), Rate: decimal.NewFromFloat(0.33)},
}

// DefaultBracketTables combines the federal and provincial tables in the
// order their liabilities are summed.
var DefaultBracketTables = []BracketTable{CanadaBrackets, OntarioBrackets}

// Investment tax policy defaults.
var (
	// CapitalGainsInclusionRate is the fraction of a realized capital gain
	// counted as taxable income.
	CapitalGainsInclusionRate = decimal.NewFromFloat(0.5)

	// TFSAAnnualContributionLimit is the room added to a TFSA each year,
	// before inflation scaling.
	TFSAAnnualContributionLimit = decimal.NewFromInt(7000)

	// RRSPAnnualContributionLimit caps the room an RRSP gains in a single
	// year, before inflation scaling.
	RRSPAnnualContributionLimit = decimal.NewFromInt(33810)

	// RRSPContributionRate is the share of prior-year income converted into
	// new RRSP room.
	RRSPContributionRate = decimal.NewFromFloat(0.18)
)
