package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equityAsset() AssetProfile {
	return AssetProfile{
		Class:      AssetGlobalEquityIndex,
		GrowthRate: decimal.NewFromFloat(0.1),
		IncomeRate: decimal.NewFromFloat(0.05),
	}
}

func flatAsset() AssetProfile {
	return AssetProfile{Class: AssetGlobalEquityIndex}
}

func samplePortfolio(t *testing.T) *Portfolio {
	t.Helper()
	p, err := NewPortfolio(DefaultTaxPolicy(),
		NewTFSA("tfsa", equityAsset(), decimal.NewFromInt(6000)),
		NewRRSP("rrsp", equityAsset(), decimal.NewFromInt(5000)),
		NewUnregistered("unregistered", equityAsset()),
	)
	require.NoError(t, err)
	return p
}

func one() decimal.Decimal { return decimal.NewFromInt(1) }

func TestDepositRespectsOrderAndRoom(t *testing.T) {
	p := samplePortfolio(t)
	order := []string{"tfsa", "rrsp", "unregistered"}
	require.NoError(t, p.Deposit(decimal.NewFromInt(15000), order))

	tfsa, _ := p.Account("tfsa")
	rrsp, _ := p.Account("rrsp")
	unreg, _ := p.Account("unregistered")
	assert.True(t, decimal.NewFromInt(6000).Equal(tfsa.Balance))
	assert.True(t, decimal.NewFromInt(5000).Equal(rrsp.Balance))
	assert.True(t, decimal.NewFromInt(4000).Equal(unreg.Balance))
	assert.True(t, tfsa.ContributionRoom.IsZero())
	assert.True(t, rrsp.ContributionRoom.IsZero())

	var verr *ValidationError
	err := p.Deposit(decimal.NewFromInt(1000), []string{"tfsa", "rrsp"})
	require.ErrorAs(t, err, &verr)
}

func TestDepositFailsWhenRoomInsufficient(t *testing.T) {
	p := samplePortfolio(t)
	var verr *ValidationError
	err := p.Deposit(decimal.NewFromInt(20000), []string{"tfsa", "rrsp"})
	require.ErrorAs(t, err, &verr)
}

func TestDepositUnknownAccount(t *testing.T) {
	p := samplePortfolio(t)
	var nferr *NotFoundError
	err := p.Deposit(decimal.NewFromInt(100), []string{"lira"})
	require.ErrorAs(t, err, &nferr)
}

func TestIncrementYearCalculatesReturnsAndTax(t *testing.T) {
	p := samplePortfolio(t)
	require.NoError(t, p.Deposit(decimal.NewFromInt(15000), []string{"tfsa", "rrsp", "unregistered"}))

	result, err := p.IncrementYear(decimal.Zero, one(), one())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(600).Equal(result.AccountSummaries["tfsa"].Returns.Growth))
	assert.True(t, decimal.NewFromInt(300).Equal(result.AccountSummaries["tfsa"].Returns.Income))
	assert.True(t, decimal.NewFromInt(500).Equal(result.AccountSummaries["rrsp"].Returns.Growth))
	assert.True(t, decimal.NewFromInt(250).Equal(result.AccountSummaries["rrsp"].Returns.Income))
	assert.True(t, decimal.NewFromInt(400).Equal(result.AccountSummaries["unregistered"].Returns.Growth))
	assert.True(t, decimal.NewFromInt(200).Equal(result.AccountSummaries["unregistered"].Returns.Income))

	tfsa, _ := p.Account("tfsa")
	rrsp, _ := p.Account("rrsp")
	unreg, _ := p.Account("unregistered")
	assert.True(t, decimal.NewFromInt(6900).Equal(tfsa.Balance))
	assert.True(t, decimal.NewFromInt(5750).Equal(rrsp.Balance))
	assert.True(t, decimal.NewFromInt(4600).Equal(unreg.Balance))
	assert.True(t, decimal.NewFromInt(4200).Equal(unreg.CostBasis), "income reinvestment raises basis, growth does not")

	assert.True(t, decimal.NewFromInt(200).Equal(result.TaxSummary.TaxableIncome))
	assert.True(t, decimal.NewFromInt(5000).Equal(result.TaxSummary.Deductions))
	assert.True(t, result.TaxSummary.NetTaxableIncome.IsZero())
	assert.True(t, result.TaxSummary.TaxOwed.IsZero())

	// Annual counters reset for the next year.
	assert.True(t, tfsa.Deposits.IsZero())
	assert.True(t, rrsp.Deposits.IsZero())
	assert.True(t, unreg.Withdrawals.IsZero())
}

func TestIncrementYearTwiceTracksRealizedGains(t *testing.T) {
	p := samplePortfolio(t)
	require.NoError(t, p.Deposit(decimal.NewFromInt(15000), []string{"tfsa", "rrsp", "unregistered"}))
	_, err := p.IncrementYear(decimal.Zero, one(), one())
	require.NoError(t, err)

	// Year two: TFSA room was replenished to 7000, RRSP gained none
	// (no prior income), so the full 3000 lands in the TFSA.
	require.NoError(t, p.Deposit(decimal.NewFromInt(3000), []string{"tfsa", "rrsp", "unregistered"}))
	rrsp, _ := p.Account("rrsp")
	unreg, _ := p.Account("unregistered")
	_, err = rrsp.Withdraw(decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = unreg.Withdraw(decimal.NewFromInt(1000))
	require.NoError(t, err)

	result, err := p.IncrementYear(decimal.Zero, one(), one())
	require.NoError(t, err)

	tfsa, _ := p.Account("tfsa")
	assert.True(t, decimal.NewFromInt(11385).Equal(tfsa.Balance))
	assert.True(t, decimal.NewFromFloat(5462.50).Equal(rrsp.Balance))
	assert.True(t, decimal.NewFromInt(4140).Equal(unreg.Balance))
	assert.True(t, decimal.NewFromFloat(3466.96).Equal(unreg.CostBasis))

	// Realized gain: 1000 - 4200*(1000/4600) = 86.96; only half is taxable.
	expectedUnregTaxable := decimal.NewFromFloat(223.48) // 180 income + 43.48
	assert.True(t, expectedUnregTaxable.Equal(result.AccountSummaries["unregistered"].TaxImpact.TaxableIncome),
		"got %s", result.AccountSummaries["unregistered"].TaxImpact.TaxableIncome)

	expectedNet := decimal.NewFromFloat(1223.48) // RRSP withdrawal 1000 + unregistered 223.48
	assert.True(t, expectedNet.Equal(result.TaxSummary.NetTaxableIncome))

	expectedTax, err := ComputeCombinedTax(expectedNet, DefaultBracketTables, one())
	require.NoError(t, err)
	assert.True(t, expectedTax.Equal(result.TaxSummary.TaxOwed))
}

func TestFixedIncomeAssetReturnsIncomeOnly(t *testing.T) {
	asset := AssetProfile{Class: AssetFixedIncome, IncomeRate: decimal.NewFromFloat(0.04)}
	account := NewTFSA("tfsa", asset, decimal.Zero)
	account.Balance = decimal.NewFromInt(1000)

	returns := account.CalculateReturns()
	assert.True(t, returns.Growth.IsZero())
	assert.True(t, decimal.NewFromInt(40).Equal(returns.Income))
}

func TestUnregisteredCapitalLossesDoNotReduceTaxableIncome(t *testing.T) {
	account := NewUnregistered("unregistered", flatAsset())
	account.Balance = decimal.NewFromInt(1000)
	account.CostBasis = decimal.NewFromInt(2000)

	withdrawn, err := account.Withdraw(decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(withdrawn))
	assert.True(t, decimal.NewFromInt(500).Equal(account.RealizedLosses))
	assert.True(t, account.RealizedGains.IsZero())

	impact := account.CalculateTax(account.CalculateReturns(), CapitalGainsInclusionRate)
	assert.True(t, impact.TaxableIncome.IsZero())
}

func TestWithdrawClampsToBalance(t *testing.T) {
	account := NewTFSA("tfsa", flatAsset(), decimal.Zero)
	account.Balance = decimal.NewFromInt(300)

	withdrawn, err := account.Withdraw(decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(withdrawn))
	assert.True(t, account.Balance.IsZero())
}

func TestTFSAContributionRoomAccumulates(t *testing.T) {
	p, err := NewPortfolio(DefaultTaxPolicy(), NewTFSA("tfsa", flatAsset(), decimal.Zero))
	require.NoError(t, err)

	tfsa, _ := p.Account("tfsa")
	assert.True(t, tfsa.ContributionRoom.IsZero())

	_, err = p.IncrementYear(decimal.Zero, one(), one())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7000).Equal(tfsa.ContributionRoom))

	_, err = p.IncrementYear(decimal.Zero, one(), one())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(14000).Equal(tfsa.ContributionRoom))
}

func TestTFSAWithdrawalsRestoreRoomNextYear(t *testing.T) {
	p, err := NewPortfolio(DefaultTaxPolicy(), NewTFSA("tfsa", flatAsset(), decimal.Zero))
	require.NoError(t, err)
	tfsa, _ := p.Account("tfsa")
	tfsa.Balance = decimal.NewFromInt(1000)

	_, err = tfsa.Withdraw(decimal.NewFromInt(400))
	require.NoError(t, err)

	_, err = p.IncrementYear(decimal.Zero, one(), one())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7400).Equal(tfsa.ContributionRoom),
		"annual limit plus restored withdrawal, got %s", tfsa.ContributionRoom)
}

func TestRRSPRoomUsesPreviousIncome(t *testing.T) {
	p, err := NewPortfolio(DefaultTaxPolicy(), NewRRSP("rrsp", flatAsset(), decimal.Zero))
	require.NoError(t, err)
	rrsp, _ := p.Account("rrsp")

	_, err = p.IncrementYear(decimal.NewFromInt(50000), one(), one())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9000).Equal(rrsp.ContributionRoom))
}

func TestRRSPRoomIncrementIsCapped(t *testing.T) {
	p, err := NewPortfolio(DefaultTaxPolicy(), NewRRSP("rrsp", flatAsset(), decimal.Zero))
	require.NoError(t, err)
	rrsp, _ := p.Account("rrsp")

	_, err = p.IncrementYear(decimal.NewFromInt(1000000), one(), one())
	require.NoError(t, err)
	assert.True(t, RRSPAnnualContributionLimit.Equal(rrsp.ContributionRoom),
		"18%% of 1M must clamp to the annual maximum, got %s", rrsp.ContributionRoom)
}

func TestIncrementYearIncludesIncomeInTaxableAmount(t *testing.T) {
	p, err := NewPortfolio(DefaultTaxPolicy(),
		NewTFSA("tfsa", flatAsset(), decimal.NewFromInt(7000)),
		NewRRSP("rrsp", flatAsset(), decimal.NewFromInt(10000)),
		NewUnregistered("unregistered", flatAsset()),
	)
	require.NoError(t, err)
	require.NoError(t, p.Deposit(decimal.NewFromInt(5000), []string{"rrsp"}))

	result, err := p.IncrementYear(decimal.NewFromInt(50000), one(), one())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50000).Equal(result.TaxSummary.TaxableIncome))
	assert.True(t, decimal.NewFromInt(5000).Equal(result.TaxSummary.Deductions))
	assert.True(t, decimal.NewFromInt(45000).Equal(result.TaxSummary.NetTaxableIncome))
	assert.True(t, decimal.NewFromFloat(8572.50).Equal(result.TaxSummary.TaxOwed))
}

func TestAssetProfileValidation(t *testing.T) {
	bad := AssetProfile{Class: AssetFixedIncome, GrowthRate: decimal.NewFromFloat(0.02)}
	var verr *ValidationError
	require.ErrorAs(t, bad.Validate(), &verr)

	unknown := AssetProfile{Class: "crypto"}
	require.ErrorAs(t, unknown.Validate(), &verr)
}
