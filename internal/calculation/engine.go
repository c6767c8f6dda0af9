package calculation

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/internal/domain"
	"github.com/wealthpath/planner/pkg/money"
)

// Engine runs the year-by-year simulation: a single deterministic forward
// pass over a timeline, threading one SimulationState through every bucket.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine's logger. A nil logger installs the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunSimulation advances the state through every bucket of the timeline and
// returns one snapshot per year. The state is mutated in place; a failed
// year aborts the run without touching later buckets.
func (e *Engine) RunSimulation(ctx context.Context, timeline *Timeline, state *SimulationState, inflationRate decimal.Decimal, liquidationYears int) (*domain.ProjectionResult, error) {
	if timeline == nil || timeline.Len() == 0 {
		return nil, validationErrorf("timeline is empty")
	}
	if state == nil || state.Portfolio == nil {
		return nil, validationErrorf("simulation state requires a portfolio")
	}
	if inflationRate.LessThan(decimal.NewFromFloat(-0.10)) || inflationRate.GreaterThan(decimal.NewFromFloat(0.20)) {
		return nil, validationErrorf("inflation rate must be between -10%% and 20%%, got %s", inflationRate)
	}
	if liquidationYears < 1 {
		return nil, validationErrorf("liquidation years must be at least 1, got %d", liquidationYears)
	}

	result := &domain.ProjectionResult{
		RunID:            uuid.NewString(),
		StartYear:        timeline.StartYear,
		EndYear:          timeline.EndYear,
		InflationRate:    inflationRate,
		LiquidationYears: liquidationYears,
		AccountIDs:       state.Portfolio.AccountIDs(),
	}

	for _, bucket := range timeline.Buckets() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		yc := NewYearContext(bucket.Year, timeline.StartYear, inflationRate)
		e.Logger.Debugf("year %d: applying %d events (factor %s)", bucket.Year, len(bucket.Events), yc.Factor)

		if err := bucket.Resolve(state, yc); err != nil {
			return nil, err
		}

		shortfall, err := e.applyCashFlow(state, yc)
		if err != nil {
			return nil, err
		}

		yearResult, err := state.Portfolio.IncrementYear(state.AnnualIncome, yc.Factor, yc.NextFactor)
		if err != nil {
			return nil, err
		}
		state.CreditFreeCash(yearResult.TaxSummary.TaxOwed.Neg())

		totalValue, err := state.Portfolio.TotalValue(liquidationYears, yc.Factor)
		if err != nil {
			return nil, err
		}

		snapshot := domain.YearSnapshot{
			Year:                bucket.Year,
			YearIndex:           yc.YearIndex,
			InflationFactor:     yc.Factor,
			FreeCash:            state.FreeCash,
			AnnualIncome:        state.AnnualIncome,
			AnnualSpending:      state.AnnualSpending,
			Retired:             state.Retired,
			AccountBalances:     make(map[string]decimal.Decimal, len(result.AccountIDs)),
			ContributionRoom:    make(map[string]decimal.Decimal, len(result.AccountIDs)),
			TaxableIncome:       yearResult.TaxSummary.TaxableIncome,
			NetTaxableIncome:    yearResult.TaxSummary.NetTaxableIncome,
			TaxPaid:             yearResult.TaxSummary.TaxOwed,
			WithdrawalShortfall: shortfall,
			TotalInvestments:    totalValue,
			NetWorth:            money.RoundCents(state.FreeCash.Add(totalValue)),
		}
		for _, id := range result.AccountIDs {
			account, err := state.Portfolio.Account(id)
			if err != nil {
				return nil, err
			}
			snapshot.AccountBalances[id] = account.Balance
			if account.Registered() {
				snapshot.ContributionRoom[id] = account.ContributionRoom
			}
		}
		result.Snapshots = append(result.Snapshots, snapshot)
		e.Logger.Debugf("year %d: net worth %s, tax %s", bucket.Year, snapshot.NetWorth, snapshot.TaxPaid)
	}

	return result, nil
}

// applyCashFlow runs the annual cash-flow step: collect income, execute the
// withdrawal policy when retired, fund contributions out of free cash, then
// pay spending. Returns the withdrawal shortfall after clamping.
func (e *Engine) applyCashFlow(state *SimulationState, yc YearContext) (decimal.Decimal, error) {
	state.CreditFreeCash(state.AnnualIncome)
	shortfall := decimal.Zero

	if state.Retired && state.WithdrawalPolicy != nil {
		target, err := state.WithdrawalPolicy.WithdrawalForYear(state.Portfolio, yc.Factor)
		if err != nil {
			return decimal.Zero, err
		}
		if target.IsPositive() {
			withdrawn, err := state.Portfolio.Withdraw(target, state.WithdrawalPolicy.AccountOrder)
			if err != nil {
				return decimal.Zero, err
			}
			state.CreditFreeCash(withdrawn)
			shortfall = money.RoundCents(target.Sub(withdrawn))
			if shortfall.IsPositive() {
				e.Logger.Warnf("year %d: withdrawal target %s short by %s", yc.Year, target, shortfall)
			}
		}
	}

	if state.DepositPolicy != nil {
		target, err := state.DepositPolicy.ContributionForYear(state.Portfolio, state.FreeCash, yc.Factor)
		if err != nil {
			return decimal.Zero, err
		}
		contribution := money.Min(target, money.Max(state.FreeCash, decimal.Zero))
		capacity, err := state.Portfolio.DepositCapacity(contribution, state.DepositPolicy.AccountOrder)
		if err != nil {
			return decimal.Zero, err
		}
		placed := money.Min(contribution, capacity)
		if placed.IsPositive() {
			if err := state.Portfolio.Deposit(placed, state.DepositPolicy.AccountOrder); err != nil {
				return decimal.Zero, err
			}
			state.CreditFreeCash(placed.Neg())
		}
	}

	state.CreditFreeCash(state.AnnualSpending.Neg())
	return shortfall, nil
}
