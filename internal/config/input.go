// Package config loads and validates plan files and builds the timeline and
// initial state the simulation consumes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wealthpath/planner/internal/calculation"
	"github.com/wealthpath/planner/internal/domain"
)

// InputParser handles parsing of plan configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlanConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses and validates a plan from YAML bytes.
func (ip *InputParser) Load(data []byte) (*domain.PlanConfig, error) {
	var plan domain.PlanConfig
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan validates the loaded plan before the core sees any value.
func (ip *InputParser) ValidatePlan(plan *domain.PlanConfig) error {
	if plan.EndAge < plan.StartAge {
		return fmt.Errorf("end age %d precedes start age %d", plan.EndAge, plan.StartAge)
	}
	if plan.StartAge < 0 {
		return fmt.Errorf("start age cannot be negative")
	}
	if plan.LiquidationYears < 1 {
		return fmt.Errorf("liquidation years must be at least 1")
	}
	if plan.InitialFreeCash.IsNegative() {
		return fmt.Errorf("initial free cash cannot be negative")
	}
	if len(plan.Accounts) == 0 {
		return fmt.Errorf("no accounts provided")
	}

	seen := make(map[string]bool, len(plan.Accounts))
	for i, account := range plan.Accounts {
		if err := ip.validateAccount(&account, seen); err != nil {
			return fmt.Errorf("account %d validation failed: %w", i, err)
		}
	}
	for i, event := range plan.Events {
		if err := ip.validateEvent(&event, plan, seen); err != nil {
			return fmt.Errorf("event %d validation failed: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validateAccount(account *domain.AccountConfig, seen map[string]bool) error {
	if account.ID == "" {
		return fmt.Errorf("account id is required")
	}
	if seen[account.ID] {
		return fmt.Errorf("duplicate account id %q", account.ID)
	}
	seen[account.ID] = true

	switch account.Type {
	case string(calculation.AccountTFSA), string(calculation.AccountRRSP):
	case string(calculation.AccountUnregistered):
		if !account.ContributionRoom.IsZero() {
			return fmt.Errorf("unregistered accounts have no contribution room")
		}
	default:
		return fmt.Errorf("unknown account type %q", account.Type)
	}

	switch account.Asset.Class {
	case string(calculation.AssetFixedIncome):
		if !account.Asset.GrowthRate.IsZero() {
			return fmt.Errorf("fixed income assets cannot have a growth rate")
		}
	case string(calculation.AssetGlobalEquityIndex):
	default:
		return fmt.Errorf("unknown asset class %q", account.Asset.Class)
	}

	if account.Balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}
	if account.ContributionRoom.IsNegative() {
		return fmt.Errorf("contribution room cannot be negative")
	}
	if account.CostBasis != nil && account.CostBasis.IsNegative() {
		return fmt.Errorf("cost basis cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateEvent(event *domain.EventConfig, plan *domain.PlanConfig, accounts map[string]bool) error {
	if event.Age < plan.StartAge || event.Age > plan.EndAge {
		return fmt.Errorf("age %d is outside the plan range [%d, %d]", event.Age, plan.StartAge, plan.EndAge)
	}
	if event.EndAge != nil {
		if *event.EndAge < event.Age || *event.EndAge > plan.EndAge {
			return fmt.Errorf("end age %d is invalid for event at age %d", *event.EndAge, event.Age)
		}
	}

	switch event.Kind {
	case domain.EventSetAnnualIncome, domain.EventSetAnnualSpending, domain.EventSetFreeCash:
		if event.Amount.IsNegative() {
			return fmt.Errorf("%s amount cannot be negative", event.Kind)
		}
	case domain.EventSetDepositPolicy, domain.EventSetWithdrawalPolicy:
		if event.Policy == nil {
			return fmt.Errorf("%s requires a policy", event.Kind)
		}
		if err := ip.validatePolicy(event.Policy, accounts); err != nil {
			return err
		}
	case domain.EventSetRetirement:
		if event.Policy != nil {
			if err := ip.validatePolicy(event.Policy, accounts); err != nil {
				return err
			}
		}
	case domain.EventSetAccountValues:
		if !accounts[event.AccountID] {
			return fmt.Errorf("unknown account id %q", event.AccountID)
		}
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
	return nil
}

func (ip *InputParser) validatePolicy(policy *domain.PolicyConfig, accounts map[string]bool) error {
	switch policy.Kind {
	case string(calculation.PolicyFixedAmount), string(calculation.PolicyPercentage), string(calculation.PolicyFillRoom):
	default:
		return fmt.Errorf("unknown policy kind %q", policy.Kind)
	}
	if len(policy.AccountOrder) == 0 {
		return fmt.Errorf("policy requires an account order")
	}
	for _, id := range policy.AccountOrder {
		if !accounts[id] {
			return fmt.Errorf("policy references unknown account %q", id)
		}
	}
	return nil
}

// BuildSimulation turns a validated plan into the timeline and initial
// simulation state the engine consumes.
func BuildSimulation(plan *domain.PlanConfig) (*calculation.Timeline, *calculation.SimulationState, error) {
	accounts := make([]*calculation.Account, 0, len(plan.Accounts))
	for _, ac := range plan.Accounts {
		asset := calculation.AssetProfile{
			Class:      calculation.AssetClass(ac.Asset.Class),
			GrowthRate: ac.Asset.GrowthRate,
			IncomeRate: ac.Asset.IncomeRate,
		}
		var account *calculation.Account
		switch calculation.AccountType(ac.Type) {
		case calculation.AccountTFSA:
			account = calculation.NewTFSA(ac.ID, asset, ac.ContributionRoom)
		case calculation.AccountRRSP:
			account = calculation.NewRRSP(ac.ID, asset, ac.ContributionRoom)
		default:
			account = calculation.NewUnregistered(ac.ID, asset)
		}
		account.Balance = ac.Balance
		account.YearStartBalance = ac.Balance
		if account.Type == calculation.AccountUnregistered {
			if ac.CostBasis != nil {
				account.CostBasis = *ac.CostBasis
			} else {
				account.CostBasis = ac.Balance
			}
		}
		accounts = append(accounts, account)
	}

	portfolio, err := calculation.NewPortfolio(calculation.DefaultTaxPolicy(), accounts...)
	if err != nil {
		return nil, nil, err
	}
	state := calculation.NewSimulationState(portfolio)
	state.SetFreeCash(plan.InitialFreeCash)

	timeline, err := calculation.BuildRange(plan.StartAge, plan.EndAge)
	if err != nil {
		return nil, nil, err
	}
	for _, ec := range plan.Events {
		event, err := buildEvent(&ec)
		if err != nil {
			return nil, nil, err
		}
		if ec.EndAge != nil {
			err = timeline.ScheduleEventRange(ec.Age, *ec.EndAge, event)
		} else {
			err = timeline.ScheduleEvent(ec.Age, event)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return timeline, state, nil
}

func buildEvent(ec *domain.EventConfig) (calculation.Event, error) {
	switch ec.Kind {
	case domain.EventSetAnnualIncome:
		return calculation.SetAnnualIncomeEvent{Amount: ec.Amount, InflationAdjusted: ec.InflationAdjusted}, nil
	case domain.EventSetAnnualSpending:
		return calculation.SetAnnualSpendingEvent{Amount: ec.Amount, InflationAdjusted: ec.InflationAdjusted}, nil
	case domain.EventSetDepositPolicy:
		return calculation.SetDepositPolicyEvent{Policy: buildDepositPolicy(ec.Policy)}, nil
	case domain.EventSetWithdrawalPolicy:
		return calculation.SetWithdrawalPolicyEvent{Policy: buildWithdrawalPolicy(ec.Policy)}, nil
	case domain.EventSetRetirement:
		event := calculation.SetRetirementEvent{}
		if ec.Policy != nil {
			policy := buildWithdrawalPolicy(ec.Policy)
			event.WithdrawalPolicy = &policy
		}
		return event, nil
	case domain.EventSetAccountValues:
		return calculation.SetInvestmentAccountValuesEvent{
			AccountID:        ec.AccountID,
			Balance:          ec.Balance,
			ContributionRoom: ec.ContributionRoom,
			CostBasis:        ec.CostBasis,
		}, nil
	case domain.EventSetFreeCash:
		return calculation.SetFreeCashEvent{Amount: ec.Amount}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", ec.Kind)
	}
}

func buildDepositPolicy(pc *domain.PolicyConfig) calculation.DepositPolicy {
	return calculation.DepositPolicy{
		Kind:              calculation.PolicyKind(pc.Kind),
		Amount:            pc.Amount,
		Percent:           pc.Percent,
		AccountOrder:      append([]string(nil), pc.AccountOrder...),
		InflationAdjusted: pc.InflationAdjusted,
	}
}

func buildWithdrawalPolicy(pc *domain.PolicyConfig) calculation.WithdrawalPolicy {
	return calculation.WithdrawalPolicy{
		Kind:              calculation.PolicyKind(pc.Kind),
		Amount:            pc.Amount,
		Percent:           pc.Percent,
		AccountOrder:      append([]string(nil), pc.AccountOrder...),
		InflationAdjusted: pc.InflationAdjusted,
	}
}
