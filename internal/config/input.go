package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	maxReturnPct        = decimal.NewFromInt(50)
	maxInflationPct     = decimal.NewFromInt(30)
	maxSavingsGrowthPct = decimal.NewFromInt(50)
)

// InputParser handles parsing of ledger files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a state from a YAML (or JSON) ledger file
func (ip *InputParser) LoadFromFile(filename string) (*domain.AppState, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	state, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return state, nil
}

// Parse decodes, validates and normalizes a ledger document. JSON documents are accepted
// as well since they are valid YAML.
//
// Validation only rejects structural problems. Negative or missing amounts are not errors;
// they are coerced to zero during normalization.
func (ip *InputParser) Parse(data []byte) (*domain.AppState, error) {
	state := domain.NewAppState()
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateState(state); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}

	state.Normalize()
	return state, nil
}

// Marshal encodes a state in the ledger file format. The derived summary is not written.
func (ip *InputParser) Marshal(state *domain.AppState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}

// ValidateState validates a decoded state before normalization
func (ip *InputParser) ValidateState(state *domain.AppState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Version > domain.StateVersion {
		return fmt.Errorf("unsupported state version %d (this build reads up to %d)", state.Version, domain.StateVersion)
	}
	if err := ip.validatePersonal(&state.Personal); err != nil {
		return fmt.Errorf("personal validation failed: %w", err)
	}
	if err := ip.validateAssets(state.Assets); err != nil {
		return fmt.Errorf("assets validation failed: %w", err)
	}
	if err := ip.validateLiabilities(&state.Liabilities); err != nil {
		return fmt.Errorf("liabilities validation failed: %w", err)
	}
	if err := ip.validateIncome(&state.Income); err != nil {
		return fmt.Errorf("income validation failed: %w", err)
	}
	if err := ip.validateExpenses(&state.Expenses); err != nil {
		return fmt.Errorf("expenses validation failed: %w", err)
	}
	if err := ip.validateInsurance(&state.Insurance); err != nil {
		return fmt.Errorf("insurance validation failed: %w", err)
	}
	if err := ip.validateGoals(state.Goals); err != nil {
		return fmt.Errorf("goals validation failed: %w", err)
	}
	if err := ip.validateRiskAnswers(state.RiskAnswers); err != nil {
		return fmt.Errorf("risk answers validation failed: %w", err)
	}
	if err := ip.validateAssumptions(&state.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validatePersonal(p *domain.PersonalInfo) error {
	if p.RetirementAge < 0 || p.RetirementAge > 120 {
		return fmt.Errorf("retirement age must be between 0 and 120, got %d", p.RetirementAge)
	}
	if p.LifeExpectancy != 0 && (p.LifeExpectancy < 40 || p.LifeExpectancy > 120) {
		return fmt.Errorf("life expectancy must be between 40 and 120, got %d", p.LifeExpectancy)
	}
	if p.RetirementAge > 0 && p.LifeExpectancy > 0 && p.RetirementAge >= p.LifeExpectancy {
		return fmt.Errorf("retirement age %d must be before life expectancy %d", p.RetirementAge, p.LifeExpectancy)
	}
	if p.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAssets(assets domain.AssetLedger) error {
	for name, category := range assets {
		if name == "" {
			return fmt.Errorf("category name is required")
		}
		if category == nil {
			continue
		}
		for i, rec := range category.Custom {
			if rec.Name == "" {
				return fmt.Errorf("%s custom record %d: name is required", name, i)
			}
		}
	}
	return nil
}

func (ip *InputParser) validateLiabilities(l *domain.LiabilityLedger) error {
	for key, liability := range l.Named {
		if liability.RemainingTenureMonths < 0 {
			return fmt.Errorf("%s: remaining tenure cannot be negative", key)
		}
	}
	for i, c := range l.Custom {
		if c.Name == "" {
			return fmt.Errorf("custom liability %d: name is required", i)
		}
		if c.RemainingTenureMonths < 0 {
			return fmt.Errorf("%s: remaining tenure cannot be negative", c.Name)
		}
	}
	return nil
}

func (ip *InputParser) validateIncome(income *domain.IncomeLedger) error {
	for i, p := range income.CustomPassive {
		if p.Name == "" {
			return fmt.Errorf("custom passive income %d: name is required", i)
		}
	}
	for i, a := range income.Additional {
		if a.Name == "" {
			return fmt.Errorf("additional income %d: name is required", i)
		}
		if _, err := domain.ParseFrequency(string(a.Frequency)); err != nil {
			return fmt.Errorf("additional income %s: %w", a.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateExpenses(e *domain.ExpenseLedger) error {
	buckets := map[string]domain.ExpenseBucket{
		"monthly recurring": e.MonthlyRecurring,
		"annual recurring":  e.AnnualRecurring,
	}
	for label, bucket := range buckets {
		for i, c := range bucket.Custom {
			if c.Name == "" {
				return fmt.Errorf("%s custom expense %d: name is required", label, i)
			}
		}
	}
	for i, b := range e.BigExpenses {
		if b.Name == "" {
			return fmt.Errorf("big expense %d: name is required", i)
		}
		if b.Year < 0 {
			return fmt.Errorf("big expense %s: year cannot be negative", b.Name)
		}
	}
	return nil
}

func (ip *InputParser) validateInsurance(l *domain.InsuranceLedger) error {
	for _, kind := range []domain.PolicyKind{domain.LifePolicy, domain.MedicalPolicy} {
		policies, err := l.Policies(kind)
		if err != nil {
			return err
		}
		for i, p := range *policies {
			if p.Name == "" {
				return fmt.Errorf("%s policy %d: name is required", kind, i)
			}
			if p.TermYears < 0 {
				return fmt.Errorf("%s policy %s: term cannot be negative", kind, p.Name)
			}
		}
	}
	return nil
}

func (ip *InputParser) validateGoals(goals []domain.Goal) error {
	seen := make(map[string]bool, len(goals))
	for i, g := range goals {
		if g.Name == "" {
			return fmt.Errorf("goal %d: name is required", i)
		}
		if g.TimelineYears <= 0 {
			return fmt.Errorf("goal %s: timeline must be at least one year, got %d", g.Name, g.TimelineYears)
		}
		if g.ID != "" {
			if seen[g.ID] {
				return fmt.Errorf("goal %s: duplicate id %s", g.Name, g.ID)
			}
			seen[g.ID] = true
		}
	}
	return nil
}

func (ip *InputParser) validateRiskAnswers(a domain.RiskAnswers) error {
	answers := map[string]int{
		"experience":           a.Experience,
		"knowledge":            a.Knowledge,
		"volatility_tolerance": a.VolatilityTolerance,
		"goal_orientation":     a.GoalOrientation,
		"horizon":              a.Horizon,
	}
	for name, v := range answers {
		// 0 is an unanswered question
		if v < 0 || v > 5 {
			return fmt.Errorf("%s must be between 1 and 5, got %d", name, v)
		}
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	if a.ExpectedReturnPct.GreaterThan(maxReturnPct) {
		return fmt.Errorf("expected return cannot exceed %s%%", maxReturnPct)
	}
	if a.InflationPct.GreaterThan(maxInflationPct) {
		return fmt.Errorf("inflation cannot exceed %s%%", maxInflationPct)
	}
	if a.SavingsGrowthPct.GreaterThan(maxSavingsGrowthPct) {
		return fmt.Errorf("savings growth cannot exceed %s%%", maxSavingsGrowthPct)
	}
	if a.LifeExpectancy != 0 && (a.LifeExpectancy < 40 || a.LifeExpectancy > 120) {
		return fmt.Errorf("life expectancy must be between 40 and 120, got %d", a.LifeExpectancy)
	}
	return nil
}
