package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StateVersion is written into every persisted state
const StateVersion = 1

// PersonalInfo describes the person the ledgers belong to
type PersonalInfo struct {
	Name           string    `yaml:"name" json:"name"`
	BirthDate      time.Time `yaml:"birth_date" json:"birth_date"`
	RetirementAge  int       `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	LifeExpectancy int       `yaml:"life_expectancy,omitempty" json:"life_expectancy,omitempty"`
	Dependents     int       `yaml:"dependents,omitempty" json:"dependents,omitempty"`
}

// Age returns completed years at t, or 0 when the birth date is unknown
func (p PersonalInfo) Age(t time.Time) int {
	if p.BirthDate.IsZero() || t.Before(p.BirthDate) {
		return 0
	}
	age := t.Year() - p.BirthDate.Year()
	if t.Month() < p.BirthDate.Month() || (t.Month() == p.BirthDate.Month() && t.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

// Assumptions are the scalar projection parameters, all percentages in percent units.
// MonthlySavings overrides income minus expenses when set.
type Assumptions struct {
	ExpectedReturnPct decimal.Decimal  `yaml:"expected_return_pct" json:"expected_return_pct"`
	InflationPct      decimal.Decimal  `yaml:"inflation_pct" json:"inflation_pct"`
	SavingsGrowthPct  decimal.Decimal  `yaml:"savings_growth_pct" json:"savings_growth_pct"`
	LifeExpectancy    int              `yaml:"life_expectancy" json:"life_expectancy"`
	MonthlySavings    *decimal.Decimal `yaml:"monthly_savings,omitempty" json:"monthly_savings,omitempty"`
}

// DefaultAssumptions returns the assumptions used when none are stored
func DefaultAssumptions() Assumptions {
	return Assumptions{
		ExpectedReturnPct: decimal.NewFromInt(12),
		InflationPct:      decimal.NewFromInt(6),
		SavingsGrowthPct:  decimal.NewFromInt(5),
		LifeExpectancy:    85,
	}
}

// AppState owns every ledger plus the derived summary
type AppState struct {
	Version     int             `yaml:"version" json:"version"`
	Personal    PersonalInfo    `yaml:"personal" json:"personal"`
	Assets      AssetLedger     `yaml:"assets" json:"assets"`
	Liabilities LiabilityLedger `yaml:"liabilities" json:"liabilities"`
	Income      IncomeLedger    `yaml:"income" json:"income"`
	Expenses    ExpenseLedger   `yaml:"expenses" json:"expenses"`
	Insurance   InsuranceLedger `yaml:"insurance" json:"insurance"`
	Goals       []Goal          `yaml:"goals" json:"goals"`
	RiskAnswers RiskAnswers     `yaml:"risk_answers" json:"risk_answers"`
	Assumptions Assumptions     `yaml:"assumptions" json:"assumptions"`

	Summary   *DerivedSummary `yaml:"-" json:"summary,omitempty"`
	UpdatedAt time.Time       `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// NewAppState returns an empty state with default assumptions
func NewAppState() *AppState {
	return &AppState{
		Version:     StateVersion,
		Assets:      NewAssetLedger(),
		Liabilities: NewLiabilityLedger(),
		Income:      NewIncomeLedger(),
		Expenses:    NewExpenseLedger(),
		Insurance:   NewInsuranceLedger(),
		Goals:       []Goal{},
		Assumptions: DefaultAssumptions(),
	}
}

// Normalize makes every collection present and clamps invalid values, so
// a partially filled state can always be computed.
func (s *AppState) Normalize() {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	if s.Assets == nil {
		s.Assets = NewAssetLedger()
	}
	s.Assets.Normalize()
	s.Liabilities.Normalize()
	s.Income.Normalize()
	s.Expenses.Normalize()
	s.Insurance.Normalize()
	if s.Goals == nil {
		s.Goals = []Goal{}
	}
	for i := range s.Goals {
		s.Goals[i].TargetAmount = NonNegative(s.Goals[i].TargetAmount)
		if s.Goals[i].ID == "" {
			s.Goals[i].ID = NewID()
		}
	}

	a := &s.Assumptions
	a.ExpectedReturnPct = NonNegative(a.ExpectedReturnPct)
	a.InflationPct = NonNegative(a.InflationPct)
	a.SavingsGrowthPct = NonNegative(a.SavingsGrowthPct)
	if a.LifeExpectancy <= 0 {
		a.LifeExpectancy = DefaultAssumptions().LifeExpectancy
	}
	if a.MonthlySavings != nil {
		v := NonNegative(*a.MonthlySavings)
		a.MonthlySavings = &v
	}
}

// RemoveGoal deletes a goal by ID
func (s *AppState) RemoveGoal(id string) bool {
	for i, g := range s.Goals {
		if g.ID == id {
			s.Goals = append(s.Goals[:i], s.Goals[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the ledgers. The summary is shared since it is never mutated in place.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return nil
	}
	out := *s
	out.Assets = s.Assets.Clone()
	out.Liabilities = s.Liabilities.Clone()
	out.Income = s.Income.Clone()
	out.Expenses = s.Expenses.Clone()
	out.Insurance = s.Insurance.Clone()
	out.Goals = make([]Goal, len(s.Goals))
	copy(out.Goals, s.Goals)
	if s.Assumptions.MonthlySavings != nil {
		v := *s.Assumptions.MonthlySavings
		out.Assumptions.MonthlySavings = &v
	}
	return &out
}
