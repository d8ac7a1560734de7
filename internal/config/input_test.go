package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLedger = `version: 1
personal:
  name: Asha
  birth_date: 1990-01-01T00:00:00Z
  retirement_age: 50
assets:
  equity:
    named:
      index_funds: {value: 600000, yield_pct: 1.5}
    custom:
      - name: startup shares
        value: 50000
  cash:
    named:
      savings_account: {value: 150000, yield_pct: 3}
liabilities:
  named:
    car_loan: {amount: 100000, remaining_tenure_months: 24}
income:
  regular: 100000
  additional:
    - name: bonus
      amount: 120000
      frequency: yearly
expenses:
  monthly_recurring:
    named:
      rent: 40000
  annual_recurring:
    named:
      insurance_premiums: 24000
goals:
  - name: house
    type: home
    target_amount: 5000000
    timeline_years: 8
    priority: high
    start_date: 2024-01-01T00:00:00Z
risk_answers: {experience: 3, knowledge: 4, volatility_tolerance: 3, goal_orientation: 2, horizon: 5}
assumptions:
  expected_return_pct: 10
`

func TestInputParser_Parse(t *testing.T) {
	ip := NewInputParser()

	state, err := ip.Parse([]byte(sampleLedger))
	require.NoError(t, err)

	assert.Equal(t, "Asha", state.Personal.Name)
	assert.True(t, state.Assets.Category(domain.Equity).Named["index_funds"].Value.Equal(decimal.NewFromInt(600000)))
	require.Len(t, state.Assets.Category(domain.Equity).Custom, 1)
	assert.NotEmpty(t, state.Assets.Category(domain.Equity).Custom[0].ID, "normalization assigns ids")
	assert.Equal(t, domain.Annually, state.Income.Additional[0].Frequency)
	assert.Equal(t, 24, state.Liabilities.Named["car_loan"].RemainingTenureMonths)
	require.Len(t, state.Goals, 1)
	assert.Equal(t, 8, state.Goals[0].TimelineYears)

	// unspecified assumptions keep their defaults
	assert.True(t, state.Assumptions.ExpectedReturnPct.Equal(decimal.NewFromInt(10)))
	assert.True(t, state.Assumptions.InflationPct.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 85, state.Assumptions.LifeExpectancy)

	// standard categories are always present
	for _, c := range domain.StandardAssetCategories() {
		assert.Contains(t, state.Assets, c)
	}
}

func TestInputParser_ParseKeepsExplicitZeroRates(t *testing.T) {
	ip := NewInputParser()

	state, err := ip.Parse([]byte("assumptions:\n  expected_return_pct: 0\n  inflation_pct: 0\n  savings_growth_pct: 0\n"))
	require.NoError(t, err)

	assert.True(t, state.Assumptions.ExpectedReturnPct.IsZero())
	assert.True(t, state.Assumptions.InflationPct.IsZero())
	assert.True(t, state.Assumptions.SavingsGrowthPct.IsZero())
	assert.Equal(t, 85, state.Assumptions.LifeExpectancy)
}

func TestInputParser_ParseCoercesNegativeAmounts(t *testing.T) {
	ip := NewInputParser()

	state, err := ip.Parse([]byte("income:\n  regular: -5000\nexpenses:\n  monthly_recurring:\n    named:\n      rent: -1\n"))
	require.NoError(t, err, "bad amounts never block loading")

	assert.True(t, state.Income.Regular.IsZero())
	assert.True(t, state.Expenses.MonthlyRecurring.Named["rent"].IsZero())
}

func TestInputParser_ParseJSON(t *testing.T) {
	ip := NewInputParser()

	state, err := ip.Parse([]byte(`{"income": {"regular": 75000}, "risk_answers": {"horizon": 4}}`))
	require.NoError(t, err)

	assert.True(t, state.Income.Regular.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, 4, state.RiskAnswers.Horizon)
}

func TestInputParser_ParseErrors(t *testing.T) {
	ip := NewInputParser()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"malformed yaml", "income: [", "failed to parse YAML"},
		{"future version", "version: 99", "unsupported state version"},
		{"unknown frequency", "income:\n  additional:\n    - {name: gig, amount: 10, frequency: fortnightly}", "unknown frequency"},
		{"goal without timeline", "goals:\n  - {name: car, target_amount: 10}", "timeline must be at least one year"},
		{"duplicate goal ids", "goals:\n  - {id: g1, name: a, timeline_years: 1}\n  - {id: g1, name: b, timeline_years: 2}", "duplicate id"},
		{"risk answer out of range", "risk_answers: {experience: 7}", "experience must be between 1 and 5"},
		{"return too high", "assumptions: {expected_return_pct: 80}", "expected return cannot exceed"},
		{"life expectancy too low", "assumptions: {life_expectancy: 20}", "life expectancy must be between 40 and 120"},
		{"unnamed custom asset", "assets:\n  equity:\n    custom:\n      - {value: 10}", "name is required"},
		{"unnamed policy", "insurance:\n  life:\n    - {sum_assured: 100}", "life policy 0: name is required"},
		{"retirement after life expectancy", "personal: {retirement_age: 90, life_expectancy: 80}", "must be before life expectancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ip.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_LoadFromFile(t *testing.T) {
	ip := NewInputParser()
	path := filepath.Join(t.TempDir(), "finfree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLedger), 0o600))

	state, err := ip.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Asha", state.Personal.Name)

	_, err = ip.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to read file"))
}

func TestInputParser_MarshalRoundTrip(t *testing.T) {
	ip := NewInputParser()
	state, err := ip.Parse([]byte(sampleLedger))
	require.NoError(t, err)
	state.Summary = &domain.DerivedSummary{NetWorth: decimal.NewFromInt(1)}

	data, err := ip.Marshal(state)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "net_worth", "the summary is derived and never written")

	again, err := ip.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, state.Personal.Name, again.Personal.Name)
	assert.True(t, state.Personal.BirthDate.Equal(again.Personal.BirthDate))
	assert.True(t, again.Income.Additional[0].Amount.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, state.Goals[0].ID, again.Goals[0].ID)

	_, err = ip.Marshal(nil)
	assert.Error(t, err)
}
