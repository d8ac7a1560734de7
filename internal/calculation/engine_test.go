package calculation

import (
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// sampleState is a mid-career household: 1M of assets, a car loan, a salary plus an annual bonus
func sampleState() *domain.AppState {
	s := domain.NewAppState()
	s.Personal.Name = "Asha"
	s.Personal.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Assets.Category(domain.Equity).Named["index_funds"] = rec(600000)
	s.Assets.Category(domain.FixedIncome).Named["ppf"] = rec(250000)
	s.Assets.Category(domain.Cash).Named["savings_account"] = rec(150000)
	s.Liabilities.Named[domain.CarLoan] = domain.Liability{Amount: d(100000), RemainingTenureMonths: 24}
	s.Income.Regular = d(100000)
	s.Income.Additional = []domain.AdditionalIncome{{Name: "bonus", Amount: d(120000), Frequency: domain.Annually}}
	s.Expenses.MonthlyRecurring.Named["rent"] = d(40000)
	s.Expenses.MonthlyRecurring.Named["groceries"] = d(10000)
	s.Expenses.AnnualRecurring.Named["insurance_premiums"] = d(120000)
	s.RiskAnswers = answers(3, 3, 3, 3, 3)
	return s
}

func fixedEngine() *CalculationEngine {
	e := NewCalculationEngine()
	e.Now = func() time.Time { return testAsOf }
	return e
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.NotNil(t, engine.Now, "Should initialize clock")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_RecomputeNilState(t *testing.T) {
	engine := NewCalculationEngine()

	summary, err := engine.Recompute(nil, Params{})
	assert.Error(t, err)
	assert.Nil(t, summary)

	summary, err = engine.RecomputeState(nil)
	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestCalculationEngine_RecomputeState(t *testing.T) {
	summary, err := fixedEngine().RecomputeState(sampleState())
	require.NoError(t, err)

	assertDecimal(t, d(1000000), summary.TotalAssets)
	assertDecimal(t, d(100000), summary.TotalLiabilities)
	assertDecimal(t, d(900000), summary.NetWorth)
	assertDecimal(t, d(110000), summary.MonthlyIncome)
	assertDecimal(t, d(60000), summary.MonthlyExpenses)
	assertDecimal(t, d(720000), summary.AnnualExpenses)
	assertDecimal(t, d(50000), summary.MonthlySavings)
	assertDecimal(t, decimal.RequireFromString("45.45"), summary.SavingsRate)
	assertDecimal(t, d(10), summary.DebtRatio)
	assertDecimal(t, d(150000), summary.LiquidAssets)

	assert.Equal(t, 1, summary.FFDepletionYears)
	assert.Equal(t, string(DepletionInsecure), summary.FFDepletionStatus)

	assertDecimal(t, d(12000000), summary.RequiredCorpus)
	assertDecimal(t, decimal.RequireFromString("7.5"), summary.FFScorePct)
	assert.Equal(t, string(AccumulationJustBeginning), summary.FFAccumulationStatus)

	require.NotNil(t, summary.FFYearsToFreedom)
	assert.True(t, summary.IsFreedomReachable())
	require.NotNil(t, summary.FreedomAge)
	assert.Equal(t, 35+*summary.FFYearsToFreedom, *summary.FreedomAge)

	assert.Equal(t, 60, summary.Risk.Score)
	assert.Equal(t, domain.ModeratelyAggressive, summary.Risk.Category)
	assertDecimal(t, d(100), summary.Health.InvestmentMixScore)

	require.NotEmpty(t, summary.Projection)
	first := summary.Projection[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 35, first.Age)
	assertDecimal(t, d(900000), first.ExpectedCorpus)
	last := summary.Projection[len(summary.Projection)-1]
	assert.True(t, last.ExpectedCorpus.GreaterThanOrEqual(last.RequiredCorpus), "projection ends once the corpus is enough")
	assert.Equal(t, testAsOf, summary.ComputedAt)
}

func TestCalculationEngine_DoesNotMutateInput(t *testing.T) {
	state := sampleState()
	state.Assets.Category(domain.Commodities).Named["gold"] = rec(-500)

	_, err := fixedEngine().RecomputeState(state)
	require.NoError(t, err)

	assert.Nil(t, state.Summary, "Recompute returns the summary, it does not attach it")
	assertDecimal(t, d(-500), state.Assets.Category(domain.Commodities).Named["gold"].Value)
}

func TestCalculationEngine_RecomputeStateUsesNormalizedAssumptions(t *testing.T) {
	negative := d(-20000)
	raw := sampleState()
	raw.Assumptions = domain.Assumptions{ExpectedReturnPct: d(10), InflationPct: d(-4), MonthlySavings: &negative}

	normalized := raw.Clone()
	normalized.Normalize()

	engine := fixedEngine()
	got, err := engine.RecomputeState(raw)
	require.NoError(t, err)
	want, err := engine.RecomputeState(normalized)
	require.NoError(t, err)

	assertDecimal(t, decimal.Zero, got.MonthlySavings)
	assertDecimal(t, want.RequiredCorpus, got.RequiredCorpus)
	assert.Equal(t, want.FFDepletionYears, got.FFDepletionYears)
	assert.Equal(t, want.FFYearsToFreedom, got.FFYearsToFreedom)
	assert.Equal(t, want.Projection, got.Projection)
	assert.Equal(t, 0, raw.Assumptions.LifeExpectancy, "the caller's state is left alone")
}

func TestCalculationEngine_MonthlySavingsOverride(t *testing.T) {
	state := sampleState()
	zeroSavings := decimal.Zero
	params := ParamsFromAssumptions(state.Assumptions, testAsOf)
	params.MonthlySavings = &zeroSavings

	summary, err := fixedEngine().Recompute(state, params)
	require.NoError(t, err)

	assertDecimal(t, decimal.Zero, summary.MonthlySavings)
	require.NotNil(t, summary.FFYearsToFreedom)
	// 900k compounding at 12% first passes 12M in year 23
	assert.Equal(t, 23, *summary.FFYearsToFreedom)
}

func TestCalculationEngine_UnreachableFreedom(t *testing.T) {
	state := domain.NewAppState()
	state.Expenses.MonthlyRecurring.Named["rent"] = d(10000)

	logger := &TestLogger{}
	engine := fixedEngine()
	engine.SetLogger(logger)

	summary, err := engine.RecomputeState(state)
	require.NoError(t, err)

	assert.Nil(t, summary.FFYearsToFreedom)
	assert.Nil(t, summary.FreedomAge)
	assert.False(t, summary.IsFreedomReachable())
	assert.Equal(t, 0, summary.FFDepletionYears)
	assert.Len(t, summary.Projection, MaxHorizonYears+1)
	assert.True(t, logger.contains("INFO: financial freedom not reachable"))
}

func TestCalculationEngine_WarnsPastLifeExpectancy(t *testing.T) {
	state := sampleState()
	params := ParamsFromAssumptions(state.Assumptions, testAsOf)
	params.LifeExpectancy = 36

	logger := &TestLogger{}
	engine := fixedEngine()
	engine.SetLogger(logger)

	_, err := engine.Recompute(state, params)
	require.NoError(t, err)
	assert.True(t, logger.contains("WARN: freedom age"))
}

func TestCalculationEngine_NoExpenses(t *testing.T) {
	state := domain.NewAppState()
	state.Income.Regular = d(50000)

	summary, err := fixedEngine().RecomputeState(state)
	require.NoError(t, err)

	assert.Equal(t, MaxHorizonYears, summary.FFDepletionYears)
	assert.Equal(t, string(DepletionUltimate), summary.FFDepletionStatus)
	assertDecimal(t, d(100), summary.FFScorePct)
	require.NotNil(t, summary.FFYearsToFreedom)
	assert.Equal(t, 0, *summary.FFYearsToFreedom)
	assert.Nil(t, summary.FreedomAge, "no birth date means no age")
}

func TestCalculationEngine_GoalStatuses(t *testing.T) {
	state := sampleState()
	state.Goals = append(state.Goals, domain.Goal{
		ID:            "house",
		Name:          "House deposit",
		TargetAmount:  d(2000000),
		TimelineYears: 10,
		StartDate:     time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	summary, err := fixedEngine().RecomputeState(state)
	require.NoError(t, err)

	require.Len(t, summary.Goals, 1)
	g := summary.Goals[0]
	assert.Equal(t, "house", g.GoalID)
	assert.Equal(t, 5, g.YearsRemaining)
	assert.True(t, g.ProgressPct.GreaterThan(d(49)) && g.ProgressPct.LessThan(d(51)), "half the timeline has elapsed: %s", g.ProgressPct)
	assert.True(t, g.RequiredMonthlySaving.IsPositive())
}

func TestCalculationEngine_Deterministic(t *testing.T) {
	engine := fixedEngine()
	state := sampleState()

	a, err := engine.RecomputeState(state)
	require.NoError(t, err)
	b, err := engine.RecomputeState(state)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) contains(prefix string) bool {
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
