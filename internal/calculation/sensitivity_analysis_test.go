package calculation

import (
	"testing"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepState() *domain.AppState {
	s := domain.NewAppState()
	s.Assets.Category(domain.Cash).Named["bank"] = rec(10000000)
	s.Expenses.MonthlyRecurring.Named["living"] = d(50000)
	return s
}

func returnSweep() domain.SensitivityParameter {
	return domain.SensitivityParameter{
		Name:      domain.ParamExpectedReturn,
		MinValue:  d(4),
		MaxValue:  d(12),
		Steps:     3,
		BaseValue: d(12),
		Unit:      "percent",
	}
}

func TestSensitivityAnalyzer_SingleParameter(t *testing.T) {
	state := sweepState()
	analyzer := NewSensitivityAnalyzer(fixedEngine())

	analysis, err := analyzer.AnalyzeSingleParameter(state, ParamsFromAssumptions(state.Assumptions, testAsOf), returnSweep())
	require.NoError(t, err)

	require.Len(t, analysis.Results, 3)
	assert.Equal(t, "single", analysis.AnalysisType)

	var values []string
	prev := -1
	for _, r := range analysis.Results {
		values = append(values, r.ParameterValues[domain.ParamExpectedReturn].String())
		years := r.KeyMetrics.DepletionYears
		assert.GreaterOrEqual(t, years, prev, "higher returns never deplete sooner")
		prev = years
	}
	assert.Equal(t, []string{"4", "8", "12"}, values)

	last := analysis.Results[2].KeyMetrics
	assert.Equal(t, analysis.Baseline.DepletionYears, last.DepletionYears, "the top of the sweep equals the baseline")
	assert.Equal(t, 0, last.DepletionChange)
	assert.Less(t, analysis.Results[0].KeyMetrics.DepletionChange, 0)
}

func TestSensitivityAnalyzer_MultipleParameters(t *testing.T) {
	state := sweepState()
	analyzer := NewSensitivityAnalyzer(nil)
	growth := domain.SensitivityParameter{
		Name:     domain.ParamSavingsGrowth,
		MinValue: d(0),
		MaxValue: d(10),
		Steps:    3,
	}

	analysis, err := analyzer.AnalyzeMultipleParameters(state, ParamsFromAssumptions(state.Assumptions, testAsOf), []domain.SensitivityParameter{growth, returnSweep()})
	require.NoError(t, err)

	assert.Len(t, analysis.Results, 6)
	assert.Equal(t, domain.ParamExpectedReturn, analysis.Summary.MostSensitiveParameter)
	assertDecimal(t, decimal.Zero, analysis.Summary.SensitivityScores[domain.ParamSavingsGrowth], "savings growth never changes depletion")
	assert.NotEmpty(t, analysis.Summary.Recommendations)
}

func TestSensitivityAnalyzer_UnknownParameter(t *testing.T) {
	state := sweepState()
	analyzer := NewSensitivityAnalyzer(nil)
	bad := domain.SensitivityParameter{Name: "moon_phase", MinValue: d(1), MaxValue: d(2), Steps: 2}

	_, err := analyzer.AnalyzeSingleParameter(state, ParamsFromAssumptions(state.Assumptions, testAsOf), bad)
	assert.Error(t, err)
}

func TestSensitivityAnalyzer_Matrix(t *testing.T) {
	state := sweepState()
	analyzer := NewSensitivityAnalyzer(nil)
	inflation := domain.SensitivityParameter{Name: domain.ParamInflation, MinValue: d(4), MaxValue: d(8), Steps: 2}

	matrix, err := analyzer.AnalyzeParameterMatrix(state, ParamsFromAssumptions(state.Assumptions, testAsOf), returnSweep(), inflation)
	require.NoError(t, err)

	require.Len(t, matrix.MatrixResults, 3)
	for _, row := range matrix.MatrixResults {
		require.Len(t, row, 2)
		assert.GreaterOrEqual(t, row[0].KeyMetrics.DepletionYears, row[1].KeyMetrics.DepletionYears, "more inflation never lasts longer")
	}
}

func TestGenerateParameterValues_SingleStepUsesBase(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	values := analyzer.generateParameterValues(domain.SensitivityParameter{MinValue: d(1), MaxValue: d(9), Steps: 1, BaseValue: d(5)})

	require.Len(t, values, 1)
	assertDecimal(t, d(5), values[0])
}

func TestCommonSensitivityParameters(t *testing.T) {
	params := domain.CommonSensitivityParameters(domain.DefaultAssumptions())

	require.Len(t, params, 3)
	assertDecimal(t, d(8), params[0].MinValue)
	assertDecimal(t, d(16), params[0].MaxValue)
	for _, p := range params {
		assert.False(t, p.MinValue.IsNegative(), p.Name)
	}
}
