package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepParams(t *testing.T) (*domain.AppState, calculation.Params, []domain.SensitivityParameter) {
	t.Helper()
	state := buildTestState(t)
	return state, calculation.ParamsFromAssumptions(state.Assumptions, reportAsOf), domain.CommonSensitivityParameters(state.Assumptions)
}

func TestSensitivityConsoleFormatter_Single(t *testing.T) {
	state, base, params := sweepParams(t)
	analysis, err := calculation.NewSensitivityAnalyzer(nil).AnalyzeSingleParameter(state, base, params[0])
	require.NoError(t, err)

	out, err := SensitivityConsoleFormatter{Currency: "USD"}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY ANALYSIS: EXPECTED RETURN PCT")
	assert.Contains(t, out, "12.0% ← BASE")
	assert.Contains(t, out, "Wealth Lasts")
	assert.Contains(t, out, "RISK LEVEL:")
	assert.Equal(t, 1, strings.Count(out, "← BASE"))
}

func TestSensitivityConsoleFormatter_Matrix(t *testing.T) {
	state, base, params := sweepParams(t)
	matrix, err := calculation.NewSensitivityAnalyzer(nil).AnalyzeParameterMatrix(state, base, params[0], params[1])
	require.NoError(t, err)

	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(matrix)
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY MATRIX ANALYSIS")
	assert.Contains(t, out, "Rows:    EXPECTED RETURN PCT")
	assert.Contains(t, out, "Columns: INFLATION PCT")
}

func TestSensitivityFormatters_Errors(t *testing.T) {
	formatters := []SensitivityFormatter{SensitivityConsoleFormatter{}, SensitivityCSVFormatter{}, SensitivityJSONFormatter{}}
	for _, f := range formatters {
		_, err := f.FormatSensitivityAnalysis("not an analysis")
		assert.Error(t, err, f.Name())
	}

	_, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.ParameterSensitivityAnalysis{})
	assert.Error(t, err, "empty analysis")

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.SensitivityMatrix{})
	assert.Error(t, err, "empty matrix")
}

func TestSensitivityCSVFormatter(t *testing.T) {
	state, base, params := sweepParams(t)
	analysis, err := calculation.NewSensitivityAnalyzer(nil).AnalyzeSingleParameter(state, base, params[1])
	require.NoError(t, err)

	out, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "inflation_pct,depletion_years,depletion_change,years_to_freedom,ff_score_pct,required_corpus", lines[0])
	assert.Len(t, lines, len(analysis.Results)+1)
}

func TestSensitivityJSONFormatter(t *testing.T) {
	state, base, params := sweepParams(t)
	analysis, err := calculation.NewSensitivityAnalyzer(nil).AnalyzeSingleParameter(state, base, params[0])
	require.NoError(t, err)

	out, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "baseline")
	assert.Contains(t, decoded, "results")
}

func TestGetSensitivityFormatter(t *testing.T) {
	for _, name := range []string{"", "console", "csv", "json"} {
		f, err := GetSensitivityFormatter(name, "INR")
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := GetSensitivityFormatter("html", "INR")
	assert.Error(t, err)
}
