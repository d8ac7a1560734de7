package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter sweeps one assumption from MinValue to MaxValue
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	state *domain.AppState,
	base Params,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	baseline, err := sa.metricsFor(state, base)
	if err != nil {
		return nil, fmt.Errorf("failed to compute baseline: %w", err)
	}

	values := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))
	for _, value := range values {
		params, err := withParameter(base, parameter.Name, value)
		if err != nil {
			return nil, err
		}
		metrics, err := sa.metricsFor(state, params)
		if err != nil {
			return nil, fmt.Errorf("failed to run %s=%s: %w", parameter.Name, value.String(), err)
		}
		results = append(results, domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{parameter.Name: value},
			KeyMetrics:      withChanges(metrics, baseline),
		})
	}

	return &domain.ParameterSensitivityAnalysis{
		Parameters:   []domain.SensitivityParameter{parameter},
		Baseline:     baseline,
		Results:      results,
		Summary:      sa.calculateSummary(results, []domain.SensitivityParameter{parameter}),
		AnalysisType: "single",
	}, nil
}

// AnalyzeMultipleParameters runs a single-parameter sweep for each parameter in turn
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	state *domain.AppState,
	base Params,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	var all []domain.SensitivityResult
	var baseline domain.SensitivityMetrics
	for _, p := range parameters {
		a, err := sa.AnalyzeSingleParameter(state, base, p)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", p.Name, err)
		}
		baseline = a.Baseline
		all = append(all, a.Results...)
	}
	return &domain.ParameterSensitivityAnalysis{
		Parameters:   parameters,
		Baseline:     baseline,
		Results:      all,
		Summary:      sa.calculateSummary(all, parameters),
		AnalysisType: "multi",
	}, nil
}

// AnalyzeParameterMatrix sweeps two parameters against each other
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	state *domain.AppState,
	base Params,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {
	baseline, err := sa.metricsFor(state, base)
	if err != nil {
		return nil, err
	}
	values1 := sa.generateParameterValues(param1)
	values2 := sa.generateParameterValues(param2)

	matrix := make([][]domain.SensitivityResult, len(values1))
	for i, v1 := range values1 {
		matrix[i] = make([]domain.SensitivityResult, len(values2))
		for j, v2 := range values2 {
			params, err := withParameter(base, param1.Name, v1)
			if err != nil {
				return nil, err
			}
			params, err = withParameter(params, param2.Name, v2)
			if err != nil {
				return nil, err
			}
			metrics, err := sa.metricsFor(state, params)
			if err != nil {
				return nil, err
			}
			matrix[i][j] = domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{param1.Name: v1, param2.Name: v2},
				KeyMetrics:      withChanges(metrics, baseline),
			}
		}
	}
	return &domain.SensitivityMatrix{Parameter1: param1, Parameter2: param2, MatrixResults: matrix}, nil
}

func (sa *SensitivityAnalyzer) metricsFor(state *domain.AppState, params Params) (domain.SensitivityMetrics, error) {
	summary, err := sa.calculationEngine.Recompute(state, params)
	if err != nil {
		return domain.SensitivityMetrics{}, err
	}
	return domain.SensitivityMetrics{
		DepletionYears: summary.FFDepletionYears,
		YearsToFreedom: summary.FFYearsToFreedom,
		FFScorePct:     summary.FFScorePct,
		RequiredCorpus: summary.RequiredCorpus,
	}, nil
}

func withChanges(m, baseline domain.SensitivityMetrics) domain.SensitivityMetrics {
	m.DepletionChange = m.DepletionYears - baseline.DepletionYears
	if m.YearsToFreedom != nil && baseline.YearsToFreedom != nil {
		d := *m.YearsToFreedom - *baseline.YearsToFreedom
		m.FreedomYearChange = &d
	}
	return m
}

// withParameter returns a copy of params with one assumption replaced
func withParameter(p Params, name string, value decimal.Decimal) (Params, error) {
	switch name {
	case domain.ParamExpectedReturn:
		p.ExpectedReturnPct = value
	case domain.ParamInflation:
		p.InflationPct = value
	case domain.ParamSavingsGrowth:
		p.SavingsGrowthPct = value
	case domain.ParamMonthlySavings:
		v := value
		p.MonthlySavings = &v
	default:
		return p, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	return p, nil
}

// generateParameterValues generates evenly spaced values from MinValue to MaxValue
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}
	values := make([]decimal.Decimal, 0, param.Steps)
	step := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i)))).Round(4))
	}
	return values
}

// calculateSummary scores each parameter by the spread of depletion years it produced
func (sa *SensitivityAnalyzer) calculateSummary(results []domain.SensitivityResult, params []domain.SensitivityParameter) domain.SensitivitySummary {
	scores := make(map[string]decimal.Decimal, len(params))
	for _, p := range params {
		minYears, maxYears := MaxHorizonYears, 0
		seen := false
		for _, r := range results {
			if _, ok := r.ParameterValues[p.Name]; !ok {
				continue
			}
			seen = true
			if r.KeyMetrics.DepletionYears < minYears {
				minYears = r.KeyMetrics.DepletionYears
			}
			if r.KeyMetrics.DepletionYears > maxYears {
				maxYears = r.KeyMetrics.DepletionYears
			}
		}
		if seen {
			scores[p.Name] = decimal.NewFromInt(int64(maxYears - minYears))
		}
	}

	names := make([]string, 0, len(scores))
	for n := range scores {
		names = append(names, n)
	}
	sort.Strings(names)

	mostSensitive := ""
	best := decimal.NewFromInt(-1)
	for _, n := range names {
		if scores[n].GreaterThan(best) {
			best = scores[n]
			mostSensitive = n
		}
	}

	risk := "LOW"
	switch {
	case best.GreaterThanOrEqual(decimal.NewFromInt(25)):
		risk = "HIGH"
	case best.GreaterThanOrEqual(decimal.NewFromInt(10)):
		risk = "MEDIUM"
	}

	var recs []string
	if mostSensitive != "" && best.IsPositive() {
		recs = append(recs, fmt.Sprintf("Coverage years move by up to %s across the %s range", best.String(), mostSensitive))
	}
	if risk == "HIGH" {
		recs = append(recs, "Plan is fragile: build a larger buffer or reduce expenses")
	}

	return domain.SensitivitySummary{
		MostSensitiveParameter: mostSensitive,
		SensitivityScores:      scores,
		Recommendations:        recs,
		RiskLevel:              risk,
	}
}
