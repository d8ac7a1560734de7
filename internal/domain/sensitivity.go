package domain

import (
	"github.com/shopspring/decimal"
)

// Sweepable assumption names
const (
	ParamExpectedReturn = "expected_return_pct"
	ParamInflation      = "inflation_pct"
	ParamSavingsGrowth  = "savings_growth_pct"
	ParamMonthlySavings = "monthly_savings"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"min_value"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"max_value"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"base_value"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent" or "currency"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityMetrics are the financial freedom figures recorded at each sweep point
type SensitivityMetrics struct {
	DepletionYears    int             `json:"depletion_years"`
	YearsToFreedom    *int            `json:"years_to_freedom"`
	FFScorePct        decimal.Decimal `json:"ff_score_pct"`
	RequiredCorpus    decimal.Decimal `json:"required_corpus"`
	DepletionChange   int             `json:"depletion_change"`
	FreedomYearChange *int            `json:"freedom_year_change"`
}

// SensitivityResult is one point of a sweep
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameter_values"`
	KeyMetrics      SensitivityMetrics         `json:"key_metrics"`
}

// SensitivitySummary provides the overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"most_sensitive_parameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivity_scores"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"risk_level"` // "LOW", "MEDIUM", "HIGH"
}

// ParameterSensitivityAnalysis is a complete sweep over one or more parameters
type ParameterSensitivityAnalysis struct {
	Parameters   []SensitivityParameter `json:"parameters"`
	Baseline     SensitivityMetrics     `json:"baseline"`
	Results      []SensitivityResult    `json:"results"`
	Summary      SensitivitySummary     `json:"summary"`
	AnalysisType string                 `json:"analysis_type"` // "single", "multi", "matrix"
}

// SensitivityMatrix is a two-parameter sweep
type SensitivityMatrix struct {
	Parameter1    SensitivityParameter  `json:"parameter1"`
	Parameter2    SensitivityParameter  `json:"parameter2"`
	MatrixResults [][]SensitivityResult `json:"matrix_results"`
}

// CommonSensitivityParameters returns the usual sweeps around the given assumptions
func CommonSensitivityParameters(a Assumptions) []SensitivityParameter {
	two := decimal.NewFromInt(2)
	four := decimal.NewFromInt(4)
	return []SensitivityParameter{
		{
			Name:        ParamExpectedReturn,
			MinValue:    NonNegative(a.ExpectedReturnPct.Sub(four)),
			MaxValue:    a.ExpectedReturnPct.Add(four),
			Steps:       5,
			BaseValue:   a.ExpectedReturnPct,
			Unit:        "percent",
			Description: "Expected annual portfolio return",
		},
		{
			Name:        ParamInflation,
			MinValue:    NonNegative(a.InflationPct.Sub(two)),
			MaxValue:    a.InflationPct.Add(two),
			Steps:       5,
			BaseValue:   a.InflationPct,
			Unit:        "percent",
			Description: "Annual expense inflation",
		},
		{
			Name:        ParamSavingsGrowth,
			MinValue:    NonNegative(a.SavingsGrowthPct.Sub(two)),
			MaxValue:    a.SavingsGrowthPct.Add(two),
			Steps:       5,
			BaseValue:   a.SavingsGrowthPct,
			Unit:        "percent",
			Description: "Annual growth of contributions",
		},
	}
}
