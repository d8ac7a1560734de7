package compare

import (
	"fmt"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if run with its financial freedom metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenario_name"`
	Description  string                 `json:"description,omitempty"`
	Summary      *domain.DerivedSummary `json:"-"`

	// Key Metrics
	DepletionYears  int             `json:"depletion_years"`
	DepletionStatus string          `json:"depletion_status"`
	YearsToFreedom  *int            `json:"years_to_freedom"` // nil when unreachable
	FFScorePct      decimal.Decimal `json:"ff_score_pct"`
	RequiredCorpus  decimal.Decimal `json:"required_corpus"`
	MonthlySavings  decimal.Decimal `json:"monthly_savings"`
	HealthOverall   decimal.Decimal `json:"health_overall"`

	// Comparison to Base
	DepletionYearsDiff int             `json:"depletion_years_diff"`
	FreedomYearsDiff   *int            `json:"freedom_years_diff,omitempty"`
	FFScoreDiff        decimal.Decimal `json:"ff_score_diff"`
	RequiredCorpusDiff decimal.Decimal `json:"required_corpus_diff"`
	SavingsDiff        decimal.Decimal `json:"savings_diff"`

	// Assumptions the run used (for display)
	ExpectedReturnPct decimal.Decimal `json:"expected_return_pct"`
	InflationPct      decimal.Decimal `json:"inflation_pct"`
}

// ComparisonSet represents a base run plus its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	StatePath          string             `json:"state_path,omitempty"`
}

// MetricsCalculator extracts key metrics from derived summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a summary
func (mc *MetricsCalculator) CalculateMetrics(name string, summary *domain.DerivedSummary, assumptions domain.Assumptions) ComparisonResult {
	return ComparisonResult{
		ScenarioName:      name,
		Summary:           summary,
		DepletionYears:    summary.FFDepletionYears,
		DepletionStatus:   summary.FFDepletionStatus,
		YearsToFreedom:    summary.FFYearsToFreedom,
		FFScorePct:        summary.FFScorePct,
		RequiredCorpus:    summary.RequiredCorpus,
		MonthlySavings:    summary.MonthlySavings,
		HealthOverall:     summary.Health.Overall,
		ExpectedReturnPct: assumptions.ExpectedReturnPct,
		InflationPct:      assumptions.InflationPct,
	}
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.DepletionYearsDiff = scenario.DepletionYears - base.DepletionYears
	scenario.FFScoreDiff = scenario.FFScorePct.Sub(base.FFScorePct)
	scenario.RequiredCorpusDiff = scenario.RequiredCorpus.Sub(base.RequiredCorpus)
	scenario.SavingsDiff = scenario.MonthlySavings.Sub(base.MonthlySavings)

	if scenario.YearsToFreedom != nil && base.YearsToFreedom != nil {
		diff := *scenario.YearsToFreedom - *base.YearsToFreedom
		scenario.FreedomYearsDiff = &diff
	}

	return scenario
}

// freedomYears orders results by years to freedom, with unreachable last
func freedomYears(r *ComparisonResult) int {
	if r.YearsToFreedom == nil {
		return int(^uint(0) >> 1)
	}
	return *r.YearsToFreedom
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Soonest financial freedom
	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if freedomYears(alt) < freedomYears(fastest) {
			fastest = alt
		}
	}

	if fastest != base {
		if base.YearsToFreedom == nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest Freedom: %s makes financial freedom reachable in %d years", fastest.ScenarioName, *fastest.YearsToFreedom))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest Freedom: %s reaches financial freedom %d years sooner than base",
					fastest.ScenarioName, *base.YearsToFreedom-*fastest.YearsToFreedom))
		}
	}

	// Longest coverage of expenses
	longest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.DepletionYears > longest.DepletionYears {
			longest = alt
		}
	}

	if longest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Coverage: %s makes current wealth last %d more years", longest.ScenarioName, longest.DepletionYears-base.DepletionYears))
	}

	// Any alternative that makes freedom unreachable deserves a warning
	for _, alt := range compSet.AlternativeResults {
		if alt.YearsToFreedom == nil && base.YearsToFreedom != nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: under %s financial freedom is no longer reachable", alt.ScenarioName))
		}
	}

	return recommendations
}
