package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	mc := NewMetricsCalculator()
	summary := &domain.DerivedSummary{
		FFDepletionYears:  30,
		FFDepletionStatus: "Getting There",
		FFYearsToFreedom:  intPtr(9),
		FFScorePct:        decimal.NewFromInt(55),
		RequiredCorpus:    decimal.NewFromInt(15000000),
		MonthlySavings:    decimal.NewFromInt(80000),
		Health:            domain.HealthScore{Overall: decimal.NewFromInt(71)},
	}

	result := mc.CalculateMetrics("current", summary, domain.DefaultAssumptions())

	assert.Equal(t, "current", result.ScenarioName)
	assert.Same(t, summary, result.Summary)
	assert.Equal(t, 30, result.DepletionYears)
	assert.Equal(t, "Getting There", result.DepletionStatus)
	assert.Equal(t, 9, *result.YearsToFreedom)
	assert.True(t, result.HealthOverall.Equal(decimal.NewFromInt(71)))
	assert.True(t, result.ExpectedReturnPct.Equal(decimal.NewFromInt(12)))
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := ComparisonResult{
		DepletionYears: 20,
		YearsToFreedom: intPtr(15),
		FFScorePct:     decimal.NewFromInt(40),
		RequiredCorpus: decimal.NewFromInt(10000000),
		MonthlySavings: decimal.NewFromInt(50000),
	}
	alt := ComparisonResult{
		DepletionYears: 18,
		YearsToFreedom: intPtr(12),
		FFScorePct:     decimal.NewFromInt(45),
		RequiredCorpus: decimal.NewFromInt(9000000),
		MonthlySavings: decimal.NewFromInt(55000),
	}

	result := mc.CalculateComparison(alt, base)

	assert.Equal(t, -2, result.DepletionYearsDiff)
	require.NotNil(t, result.FreedomYearsDiff)
	assert.Equal(t, -3, *result.FreedomYearsDiff)
	assert.True(t, result.FFScoreDiff.Equal(decimal.NewFromInt(5)))
	assert.True(t, result.RequiredCorpusDiff.Equal(decimal.NewFromInt(-1000000)))
	assert.True(t, result.SavingsDiff.Equal(decimal.NewFromInt(5000)))

	alt.YearsToFreedom = nil
	assert.Nil(t, mc.CalculateComparison(alt, base).FreedomYearsDiff, "no diff when either side is unreachable")
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := sampleComparisonSet()

	recs := GenerateRecommendations(compSet)

	require.Len(t, recs, 2)
	assert.Equal(t, "Fastest Freedom: lean_fire reaches financial freedom 5 years sooner than base", recs[0])
	assert.Equal(t, "Best Coverage: lean_fire makes current wealth last 5 more years", recs[1])
}

func TestGenerateRecommendations_BaseUnreachable(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.BaseResult.YearsToFreedom = nil
	compSet.AlternativeResults[0].DepletionYears = compSet.BaseResult.DepletionYears

	recs := GenerateRecommendations(compSet)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "reachable in 13 years")
}

func TestGenerateRecommendations_WarnsWhenFreedomLost(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{
		ScenarioName:   "high_inflation",
		DepletionYears: 8,
	})

	recs := GenerateRecommendations(compSet)

	found := false
	for _, r := range recs {
		if strings.HasPrefix(r, "Warning: under high_inflation") {
			found = true
		}
	}
	assert.True(t, found, "expected a warning in %v", recs)
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil

	recs := GenerateRecommendations(compSet)

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGenerateRecommendations_NoBetterThanBase(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults[0].YearsToFreedom = intPtr(25)
	compSet.AlternativeResults[0].DepletionYears = 3

	assert.Empty(t, GenerateRecommendations(compSet))
}
