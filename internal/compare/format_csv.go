package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Depletion Years",
		"Years To Freedom",
		"FF Score %",
		"Required Corpus",
		"Monthly Savings",
		"Health Score",
		"Depletion Diff",
		"Freedom Years Diff",
		"FF Score Diff",
		"Required Corpus Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		formatInt(result.DepletionYears),
		formatOptionalInt(result.YearsToFreedom),
		result.FFScorePct.StringFixed(2),
		result.RequiredCorpus.StringFixed(2),
		result.MonthlySavings.StringFixed(2),
		result.HealthOverall.StringFixed(2),
		formatInt(result.DepletionYearsDiff),
		formatOptionalInt(result.FreedomYearsDiff),
		result.FFScoreDiff.StringFixed(2),
		result.RequiredCorpusDiff.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatOptionalInt renders nil as an empty cell
func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return formatInt(*i)
}
