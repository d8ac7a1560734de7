package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FINANCIAL FREEDOM SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.StatePath != "" {
		sb.WriteString(fmt.Sprintf("State: %s\n", compSet.StatePath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Lasts (yrs)",
		numWidth, "Free In",
		numWidth, "FF Score",
		numWidth, "Required"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			if alt.DepletionYearsDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Coverage:         %s%d years\n", intSymbol(alt.DepletionYearsDiff), alt.DepletionYearsDiff))
			}

			switch {
			case alt.FreedomYearsDiff != nil && *alt.FreedomYearsDiff != 0:
				// fewer years is better, so a negative diff reads as a gain
				sb.WriteString(fmt.Sprintf("  Years to Freedom: %s%d\n", intSymbol(*alt.FreedomYearsDiff), *alt.FreedomYearsDiff))
			case alt.YearsToFreedom == nil && compSet.BaseResult != nil && compSet.BaseResult.YearsToFreedom != nil:
				sb.WriteString("  Years to Freedom: no longer reachable\n")
			}

			sb.WriteString(fmt.Sprintf("  FF Score:         %s%s points\n", tf.deltaSymbol(alt.FFScoreDiff), alt.FFScoreDiff.StringFixed(2)))

			if !alt.RequiredCorpusDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Required Corpus:  %s%s\n", tf.deltaSymbol(alt.RequiredCorpusDiff), tf.formatDecimal(alt.RequiredCorpusDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	lasts := fmt.Sprintf("%d", result.DepletionYears)
	if result.DepletionYears >= 100 {
		lasts = "100+"
	}

	freeIn := "never"
	if result.YearsToFreedom != nil {
		freeIn = fmt.Sprintf("%d years", *result.YearsToFreedom)
		if *result.YearsToFreedom == 0 {
			freeIn = "now"
		}
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, lasts,
		numWidth, freeIn,
		numWidth, result.FFScorePct.StringFixed(1)+"%",
		numWidth, tf.formatDecimal(result.RequiredCorpus))
}

// formatDecimal formats a decimal for display (in thousands or millions)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func intSymbol(delta int) string {
	if delta > 0 {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.FFScoreDiff.IsPositive() {
			change = fmt.Sprintf("+%s%%", alt.FFScoreDiff.StringFixed(1))
		} else if alt.FFScoreDiff.IsNegative() {
			change = fmt.Sprintf("%s%%", alt.FFScoreDiff.StringFixed(1))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
