package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Solve For:    %s\n", tf.describeTarget(result.Target)))
	sb.WriteString(fmt.Sprintf("Horizon:      %d years\n", result.TargetYears))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("ANSWER\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	switch result.Target {
	case SolveSavings:
		sb.WriteString(fmt.Sprintf("Required Monthly Savings: %s\n", tf.formatCurrency(result.Value)))
		sb.WriteString(fmt.Sprintf("Current Monthly Savings:  %s\n", tf.formatCurrency(result.CurrentValue)))
		sb.WriteString(fmt.Sprintf("Change:                   %s%s\n", tf.deltaSymbol(result.Difference), tf.formatCurrency(result.Difference)))
		if result.YearsToFreedom != nil {
			sb.WriteString(fmt.Sprintf("Years to Freedom:         %d\n", *result.YearsToFreedom))
		}
	case SolveExpenses:
		sb.WriteString(fmt.Sprintf("Sustainable Annual Expense: %s\n", tf.formatCurrency(result.Value)))
		sb.WriteString(fmt.Sprintf("Current Annual Expense:     %s\n", tf.formatCurrency(result.CurrentValue)))
		sb.WriteString(fmt.Sprintf("Headroom:                   %s%s\n", tf.deltaSymbol(result.Difference), tf.formatCurrency(result.Difference)))
		sb.WriteString(fmt.Sprintf("Wealth Lasts:               %d years\n", result.DepletionYears))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti formats the results of SolveAll
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("BREAK-EVEN SUMMARY (%d YEAR HORIZON)\n", result.TargetYears))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %16s %16s %16s\n", "Solve For", "Answer", "Current", "Change"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range []*SolveResult{result.Savings, result.Expenses} {
		if r == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-28s %16s %16s %16s\n",
			tf.truncate(tf.describeTarget(r.Target), 28),
			tf.formatShort(r.Value),
			tf.formatShort(r.CurrentValue),
			tf.deltaSymbol(r.Difference)+tf.formatShort(r.Difference)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single result or a MultiResult
func (jf *JSONFormatter) Format(result interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) describeTarget(target SolveTarget) string {
	switch target {
	case SolveSavings:
		return "Monthly savings"
	case SolveExpenses:
		return "Annual expenses"
	default:
		return string(target)
	}
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
