package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

// GetSensitivityFormatter resolves console, csv or json
func GetSensitivityFormatter(name, currency string) (SensitivityFormatter, error) {
	switch name {
	case "", "console", "table", "text":
		return SensitivityConsoleFormatter{Currency: currency}, nil
	case "csv":
		return SensitivityCSVFormatter{}, nil
	case "json":
		return SensitivityJSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported sensitivity format: %s", name)
	}
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct {
	Currency string
}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (scf SensitivityConsoleFormatter) value(p domain.SensitivityParameter, v decimal.Decimal) string {
	if p.Unit == "currency" {
		return FormatCurrency(v, scf.currency())
	}
	return v.StringFixed(1) + "%"
}

func (scf SensitivityConsoleFormatter) currency() string {
	if scf.Currency == "" {
		return DefaultCurrency
	}
	return scf.Currency
}

func (scf SensitivityConsoleFormatter) formatAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	if len(analysis.Parameters) == 1 {
		fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", displayName(analysis.Parameters[0].Name))
	} else {
		fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %d PARAMETERS\n", len(analysis.Parameters))
	}
	fmt.Fprintln(buf, strings.Repeat("=", 65))
	fmt.Fprintf(buf, "Baseline: wealth lasts %d years, FF score %s, freedom %s\n",
		analysis.Baseline.DepletionYears, FormatPercentage(analysis.Baseline.FFScorePct), FormatYears(analysis.Baseline.YearsToFreedom))
	fmt.Fprintln(buf)

	for _, param := range analysis.Parameters {
		fmt.Fprintf(buf, "%s\n", displayName(param.Name))
		fmt.Fprintf(buf, "Base Case: %s, range %s to %s (%d steps)\n",
			scf.value(param, param.BaseValue), scf.value(param, param.MinValue), scf.value(param, param.MaxValue), param.Steps)
		if param.Description != "" {
			fmt.Fprintf(buf, "Description: %s\n", param.Description)
		}
		fmt.Fprintln(buf)

		fmt.Fprintf(buf, "%-20s %-14s %-10s %-14s %-18s\n", "Value", "Wealth Lasts", "FF Score", "Freedom In", "Required Corpus")
		fmt.Fprintln(buf, strings.Repeat("-", 80))

		for _, result := range analysis.Results {
			paramValue, ok := result.ParameterValues[param.Name]
			if !ok {
				continue
			}
			label := scf.value(param, paramValue)
			if paramValue.Equal(param.BaseValue) {
				label += " ← BASE"
			}
			m := result.KeyMetrics
			fmt.Fprintf(buf, "%-20s %-14s %-10s %-14s %-18s\n",
				label,
				fmt.Sprintf("%d (%+d)", m.DepletionYears, m.DepletionChange),
				FormatPercentage(m.FFScorePct),
				freedomCell(m),
				FormatCurrency(m.RequiredCorpus, scf.currency()))
		}
		fmt.Fprintln(buf)
	}

	if len(analysis.Summary.SensitivityScores) > 0 {
		fmt.Fprintln(buf, "SENSITIVITY SCORES:")
		names := make([]string, 0, len(analysis.Summary.SensitivityScores))
		for name := range analysis.Summary.SensitivityScores {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(buf, "  %-24s %s\n", displayName(name), analysis.Summary.SensitivityScores[name].StringFixed(2))
		}
		if analysis.Summary.MostSensitiveParameter != "" {
			fmt.Fprintf(buf, "  Most sensitive: %s\n", displayName(analysis.Summary.MostSensitiveParameter))
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintf(buf, "RISK LEVEL: %s %s\n", riskEmoji(analysis.Summary.RiskLevel), analysis.Summary.RiskLevel)
	fmt.Fprintln(buf)

	if len(analysis.Summary.Recommendations) > 0 {
		fmt.Fprintln(buf, "RECOMMENDATIONS:")
		for _, rec := range analysis.Summary.Recommendations {
			fmt.Fprintf(buf, "  • %s\n", rec)
		}
	}

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 || len(matrix.MatrixResults[0]) == 0 {
		return "", fmt.Errorf("matrix has no results")
	}
	p1, p2 := matrix.Parameter1, matrix.Parameter2

	fmt.Fprintln(buf, "SENSITIVITY MATRIX ANALYSIS")
	fmt.Fprintln(buf, strings.Repeat("=", 65))
	fmt.Fprintf(buf, "Rows:    %s (%s to %s)\n", displayName(p1.Name), scf.value(p1, p1.MinValue), scf.value(p1, p1.MaxValue))
	fmt.Fprintf(buf, "Columns: %s (%s to %s)\n", displayName(p2.Name), scf.value(p2, p2.MinValue), scf.value(p2, p2.MaxValue))
	fmt.Fprintln(buf, "Cells:   years the wealth lasts / years to freedom")
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s", "")
	for _, cell := range matrix.MatrixResults[0] {
		fmt.Fprintf(buf, " %-14s", scf.value(p2, cell.ParameterValues[p2.Name]))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 14+15*len(matrix.MatrixResults[0])))

	for _, row := range matrix.MatrixResults {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(buf, "%-14s", scf.value(p1, row[0].ParameterValues[p1.Name]))
		for _, cell := range row {
			freedom := "-"
			if cell.KeyMetrics.YearsToFreedom != nil {
				freedom = strconv.Itoa(*cell.KeyMetrics.YearsToFreedom)
			}
			fmt.Fprintf(buf, " %-14s", fmt.Sprintf("%d / %s", cell.KeyMetrics.DepletionYears, freedom))
		}
		fmt.Fprintln(buf)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var rows [][]string
	var names []string

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		for _, p := range a.Parameters {
			names = append(names, p.Name)
		}
		rows = metricRows(names, a.Results)
	case *domain.SensitivityMatrix:
		names = []string{a.Parameter1.Name, a.Parameter2.Name}
		for _, row := range a.MatrixResults {
			rows = append(rows, metricRows(names, row)...)
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append(append([]string{}, names...), "depletion_years", "depletion_change", "years_to_freedom", "ff_score_pct", "required_corpus")
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func metricRows(names []string, results []domain.SensitivityResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		row := make([]string, 0, len(names)+5)
		for _, name := range names {
			if v, ok := result.ParameterValues[name]; ok {
				row = append(row, v.String())
			} else {
				row = append(row, "")
			}
		}
		m := result.KeyMetrics
		freedom := ""
		if m.YearsToFreedom != nil {
			freedom = strconv.Itoa(*m.YearsToFreedom)
		}
		row = append(row,
			strconv.Itoa(m.DepletionYears),
			strconv.Itoa(m.DepletionChange),
			freedom,
			m.FFScorePct.StringFixed(2),
			m.RequiredCorpus.StringFixed(2))
		rows = append(rows, row)
	}
	return rows
}

func freedomCell(m domain.SensitivityMetrics) string {
	if m.YearsToFreedom == nil {
		return "never"
	}
	if m.FreedomYearChange != nil {
		return fmt.Sprintf("%d (%+d)", *m.YearsToFreedom, *m.FreedomYearChange)
	}
	return strconv.Itoa(*m.YearsToFreedom)
}

func displayName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

func riskEmoji(level string) string {
	switch level {
	case "LOW":
		return "✅"
	case "MEDIUM":
		return "⚠️"
	case "HIGH":
		return "🔴"
	}
	return ""
}
