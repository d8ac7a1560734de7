package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (c *cli) sensitivityCmd() *cobra.Command {
	var parameters []string
	var parameterSet string
	var analysisType string

	cmd := &cobra.Command{
		Use:   "sensitivity [ledger-file]",
		Short: "Sweep projection assumptions and see how the outcome moves",
		Long: `Sweep one or more assumptions and report depletion, FF score and years to freedom
at each point.

Parameters: expected_return_pct, inflation_pct, savings_growth_pct, monthly_savings.

Examples:
  # Single parameter sweep
  finfree sensitivity --parameter expected_return_pct:6-14:5

  # Several parameters, each swept on its own
  finfree sensitivity --parameter inflation_pct:4-8:5 --parameter savings_growth_pct:0-10:3

  # Two parameters against each other
  finfree sensitivity --parameter expected_return_pct:8-14:4 --parameter inflation_pct:4-8:3 --analysis-type matrix

  # Sweep the usual assumptions around their stored values
  finfree sensitivity --parameter-set common`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}

			var params []domain.SensitivityParameter
			switch {
			case parameterSet != "":
				if parameterSet != "common" {
					return fmt.Errorf("unknown parameter set %q (available: common)", parameterSet)
				}
				params = domain.CommonSensitivityParameters(state.Assumptions)
			case len(parameters) > 0:
				for _, spec := range parameters {
					p, err := parseParameterString(spec, state.Assumptions)
					if err != nil {
						return err
					}
					params = append(params, p)
				}
			default:
				return fmt.Errorf("pass --parameter or --parameter-set")
			}

			analyzer := calculation.NewSensitivityAnalyzer(c.engine)
			base := calculation.ParamsFromAssumptions(state.Assumptions, time.Time{})

			var analysis interface{}
			switch {
			case analysisType == "matrix":
				if len(params) != 2 {
					return fmt.Errorf("matrix analysis needs exactly two parameters, got %d", len(params))
				}
				analysis, err = analyzer.AnalyzeParameterMatrix(state, base, params[0], params[1])
			case len(params) == 1:
				analysis, err = analyzer.AnalyzeSingleParameter(state, base, params[0])
			default:
				analysis, err = analyzer.AnalyzeMultipleParameters(state, base, params)
			}
			if err != nil {
				return fmt.Errorf("sensitivity analysis failed: %w", err)
			}

			formatter, err := output.GetSensitivityFormatter(c.format, c.settings.Currency)
			if err != nil {
				return err
			}
			out, err := formatter.FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&parameters, "parameter", nil, "Parameter to sweep (format: name:min-max:steps), repeatable")
	f.StringVar(&parameterSet, "parameter-set", "", "Predefined parameter set (common)")
	f.StringVar(&analysisType, "analysis-type", "single", "single, multi or matrix")
	return cmd
}

// parseParameterString reads name:min-max:steps, taking the base value from the stored assumptions
func parseParameterString(spec string, a domain.Assumptions) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name:min-max:steps)", spec)
	}
	name := strings.TrimSpace(parts[0])

	minMax := strings.SplitN(parts[1], "-", 2)
	if len(minMax) != 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
	}
	minValue, err := decimal.NewFromString(strings.TrimSpace(minMax[0]))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %v", err)
	}
	maxValue, err := decimal.NewFromString(strings.TrimSpace(minMax[1]))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %v", err)
	}
	if maxValue.LessThan(minValue) {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range %s: max is below min", parts[1])
	}
	steps, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || steps < 1 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %s", parts[2])
	}

	param := domain.SensitivityParameter{
		Name:     name,
		MinValue: minValue,
		MaxValue: maxValue,
		Steps:    steps,
		Unit:     "percent",
	}
	switch name {
	case domain.ParamExpectedReturn:
		param.BaseValue = a.ExpectedReturnPct
		param.Description = "Expected annual portfolio return"
	case domain.ParamInflation:
		param.BaseValue = a.InflationPct
		param.Description = "Annual expense inflation"
	case domain.ParamSavingsGrowth:
		param.BaseValue = a.SavingsGrowthPct
		param.Description = "Annual growth of contributions"
	case domain.ParamMonthlySavings:
		param.Unit = "currency"
		param.Description = "Monthly savings"
		param.BaseValue = minValue.Add(maxValue).Div(decimal.NewFromInt(2))
		if a.MonthlySavings != nil {
			param.BaseValue = *a.MonthlySavings
		}
	default:
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %q", name)
	}
	return param, nil
}
