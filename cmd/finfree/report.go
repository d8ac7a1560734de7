package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/output"
	"github.com/spf13/cobra"
)

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [ledger-file]",
		Short: "Show the full financial freedom report",
		Long: "Recompute and print the whole report. Reads the configured store, or the\n" +
			"given ledger file without touching the store.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), state)
		},
	}
}

func (c *cli) ffCmd() *cobra.Command {
	ff := &cobra.Command{
		Use:   "ff",
		Short: "Financial freedom models",
	}

	ff.AddCommand(&cobra.Command{
		Use:   "depletion [ledger-file]",
		Short: "How many years current net worth covers inflating expenses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			s := state.Summary
			if c.format == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"net_worth":       s.NetWorth,
					"annual_expenses": s.AnnualExpenses,
					"years":           s.FFDepletionYears,
					"status":          s.FFDepletionStatus,
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Net worth:        %s\n", c.money(s.NetWorth))
			fmt.Fprintf(w, "Annual expenses:  %s\n", c.money(s.AnnualExpenses))
			fmt.Fprintf(w, "Wealth lasts:     %s\n", depletionYears(s.FFDepletionYears))
			fmt.Fprintf(w, "Status:           %s\n", s.FFDepletionStatus)
			return nil
		},
	})

	ff.AddCommand(&cobra.Command{
		Use:   "accumulation [ledger-file]",
		Short: "Required corpus, FF score and years to freedom",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			s := state.Summary
			if c.format == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"required_corpus":  s.RequiredCorpus,
					"ff_score_pct":     s.FFScorePct,
					"status":           s.FFAccumulationStatus,
					"years_to_freedom": s.FFYearsToFreedom,
					"freedom_age":      s.FreedomAge,
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Required corpus:  %s\n", c.money(s.RequiredCorpus))
			fmt.Fprintf(w, "Net worth:        %s\n", c.money(s.NetWorth))
			fmt.Fprintf(w, "FF score:         %s\n", output.FormatPercentage(s.FFScorePct))
			fmt.Fprintf(w, "Status:           %s\n", s.FFAccumulationStatus)
			fmt.Fprintf(w, "Freedom in:       %s\n", output.FormatYears(s.FFYearsToFreedom))
			if s.FreedomAge != nil {
				fmt.Fprintf(w, "Freedom age:      %d\n", *s.FreedomAge)
			}
			return nil
		},
	})

	ff.AddCommand(&cobra.Command{
		Use:   "project [ledger-file]",
		Short: "Year by year required against expected corpus",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			switch c.format {
			case "json":
				return printJSON(cmd.OutOrStdout(), state.Summary.Projection)
			case "csv":
				return c.render(cmd.OutOrStdout(), state)
			default:
				return c.writeProjection(cmd.OutOrStdout(), state.Summary.Projection)
			}
		},
	})
	return ff
}

func (c *cli) writeProjection(w io.Writer, rows []domain.ProjectionRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No projection: expenses or age are not recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tAge\tAnnual Expenses\tRequired Corpus\tExpected Corpus\tFF Score\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t\n",
			r.Year, r.Age, c.money(r.AnnualExpenses), c.money(r.RequiredCorpus),
			c.money(r.ExpectedCorpus), output.FormatPercentage(r.FFScorePct))
	}
	return tw.Flush()
}

func depletionYears(years int) string {
	if years >= calculation.MaxHorizonYears {
		return fmt.Sprintf("%d+ years", calculation.MaxHorizonYears)
	}
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health [ledger-file]",
		Short: "Show the financial health score and its components",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			h := state.Summary.Health
			if c.format == "json" {
				return printJSON(cmd.OutOrStdout(), h)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Financial health: %s (%s)\n", h.Overall.StringFixed(1), h.Status)
			fmt.Fprintf(w, "  Savings rate:    %s\n", h.SavingsRateScore.StringFixed(1))
			fmt.Fprintf(w, "  Debt:            %s\n", h.DebtScore.StringFixed(1))
			fmt.Fprintf(w, "  Investment mix:  %s\n", h.InvestmentMixScore.StringFixed(1))
			fmt.Fprintf(w, "  Insurance:       %s\n", h.InsuranceScore.StringFixed(1))
			fmt.Fprintf(w, "  Emergency fund:  %s\n", h.EmergencyFundScore.StringFixed(1))
			return nil
		},
	}
}

func (c *cli) riskCmd() *cobra.Command {
	var answers []int

	cmd := &cobra.Command{
		Use:   "risk [ledger-file]",
		Short: "Show the risk profile and suggested allocation",
		Long: "Show the stored risk profile, or score a set of answers given with --answers\n" +
			"in the order experience, knowledge, volatility tolerance, goal orientation, horizon.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile domain.RiskProfile
			if len(answers) > 0 {
				a, err := riskAnswers(answers)
				if err != nil {
					return err
				}
				profile = calculation.ProfileRisk(a)
			} else {
				state, err := c.loadState(cmd.Context(), args)
				if err != nil {
					return err
				}
				profile = state.Summary.Risk
			}

			if c.format == "json" {
				return printJSON(cmd.OutOrStdout(), profile)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Risk profile: %s (%d/100)\n", profile.Category, profile.Score)
			fmt.Fprintf(w, "  Equity: %s%%\n", profile.Allocation.Equity.String())
			fmt.Fprintf(w, "  Debt:   %s%%\n", profile.Allocation.Debt.String())
			fmt.Fprintf(w, "  Gold:   %s%%\n", profile.Allocation.Gold.String())
			fmt.Fprintf(w, "  Cash:   %s%%\n", profile.Allocation.Cash.String())
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&answers, "answers", nil, "Five answers from 1 to 5")
	return cmd
}

func riskAnswers(values []int) (domain.RiskAnswers, error) {
	if len(values) != 5 {
		return domain.RiskAnswers{}, fmt.Errorf("expected 5 answers, got %d", len(values))
	}
	a := domain.RiskAnswers{
		Experience:          values[0],
		Knowledge:           values[1],
		VolatilityTolerance: values[2],
		GoalOrientation:     values[3],
		Horizon:             values[4],
	}
	if !a.IsComplete() {
		return domain.RiskAnswers{}, fmt.Errorf("answers must be between 1 and 5")
	}
	return a, nil
}

func (c *cli) goalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals [ledger-file]",
		Short: "List goals with progress and required monthly saving",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			if c.format == "json" {
				return printJSON(cmd.OutOrStdout(), state.Summary.Goals)
			}
			w := cmd.OutOrStdout()
			if len(state.Goals) == 0 {
				fmt.Fprintln(w, "No goals recorded.")
				return nil
			}
			targets := make(map[string]domain.Goal, len(state.Goals))
			for _, g := range state.Goals {
				targets[g.ID] = g
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tName\tTarget\tProgress\tYears Left\tMonthly Saving")
			for _, gs := range state.Summary.Goals {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					gs.GoalID, gs.Name, c.money(targets[gs.GoalID].TargetAmount),
					output.FormatPercentage(gs.ProgressPct), gs.YearsRemaining,
					c.money(gs.RequiredMonthlySaving))
			}
			return tw.Flush()
		},
	}
}
