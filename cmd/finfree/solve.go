package main

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/finfree/internal/breakeven"
	"github.com/spf13/cobra"
)

func (c *cli) solveCmd() *cobra.Command {
	var years int

	solve := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the savings or expenses that meet a freedom horizon",
	}
	solve.PersistentFlags().IntVar(&years, "years", 15, "Target horizon in years")

	run := func(target breakeven.SolveTarget) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(c.engine)

			if target == "" {
				multi, err := solver.SolveAll(cmd.Context(), state, years, c.engine.Now())
				if err != nil {
					return err
				}
				return c.writeSolve(cmd.OutOrStdout(), multi, func() string {
					return (&breakeven.TableFormatter{}).FormatMulti(multi)
				})
			}

			result, err := solver.Solve(cmd.Context(), breakeven.SolveRequest{
				Base:        state,
				Target:      target,
				TargetYears: years,
				AsOf:        c.engine.Now(),
			})
			if err != nil {
				return err
			}
			c.logger.Debugf("solver finished in %d iterations: %s", result.Iterations, result.ConvergenceInfo)
			return c.writeSolve(cmd.OutOrStdout(), result, func() string {
				return (&breakeven.TableFormatter{}).Format(result)
			})
		}
	}

	solve.AddCommand(
		&cobra.Command{
			Use:   "savings [ledger-file]",
			Short: "Smallest monthly savings that reaches freedom within --years",
			Args:  cobra.MaximumNArgs(1),
			RunE:  run(breakeven.SolveSavings),
		},
		&cobra.Command{
			Use:   "expenses [ledger-file]",
			Short: "Largest annual expense current net worth sustains for --years",
			Args:  cobra.MaximumNArgs(1),
			RunE:  run(breakeven.SolveExpenses),
		},
		&cobra.Command{
			Use:   "all [ledger-file]",
			Short: "Run both solvers for the same horizon",
			Args:  cobra.MaximumNArgs(1),
			RunE:  run(""),
		},
	)
	return solve
}

func (c *cli) writeSolve(w io.Writer, result interface{}, table func() string) error {
	if c.format == "json" {
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}
	fmt.Fprint(w, table())
	return nil
}
