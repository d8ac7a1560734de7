package main

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/finfree/internal/compare"
	"github.com/rgehrsitz/finfree/internal/transform"
	"github.com/spf13/cobra"
)

func (c *cli) compareCmd() *cobra.Command {
	var templates string
	var transforms []string
	var listTemplates bool
	var asOf string

	cmd := &cobra.Command{
		Use:   "compare [ledger-file]",
		Short: "Compare the current plan against what-if scenarios",
		Long: "Recompute the plan under built-in templates or ad-hoc transforms and show how\n" +
			"depletion, required corpus and years to freedom change.\n\n" +
			"Transforms take the form name:key=value,key=value, for example\n" +
			"  adjust_return:delta=-2\n  scale_expenses:factor=0.9",
		Example: "  finfree compare --with conservative,lean_fire\n" +
			"  finfree compare --transform adjust_inflation:delta=1 --format csv",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := compare.NewCompareEngine(c.engine)
			w := cmd.OutOrStdout()

			if listTemplates {
				fmt.Fprint(w, transform.GetTemplateHelp(engine.TemplateRegistry))
				fmt.Fprintln(w, "Transforms:")
				for _, name := range engine.TransformRegistry.List() {
					fmt.Fprintf(w, "  %s\n", name)
				}
				return nil
			}

			names := transform.ParseTemplateList(templates)
			if len(names) == 0 && len(transforms) == 0 {
				return fmt.Errorf("nothing to compare: pass --with or --transform (see --list-templates)")
			}

			var when time.Time
			if asOf != "" {
				t, err := parseDate("as-of", asOf)
				if err != nil {
					return err
				}
				when = t
			}

			state, err := c.loadState(cmd.Context(), args)
			if err != nil {
				return err
			}

			set, err := engine.Compare(cmd.Context(), state, compare.CompareOptions{
				Templates:  names,
				Transforms: transforms,
				AsOf:       when,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			c.logger.Debugf("compared %d alternatives", len(set.AlternativeResults))

			switch c.format {
			case "csv":
				out, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(w, out)
			case "json":
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
			case "compact":
				fmt.Fprint(w, (&compare.TableFormatter{}).FormatCompact(set))
			default:
				fmt.Fprint(w, (&compare.TableFormatter{}).Format(set))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&templates, "with", "", "Comma-separated built-in templates")
	f.StringArrayVar(&transforms, "transform", nil, "Ad-hoc transform, repeatable")
	f.BoolVar(&listTemplates, "list-templates", false, "List templates and transforms")
	f.StringVar(&asOf, "as-of", "", "Projection date (YYYY-MM-DD), defaults to today")
	return cmd
}
