package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// mutate opens the tracker, applies fn and prints the message fn returns
func (c *cli) mutate(cmd *cobra.Command, fn func(ctx context.Context, tr *tracker.Tracker) (string, error)) error {
	tr, closeStore, err := c.openTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	msg, err := fn(cmd.Context(), tr)
	if err != nil {
		return err
	}
	c.logger.WithField("store", tr.Location()).Info(msg)
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", flag, value)
	}
	return d, nil
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}

func (c *cli) ledgerCmd() *cobra.Command {
	ledger := &cobra.Command{
		Use:   "ledger",
		Short: "Edit the stored ledgers",
		Long:  "Every change is recomputed and saved to the configured store immediately.",
	}
	ledger.AddCommand(
		c.addAssetCmd(),
		c.removeAssetCmd(),
		c.setLiabilityCmd(),
		c.removeLiabilityCmd(),
		c.setIncomeCmd(),
		c.addIncomeCmd(),
		c.removeIncomeCmd(),
		c.addExpenseCmd(),
		c.removeExpenseCmd(),
		c.addBigExpenseCmd(),
		c.addPolicyCmd(),
		c.removePolicyCmd(),
		c.addGoalCmd(),
		c.removeGoalCmd(),
		c.setRiskCmd(),
		c.setAssumptionsCmd(),
		c.setPersonalCmd(),
	)
	return ledger
}

func (c *cli) addAssetCmd() *cobra.Command {
	var category, name, value, yield string
	var custom bool

	cmd := &cobra.Command{
		Use:   "add-asset",
		Short: "Set a predefined asset record or add a custom one",
		Example: "  finfree ledger add-asset --category equity --name index_funds --value 1500000\n" +
			"  finfree ledger add-asset --category real_estate --name \"Beach plot\" --value 4000000 --yield 3 --custom",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmount("value", value)
			if err != nil {
				return err
			}
			y, err := parseAmount("yield", yield)
			if err != nil {
				return err
			}
			rec := domain.MoneyRecord{Value: v, YieldPct: y}
			cat := domain.AssetCategory(category)
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if custom {
					id, err := tr.AddCustomAsset(ctx, cat, name, rec)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Added %s asset %q (%s)", cat, name, id), nil
				}
				if err := tr.SetAsset(ctx, cat, name, rec); err != nil {
					return "", err
				}
				return fmt.Sprintf("Set %s asset %s to %s", cat, name, c.money(v)), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&category, "category", string(domain.Equity), "Asset category: real_estate, equity, fixed_income, commodities, cash")
	f.StringVar(&name, "name", "", "Predefined key, or the display name with --custom")
	f.StringVar(&value, "value", "0", "Current value")
	f.StringVar(&yield, "yield", "0", "Annual yield in percent")
	f.BoolVar(&custom, "custom", false, "Add a custom record instead of setting a predefined one")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) removeAssetCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "remove-asset KEY_OR_ID",
		Short: "Remove a predefined asset record or a custom one by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.RemoveAsset(ctx, domain.AssetCategory(category), args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed %s asset %s", category, args[0]), nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", string(domain.Equity), "Asset category")
	return cmd
}

func (c *cli) setLiabilityCmd() *cobra.Command {
	var name, amount string
	var tenure int
	var custom bool

	cmd := &cobra.Command{
		Use:     "set-liability",
		Short:   "Set a predefined liability or add a custom one",
		Example: "  finfree ledger set-liability --name home_loan --amount 2500000 --tenure-months 180",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			l := domain.Liability{Amount: a, RemainingTenureMonths: tenure}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if custom {
					id, err := tr.AddCustomLiability(ctx, name, l)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Added liability %q (%s)", name, id), nil
				}
				if err := tr.SetLiability(ctx, name, l); err != nil {
					return "", err
				}
				return fmt.Sprintf("Set liability %s to %s", name, c.money(a)), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "home_loan, car_loan, credit_card, education_loan, personal_loan, or a name with --custom")
	f.StringVar(&amount, "amount", "0", "Outstanding amount")
	f.IntVar(&tenure, "tenure-months", 0, "Remaining tenure in months")
	f.BoolVar(&custom, "custom", false, "Add a custom liability")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) removeLiabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-liability KEY_OR_ID",
		Short: "Remove a liability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.RemoveLiability(ctx, args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed liability %s", args[0]), nil
			})
		},
	}
}

func (c *cli) setIncomeCmd() *cobra.Command {
	var amount string
	cmd := &cobra.Command{
		Use:   "set-income",
		Short: "Set the regular monthly income",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.SetRegularIncome(ctx, a); err != nil {
					return "", err
				}
				return fmt.Sprintf("Set regular income to %s a month", c.money(a)), nil
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Monthly amount")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func (c *cli) addIncomeCmd() *cobra.Command {
	var name, amount, frequency string
	var passive bool

	cmd := &cobra.Command{
		Use:   "add-income",
		Short: "Add a passive or additional income",
		Example: "  finfree ledger add-income --name Royalties --amount 5000 --passive\n" +
			"  finfree ledger add-income --name Bonus --amount 300000 --frequency annually",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				var id string
				var err error
				if passive {
					id, err = tr.AddPassiveIncome(ctx, name, a)
				} else {
					id, err = tr.AddAdditionalIncome(ctx, name, a, frequency)
				}
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added income %q (%s)", name, id), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Display name")
	f.StringVar(&amount, "amount", "0", "Amount per payment")
	f.StringVar(&frequency, "frequency", string(domain.Monthly), "monthly, quarterly or annually")
	f.BoolVar(&passive, "passive", false, "Record as monthly passive income")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) removeIncomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-income ID",
		Short: "Remove a passive or additional income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.RemoveIncome(ctx, args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed income %s", args[0]), nil
			})
		},
	}
}

func (c *cli) addExpenseCmd() *cobra.Command {
	var bucket, name, amount string
	var custom bool

	cmd := &cobra.Command{
		Use:     "add-expense",
		Short:   "Set a recurring expense or add a custom one",
		Example: "  finfree ledger add-expense --bucket monthly --name groceries --amount 18000",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			kind := tracker.ExpenseBucketKind(bucket)
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if custom {
					id, err := tr.AddCustomExpense(ctx, kind, name, a)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Added %s expense %q (%s)", kind, name, id), nil
				}
				if err := tr.SetExpense(ctx, kind, name, a); err != nil {
					return "", err
				}
				return fmt.Sprintf("Set %s expense %s to %s", kind, name, c.money(a)), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&bucket, "bucket", string(tracker.MonthlyExpenses), "monthly or annual")
	f.StringVar(&name, "name", "", "Predefined key, or the display name with --custom")
	f.StringVar(&amount, "amount", "0", "Amount per period")
	f.BoolVar(&custom, "custom", false, "Add a custom expense")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) removeExpenseCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "remove-expense KEY_OR_ID",
		Short: "Remove a recurring expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.RemoveExpense(ctx, tracker.ExpenseBucketKind(bucket), args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed %s expense %s", bucket, args[0]), nil
			})
		},
	}
	cmd.Flags().StringVar(&bucket, "bucket", string(tracker.MonthlyExpenses), "monthly or annual")
	return cmd
}

func (c *cli) addBigExpenseCmd() *cobra.Command {
	var name, amount, rentalYield string
	var year int

	cmd := &cobra.Command{
		Use:   "add-big-expense",
		Short: "Add a one-off expense such as a property purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			y, err := parseAmount("rental-yield", rentalYield)
			if err != nil {
				return err
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				id, err := tr.AddBigExpense(ctx, domain.BigExpense{Name: name, Amount: a, RentalYieldPct: y, Year: year})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added big expense %q (%s)", name, id), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Display name")
	f.StringVar(&amount, "amount", "0", "Amount")
	f.StringVar(&rentalYield, "rental-yield", "0", "Annual rental yield in percent, for property")
	f.IntVar(&year, "year", 0, "Planned year")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) addPolicyCmd() *cobra.Command {
	var kind, name, policyType, sumAssured, premium, start, roomRent string
	var term int
	var coPay bool

	cmd := &cobra.Command{
		Use:   "add-policy",
		Short: "Add a life or medical insurance policy",
		Example: "  finfree ledger add-policy --kind life --name \"Term plan\" --sum-assured 10000000 --premium 12000 --term-years 30\n" +
			"  finfree ledger add-policy --kind medical --name \"Family floater\" --sum-assured 1000000 --premium 25000 --co-pay",
		RunE: func(cmd *cobra.Command, args []string) error {
			sa, err := parseAmount("sum-assured", sumAssured)
			if err != nil {
				return err
			}
			p, err := parseAmount("premium", premium)
			if err != nil {
				return err
			}
			rr, err := parseAmount("room-rent-limit", roomRent)
			if err != nil {
				return err
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			policy := domain.InsurancePolicy{
				Name:          name,
				PolicyType:    policyType,
				SumAssured:    sa,
				AnnualPremium: p,
				StartDate:     startDate,
				TermYears:     term,
				RoomRentLimit: rr,
				HasCoPay:      coPay,
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				id, err := tr.AddPolicy(ctx, domain.PolicyKind(kind), policy)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s policy %q (%s)", kind, name, id), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "kind", string(domain.LifePolicy), "life or medical")
	f.StringVar(&name, "name", "", "Policy name")
	f.StringVar(&policyType, "type", "", "Policy type, e.g. term or family_floater")
	f.StringVar(&sumAssured, "sum-assured", "0", "Sum assured")
	f.StringVar(&premium, "premium", "0", "Annual premium")
	f.StringVar(&start, "start", "", "Start date (YYYY-MM-DD), defaults to today")
	f.IntVar(&term, "term-years", 0, "Term in years, life policies only")
	f.StringVar(&roomRent, "room-rent-limit", "0", "Room rent limit, medical policies only")
	f.BoolVar(&coPay, "co-pay", false, "Policy has a co-payment clause, medical policies only")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) removePolicyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-policy ID",
		Short: "Remove an insurance policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.RemovePolicy(ctx, args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed policy %s", args[0]), nil
			})
		},
	}
}

func (c *cli) addGoalCmd() *cobra.Command {
	var name, goalType, target, priority, start string
	var years int

	cmd := &cobra.Command{
		Use:     "add-goal",
		Short:   "Add a savings goal",
		Example: "  finfree ledger add-goal --name \"Child education\" --type education --target 2500000 --years 12 --priority high",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseAmount("target", target)
			if err != nil {
				return err
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			goal := domain.Goal{
				Name:          name,
				Type:          goalType,
				TargetAmount:  t,
				TimelineYears: years,
				Priority:      priority,
				StartDate:     startDate,
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				id, err := tr.AddGoal(ctx, goal)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added goal %q (%s)", name, id), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Goal name")
	f.StringVar(&goalType, "type", "", "Goal type, e.g. education, property, travel")
	f.StringVar(&target, "target", "0", "Target amount")
	f.IntVar(&years, "years", 0, "Timeline in years")
	f.StringVar(&priority, "priority", "medium", "low, medium or high")
	f.StringVar(&start, "start", "", "Start date (YYYY-MM-DD), defaults to today")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("years")
	return cmd
}

func (c *cli) removeGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-goal ID",
		Short: "Remove a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.RemoveGoal(ctx, args[0]); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed goal %s", args[0]), nil
			})
		},
	}
}

func (c *cli) setRiskCmd() *cobra.Command {
	var answers []int
	cmd := &cobra.Command{
		Use:     "set-risk",
		Short:   "Store the five risk questionnaire answers",
		Example: "  finfree ledger set-risk --answers 4,3,4,3,5",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := riskAnswers(answers)
			if err != nil {
				return err
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				if err := tr.SetRiskAnswers(ctx, a); err != nil {
					return "", err
				}
				risk := tr.Summary().Risk
				return fmt.Sprintf("Risk profile is now %s (%d/100)", risk.Category, risk.Score), nil
			})
		},
	}
	cmd.Flags().IntSliceVar(&answers, "answers", nil, "Experience, knowledge, volatility tolerance, goal orientation, horizon, each 1 to 5")
	cmd.MarkFlagRequired("answers")
	return cmd
}

func (c *cli) setAssumptionsCmd() *cobra.Command {
	var ret, inflation, growth, savings string
	var lifeExpectancy int
	var clearSavings bool

	cmd := &cobra.Command{
		Use:   "set-assumptions",
		Short: "Change projection assumptions; unset flags keep their stored value",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			type pct struct {
				flag  string
				value string
				dst   func(a *domain.Assumptions, d decimal.Decimal)
			}
			updates := []pct{
				{"return", ret, func(a *domain.Assumptions, d decimal.Decimal) { a.ExpectedReturnPct = d }},
				{"inflation", inflation, func(a *domain.Assumptions, d decimal.Decimal) { a.InflationPct = d }},
				{"savings-growth", growth, func(a *domain.Assumptions, d decimal.Decimal) { a.SavingsGrowthPct = d }},
			}
			parsed := make(map[string]decimal.Decimal)
			for _, u := range updates {
				if !flags.Changed(u.flag) {
					continue
				}
				d, err := parseAmount(u.flag, u.value)
				if err != nil {
					return err
				}
				parsed[u.flag] = d
			}
			var monthly *decimal.Decimal
			if flags.Changed("monthly-savings") {
				d, err := parseAmount("monthly-savings", savings)
				if err != nil {
					return err
				}
				monthly = &d
			}

			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				err := tr.UpdateAssumptions(ctx, func(a *domain.Assumptions) {
					for _, u := range updates {
						if d, ok := parsed[u.flag]; ok {
							u.dst(a, d)
						}
					}
					if flags.Changed("life-expectancy") {
						a.LifeExpectancy = lifeExpectancy
					}
					if monthly != nil {
						a.MonthlySavings = monthly
					}
					if clearSavings {
						a.MonthlySavings = nil
					}
				})
				if err != nil {
					return "", err
				}
				a := tr.State().Assumptions
				return fmt.Sprintf("Assumptions: return %s%%, inflation %s%%, savings growth %s%%, life expectancy %d",
					a.ExpectedReturnPct, a.InflationPct, a.SavingsGrowthPct, a.LifeExpectancy), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&ret, "return", "", "Expected annual return in percent")
	f.StringVar(&inflation, "inflation", "", "Annual inflation in percent")
	f.StringVar(&growth, "savings-growth", "", "Annual growth of savings in percent")
	f.IntVar(&lifeExpectancy, "life-expectancy", 0, "Life expectancy in years")
	f.StringVar(&savings, "monthly-savings", "", "Fixed monthly savings instead of income minus expenses")
	f.BoolVar(&clearSavings, "clear-monthly-savings", false, "Go back to income minus expenses")
	return cmd
}

func (c *cli) setPersonalCmd() *cobra.Command {
	var name, birthDate string
	var dependents, retirementAge int

	cmd := &cobra.Command{
		Use:   "set-personal",
		Short: "Set name, birth date and household details",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			born, err := parseDate("birth-date", birthDate)
			if err != nil {
				return err
			}
			return c.mutate(cmd, func(ctx context.Context, tr *tracker.Tracker) (string, error) {
				p := tr.State().Personal
				if flags.Changed("name") {
					p.Name = name
				}
				if flags.Changed("birth-date") {
					p.BirthDate = born
				}
				if flags.Changed("dependents") {
					p.Dependents = dependents
				}
				if flags.Changed("retirement-age") {
					p.RetirementAge = retirementAge
				}
				if err := tr.SetPersonal(ctx, p); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated personal details for %s", p.Name), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Your name")
	f.StringVar(&birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	f.IntVar(&dependents, "dependents", 0, "Number of dependents")
	f.IntVar(&retirementAge, "retirement-age", 0, "Planned retirement age")
	return cmd
}
