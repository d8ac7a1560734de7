package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints the full summary with every section
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	s := r.Summary
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintln(&buf, "FINANCIAL FREEDOM SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	if p := r.State.Personal; p.Name != "" {
		if age := p.Age(r.GeneratedAt); age > 0 {
			fmt.Fprintf(&buf, "Prepared for: %s (age %d)\n", p.Name, age)
		} else {
			fmt.Fprintf(&buf, "Prepared for: %s\n", p.Name)
		}
	}
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "As of: %s\n", r.GeneratedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(&buf)

	section(&buf, "NET WORTH")
	fmt.Fprintf(&buf, "  Total Assets:        %s\n", r.Money(s.TotalAssets))
	fmt.Fprintf(&buf, "  Total Liabilities:   %s\n", r.Money(s.TotalLiabilities))
	fmt.Fprintf(&buf, "  Net Worth:           %s\n", r.Money(s.NetWorth))
	fmt.Fprintf(&buf, "  Liquid Assets:       %s\n", r.Money(s.LiquidAssets))
	fmt.Fprintln(&buf)

	section(&buf, "CASH FLOW (MONTHLY)")
	fmt.Fprintf(&buf, "  Income:              %s\n", r.Money(s.MonthlyIncome))
	fmt.Fprintf(&buf, "  Expenses:            %s\n", r.Money(s.MonthlyExpenses))
	fmt.Fprintf(&buf, "  Savings:             %s\n", r.Money(s.MonthlySavings))
	fmt.Fprintf(&buf, "  Savings Rate:        %s\n", FormatPercentage(s.SavingsRate))
	fmt.Fprintf(&buf, "  Debt Ratio:          %s\n", FormatPercentage(s.DebtRatio))
	fmt.Fprintf(&buf, "  Passive Income:      %s\n", r.Money(s.PassiveIncome.Total()))
	for _, line := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Rental", s.PassiveIncome.Rental},
		{"Dividend", s.PassiveIncome.Dividend},
		{"Interest", s.PassiveIncome.Interest},
		{"Other", s.PassiveIncome.Other},
		{"Custom", s.PassiveIncome.Custom},
	} {
		if line.amount.IsPositive() {
			fmt.Fprintf(&buf, "    %-18s %s\n", line.label+":", r.Money(line.amount))
		}
	}
	if s.PlannedRentalIncome.IsPositive() {
		fmt.Fprintf(&buf, "  Planned Rental:      %s (not yet counted)\n", r.Money(s.PlannedRentalIncome))
	}
	fmt.Fprintln(&buf)

	section(&buf, "FINANCIAL FREEDOM")
	fmt.Fprintln(&buf, "  Depletion model")
	fmt.Fprintf(&buf, "    Wealth Lasts:      %d years\n", s.FFDepletionYears)
	fmt.Fprintf(&buf, "    Status:            %s\n", s.FFDepletionStatus)
	fmt.Fprintln(&buf, "  Accumulation model")
	fmt.Fprintf(&buf, "    Required Corpus:   %s\n", r.Money(s.RequiredCorpus))
	fmt.Fprintf(&buf, "    FF Score:          %s\n", FormatPercentage(s.FFScorePct))
	fmt.Fprintf(&buf, "    Status:            %s\n", s.FFAccumulationStatus)
	fmt.Fprintf(&buf, "    Years to Freedom:  %s\n", FormatYears(s.FFYearsToFreedom))
	if s.FreedomAge != nil {
		fmt.Fprintf(&buf, "    Freedom Age:       %d\n", *s.FreedomAge)
	}
	fmt.Fprintln(&buf)

	section(&buf, "FINANCIAL HEALTH")
	h := s.Health
	fmt.Fprintf(&buf, "  Overall:             %s (%s)\n", h.Overall.StringFixed(0), h.Status)
	fmt.Fprintf(&buf, "  Savings Rate:        %s\n", h.SavingsRateScore.StringFixed(0))
	fmt.Fprintf(&buf, "  Debt:                %s\n", h.DebtScore.StringFixed(0))
	fmt.Fprintf(&buf, "  Investment Mix:      %s\n", h.InvestmentMixScore.StringFixed(0))
	fmt.Fprintf(&buf, "  Insurance:           %s\n", h.InsuranceScore.StringFixed(0))
	fmt.Fprintf(&buf, "  Emergency Fund:      %s\n", h.EmergencyFundScore.StringFixed(0))
	fmt.Fprintln(&buf)

	section(&buf, "RISK PROFILE")
	fmt.Fprintf(&buf, "  Score:               %d (%s)\n", s.Risk.Score, s.Risk.Category)
	fmt.Fprintf(&buf, "  %-20s %10s %10s\n", "", "Target", "Current")
	a := s.Risk.Allocation
	fmt.Fprintf(&buf, "  %-20s %10s %10s\n", "Equity", FormatPercentage(a.Equity), FormatPercentage(s.InvestmentMix.Equity))
	fmt.Fprintf(&buf, "  %-20s %10s %10s\n", "Debt", FormatPercentage(a.Debt), FormatPercentage(s.InvestmentMix.Debt))
	fmt.Fprintf(&buf, "  %-20s %10s %10s\n", "Liquid (gold+cash)", FormatPercentage(a.Liquid()), FormatPercentage(s.InvestmentMix.Liquid))
	fmt.Fprintln(&buf)

	section(&buf, "GOALS")
	if len(s.Goals) == 0 {
		fmt.Fprintln(&buf, "  No goals recorded")
	} else {
		fmt.Fprintf(&buf, "  %-24s %10s %10s %18s\n", "Goal", "Progress", "Years Left", "Monthly Needed")
		for _, g := range s.Goals {
			fmt.Fprintf(&buf, "  %-24s %10s %10d %18s\n",
				truncate(g.Name, 24), FormatPercentage(g.ProgressPct), g.YearsRemaining, r.Money(g.RequiredMonthlySaving))
		}
	}

	return buf.Bytes(), nil
}

// ConsoleLiteFormatter prints the headline numbers only
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	s := r.Summary
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Net Worth: %s | Savings: %s/mo (%s)\n",
		r.Money(s.NetWorth), r.Money(s.MonthlySavings), FormatPercentage(s.SavingsRate))
	fmt.Fprintf(&buf, "Wealth lasts %d years (%s)\n", s.FFDepletionYears, s.FFDepletionStatus)
	fmt.Fprintf(&buf, "FF score %s of %s (%s), freedom in %s\n",
		FormatPercentage(s.FFScorePct), r.Money(s.RequiredCorpus), s.FFAccumulationStatus, FormatYears(s.FFYearsToFreedom))
	fmt.Fprintf(&buf, "Health %s (%s) | Risk %s\n", s.Health.Overall.StringFixed(0), s.Health.Status, s.Risk.Category)
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
