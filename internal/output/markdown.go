package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
)

// MarkdownFormatter builds a markdown report and renders it for the terminal with glamour.
// Raw skips rendering and returns the markdown source.
type MarkdownFormatter struct {
	Raw   bool
	Style string // glamour standard style; defaults to notty
	Width int
}

func (m MarkdownFormatter) Name() string {
	if m.Raw {
		return "markdown-raw"
	}
	return "markdown"
}

func (m MarkdownFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	md := m.markdown(r)
	if m.Raw {
		return md, nil
	}

	style := m.Style
	if style == "" {
		style = "notty"
	}
	width := m.Width
	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(string(md))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(out), nil
}

func (m MarkdownFormatter) markdown(r *Report) []byte {
	s := r.Summary
	var buf bytes.Buffer

	title := "Financial Freedom Report"
	if r.State != nil && r.State.Personal.Name != "" {
		title += ": " + r.State.Personal.Name
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "_As of %s_\n\n", r.GeneratedAt.Format("2 January 2006"))
	}

	fmt.Fprintln(&buf, "## Net Worth")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Item | Amount |")
	fmt.Fprintln(&buf, "|------|-------:|")
	fmt.Fprintf(&buf, "| Total Assets | %s |\n", r.Money(s.TotalAssets))
	fmt.Fprintf(&buf, "| Total Liabilities | %s |\n", r.Money(s.TotalLiabilities))
	fmt.Fprintf(&buf, "| **Net Worth** | **%s** |\n", r.Money(s.NetWorth))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Cash Flow")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "- Monthly income: %s\n", r.Money(s.MonthlyIncome))
	fmt.Fprintf(&buf, "- Monthly expenses: %s\n", r.Money(s.MonthlyExpenses))
	fmt.Fprintf(&buf, "- Monthly savings: %s (%s savings rate)\n", r.Money(s.MonthlySavings), FormatPercentage(s.SavingsRate))
	fmt.Fprintf(&buf, "- Passive income: %s a month\n", r.Money(s.PassiveIncome.Total()))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Financial Freedom")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Net worth covers inflating expenses for **%d years** (%s).\n\n", s.FFDepletionYears, s.FFDepletionStatus)
	fmt.Fprintf(&buf, "The corpus is **%s** of the %s required (%s). Freedom: %s.\n\n",
		FormatPercentage(s.FFScorePct), r.Money(s.RequiredCorpus), s.FFAccumulationStatus, FormatYears(s.FFYearsToFreedom))

	fmt.Fprintln(&buf, "## Health and Risk")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "- Health score: %s (%s)\n", s.Health.Overall.StringFixed(0), s.Health.Status)
	fmt.Fprintf(&buf, "- Risk profile: %s, score %d\n", s.Risk.Category, s.Risk.Score)
	a := s.Risk.Allocation
	fmt.Fprintf(&buf, "- Recommended allocation: equity %s, debt %s, gold %s, cash %s\n\n",
		FormatPercentage(a.Equity), FormatPercentage(a.Debt), FormatPercentage(a.Gold), FormatPercentage(a.Cash))

	if len(s.Goals) > 0 {
		fmt.Fprintln(&buf, "## Goals")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "| Goal | Progress | Years Left | Monthly Needed |")
		fmt.Fprintln(&buf, "|------|---------:|-----------:|---------------:|")
		for _, g := range s.Goals {
			fmt.Fprintf(&buf, "| %s | %s | %d | %s |\n", g.Name, FormatPercentage(g.ProgressPct), g.YearsRemaining, r.Money(g.RequiredMonthlySaving))
		}
	}
	return buf.Bytes()
}
