package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// GoalCard displays one goal with its timeline progress and required monthly saving
type GoalCard struct {
	Goal       domain.Goal
	Status     domain.GoalStatus
	Currency   string
	IsSelected bool
	Width      int
}

// NewGoalCard creates a card for a goal and its computed status
func NewGoalCard(goal domain.Goal, status domain.GoalStatus, currency string) *GoalCard {
	return &GoalCard{Goal: goal, Status: status, Currency: currency, Width: 50}
}

// SetSelected marks the card as selected
func (g *GoalCard) SetSelected(selected bool) *GoalCard {
	g.IsSelected = selected
	return g
}

// WithWidth sets the card width
func (g *GoalCard) WithWidth(width int) *GoalCard {
	g.Width = width
	return g
}

// Render returns the styled goal card
func (g *GoalCard) Render() string {
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(g.Goal.Name))
	var tags []string
	if g.Goal.Type != "" {
		tags = append(tags, g.Goal.Type)
	}
	if g.Goal.Priority != "" {
		tags = append(tags, g.Goal.Priority+" priority")
	}
	if len(tags) > 0 {
		content.WriteString("  ")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(strings.Join(tags, " · ")))
	}
	content.WriteString("\n\n")

	highlights := []string{
		fmt.Sprintf("Target: %s in %d years", tuistyles.FormatCurrency(g.Goal.TargetAmount, g.Currency), g.Goal.TimelineYears),
		fmt.Sprintf("Remaining: %d years", g.Status.YearsRemaining),
		fmt.Sprintf("Save monthly: %s", tuistyles.FormatCurrency(g.Status.RequiredMonthlySaving, g.Currency)),
	}
	for _, h := range highlights {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render("  • " + h))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	gauge := NewScoreGauge("Timeline", g.Status.ProgressPct.InexactFloat64())
	gauge.LabelWidth = 10
	content.WriteString(gauge.WithWidth(g.barWidth()).Render())

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(g.Width)
	if g.IsSelected {
		border = border.BorderForeground(tuistyles.ColorAccent).BorderStyle(lipgloss.ThickBorder())
	} else {
		border = border.BorderForeground(tuistyles.ColorBorder)
	}
	return border.Render(content.String())
}

func (g *GoalCard) barWidth() int {
	w := g.Width - 24
	if w < 10 {
		return 10
	}
	return w
}
