package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/output"
	"github.com/rgehrsitz/finfree/internal/tui/components"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// DashboardModel is the landing scene: headline figures, both freedom models and the health breakdown
type DashboardModel struct {
	state    *domain.AppState
	currency string
	width    int
	height   int
}

// NewDashboardModel creates a new dashboard scene model
func NewDashboardModel(currency string) *DashboardModel {
	return &DashboardModel{currency: currency}
}

// SetState updates the state being displayed
func (m *DashboardModel) SetState(state *domain.AppState) {
	m.state = state
}

// SetSize updates the scene dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the dashboard; it has no interactive elements
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.state == nil || m.state.Summary == nil {
		return tuistyles.BorderStyle.Render("No state loaded")
	}
	s := m.state.Summary

	var content strings.Builder
	if m.state.Personal.Name != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s · as of %s",
			m.state.Personal.Name, s.ComputedAt.Format("2 Jan 2006"))))
		content.WriteString("\n\n")
	}

	money := func(d decimal.Decimal) string { return tuistyles.FormatCurrency(d, m.currency) }
	cardWidth := m.cardWidth()

	depletion := components.NewMetricCard("Wealth Lasts", depletionLabel(s.FFDepletionYears)).
		WithStatus(s.FFDepletionStatus, depletionColor(s.FFDepletionYears)).
		WithWidth(cardWidth)
	score := components.NewMetricCard("FF Score", output.FormatPercentage(s.FFScorePct)).
		WithStatus(s.FFAccumulationStatus, tuistyles.ScoreColor(s.FFScorePct.InexactFloat64())).
		WithWidth(cardWidth)
	freedom := components.NewMetricCard("Freedom In", output.FormatYears(s.FFYearsToFreedom)).
		WithWidth(cardWidth)
	if s.FreedomAge != nil {
		freedom.WithStatus(fmt.Sprintf("at age %d", *s.FreedomAge), tuistyles.ColorInfo)
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Net Worth", money(s.NetWorth)).WithWidth(cardWidth),
		components.NewMetricCard("Monthly Savings", money(s.MonthlySavings)).
			WithTrend(!s.MonthlySavings.IsNegative(), output.FormatPercentage(s.SavingsRate)+" of income").
			WithWidth(cardWidth),
		components.NewMetricCard("Required Corpus", money(s.RequiredCorpus)).WithWidth(cardWidth),
		depletion,
		score,
		freedom,
	}
	content.WriteString(components.MetricGrid(cards, 3))
	content.WriteString("\n\n")

	health := components.NewGaugePanel(fmt.Sprintf("Financial Health: %s (%s)",
		s.Health.Overall.StringFixed(1), s.Health.Status))
	health.Width = cardWidth*3 + 4
	for _, g := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Savings rate", s.Health.SavingsRateScore},
		{"Debt", s.Health.DebtScore},
		{"Investment mix", s.Health.InvestmentMixScore},
		{"Insurance", s.Health.InsuranceScore},
		{"Emergency fund", s.Health.EmergencyFundScore},
	} {
		health.Add(components.NewScoreGauge(g.label, g.value.InexactFloat64()))
	}
	content.WriteString(health.Render())
	content.WriteString("\n")

	risk := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(fmt.Sprintf(
		"Risk profile: %s (%d/100) · equity %s%% debt %s%% gold %s%% cash %s%%",
		s.Risk.Category, s.Risk.Score,
		s.Risk.Allocation.Equity.String(), s.Risk.Allocation.Debt.String(),
		s.Risk.Allocation.Gold.String(), s.Risk.Allocation.Cash.String()))
	content.WriteString(risk)

	return content.String()
}

func (m *DashboardModel) cardWidth() int {
	if m.width <= 0 {
		return 28
	}
	w := (m.width - 8) / 3
	if w < 22 {
		return 22
	}
	if w > 36 {
		return 36
	}
	return w
}

func depletionLabel(years int) string {
	if years >= calculation.MaxHorizonYears {
		return fmt.Sprintf("%d+ years", calculation.MaxHorizonYears)
	}
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

func depletionColor(years int) lipgloss.Color {
	switch {
	case years >= 70:
		return tuistyles.ColorSuccess
	case years >= 25:
		return tuistyles.ColorWarning
	default:
		return tuistyles.ColorDanger
	}
}
