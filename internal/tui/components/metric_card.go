package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// MetricCard displays a single figure with a label, an optional status line and trend
type MetricCard struct {
	Label       string
	Value       string
	Status      string
	StatusColor lipgloss.Color
	Trend       *Trend
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 28,
	}
}

// WithStatus adds a colored status line, e.g. a freedom or health label
func (m *MetricCard) WithStatus(status string, color lipgloss.Color) *MetricCard {
	m.Status = status
	m.StatusColor = color
	return m
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		content += "\n" + tuistyles.MetricTrendStyle(m.Trend.IsPositive).
			Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	if m.Status != "" {
		color := m.StatusColor
		if color == "" {
			color = tuistyles.ColorMuted
		}
		content += "\n" + lipgloss.NewStyle().Foreground(color).Render(m.Status)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Status != "" {
		line += " " + lipgloss.NewStyle().Foreground(m.StatusColor).Render("("+m.Status+")")
	}
	return line
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
