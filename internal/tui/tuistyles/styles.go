// Package tuistyles holds the shared lipgloss palette so scenes and components can use it
// without importing the tui package.
package tuistyles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finfree/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F25D94")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorWarning   = lipgloss.Color("#F2C94C")
	ColorDanger    = lipgloss.Color("#FF4672")
	ColorInfo      = lipgloss.Color("#3C9EE7")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#444444")

	ColorChartLine1 = lipgloss.Color("#04B575")
	ColorChartLine2 = lipgloss.Color("#F25D94")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

	HelpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	InfoStyle  = lipgloss.NewStyle().Italic(true).Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle   = lipgloss.NewStyle().Foreground(ColorForeground)
)

// ScoreColor maps a 0-100 score to a traffic light color
func ScoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 70:
		return ColorSuccess
	case score >= 40:
		return ColorWarning
	default:
		return ColorDanger
	}
}

// ScoreStyle renders a score in its traffic light color
func ScoreStyle(score float64) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ScoreColor(score))
}

// MetricTrendStyle colors a change by direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for a change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency formats an amount in the given currency
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return output.FormatCurrency(amount, currency)
}

// FormatShort renders large amounts as K, M or Cr style abbreviations for tight layouts.
// Indian rupee amounts use lakh and crore.
func FormatShort(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if currency == "INR" {
		switch {
		case amount >= 1e7:
			return fmt.Sprintf("%s%.1fCr", sign, amount/1e7)
		case amount >= 1e5:
			return fmt.Sprintf("%s%.1fL", sign, amount/1e5)
		}
	}
	switch {
	case amount >= 1e6:
		return fmt.Sprintf("%s%.1fM", sign, amount/1e6)
	case amount >= 1e3:
		return fmt.Sprintf("%s%.0fK", sign, amount/1e3)
	}
	return fmt.Sprintf("%s%.0f", sign, amount)
}
