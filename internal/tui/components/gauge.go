package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// ScoreGauge draws a 0-100 score as a horizontal bar colored by band.
// Scores above 100 (an FF score past the required corpus) fill the bar.
type ScoreGauge struct {
	Label      string
	Score      float64
	Width      int
	LabelWidth int
}

// NewScoreGauge creates a gauge
func NewScoreGauge(label string, score float64) *ScoreGauge {
	return &ScoreGauge{Label: label, Score: score, Width: 30, LabelWidth: 16}
}

// WithWidth sets the bar width
func (g *ScoreGauge) WithWidth(width int) *ScoreGauge {
	g.Width = width
	return g
}

// Filled returns the number of filled cells
func (g *ScoreGauge) Filled() int {
	if g.Score <= 0 || g.Width <= 0 {
		return 0
	}
	filled := int(float64(g.Width) * g.Score / 100)
	if filled > g.Width {
		filled = g.Width
	}
	return filled
}

// Render returns the label, bar and value on one line
func (g *ScoreGauge) Render() string {
	filled := g.Filled()
	bar := lipgloss.NewStyle().Foreground(tuistyles.ScoreColor(g.Score)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", g.Width-filled))

	label := lipgloss.NewStyle().Width(g.LabelWidth).Foreground(tuistyles.ColorForeground).Render(g.Label)
	value := tuistyles.ScoreStyle(g.Score).Render(fmt.Sprintf("%5.1f", g.Score))
	return label + " [" + bar + "] " + value
}

// GaugePanel stacks gauges under a title inside a border
type GaugePanel struct {
	Title  string
	Gauges []*ScoreGauge
	Width  int
}

// NewGaugePanel creates a panel
func NewGaugePanel(title string) *GaugePanel {
	return &GaugePanel{Title: title, Width: 64}
}

// Add appends a gauge
func (p *GaugePanel) Add(g *ScoreGauge) *GaugePanel {
	p.Gauges = append(p.Gauges, g)
	return p
}

// Render returns the styled panel
func (p *GaugePanel) Render() string {
	var content strings.Builder
	if p.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(p.Title))
		content.WriteString("\n\n")
	}
	for i, g := range p.Gauges {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(g.Render())
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(p.Width).
		Render(content.String())
}

// Spinner is a frame-based loading indicator
type Spinner struct {
	Frame   int
	Message string
}

// NewSpinner creates a new spinner
func NewSpinner(message string) *Spinner {
	return &Spinner{Message: message}
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current spinner frame
func (s *Spinner) Render() string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	rendered := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(frames[s.Frame%len(frames)])
	if s.Message != "" {
		rendered += " " + s.Message
	}
	return rendered
}
