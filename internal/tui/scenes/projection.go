package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tui/components"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

const projectionPageSize = 10

// ProjectionModel charts expected against required corpus and pages through the yearly rows
type ProjectionModel struct {
	rows     []domain.ProjectionRow
	currency string
	offset   int
	width    int
	height   int
}

// NewProjectionModel creates a new projection scene model
func NewProjectionModel(currency string) *ProjectionModel {
	return &ProjectionModel{currency: currency}
}

// SetState takes the projection from the state's summary
func (m *ProjectionModel) SetState(state *domain.AppState) {
	m.rows = nil
	if state != nil && state.Summary != nil {
		m.rows = state.Summary.Projection
	}
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
}

// SetSize updates the scene dimensions
func (m *ProjectionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Offset returns the index of the first visible row
func (m *ProjectionModel) Offset() int {
	return m.offset
}

func (m *ProjectionModel) maxOffset() int {
	if len(m.rows) <= projectionPageSize {
		return 0
	}
	return len(m.rows) - projectionPageSize
}

// Update handles messages for the projection scene
func (m *ProjectionModel) Update(msg tea.Msg) (*ProjectionModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.scroll(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.scroll(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("pgdown", " "))):
		m.scroll(projectionPageSize)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("pgup"))):
		m.scroll(-projectionPageSize)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("home"))):
		m.offset = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("end"))):
		m.offset = m.maxOffset()
	}
	return m, nil
}

func (m *ProjectionModel) scroll(delta int) {
	m.offset += delta
	if m.offset < 0 {
		m.offset = 0
	}
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
}

// View renders the chart and the visible page of rows
func (m *ProjectionModel) View() string {
	if len(m.rows) == 0 {
		return tuistyles.BorderStyle.Render("No projection yet. Record some expenses to project the required corpus.")
	}

	required := make([]float64, len(m.rows))
	expected := make([]float64, len(m.rows))
	labels := make([]string, len(m.rows))
	for i, r := range m.rows {
		required[i] = r.RequiredCorpus.InexactFloat64()
		expected[i] = r.ExpectedCorpus.InexactFloat64()
		labels[i] = fmt.Sprintf("%d", r.Year)
	}

	width := m.width - 6
	if width < 40 {
		width = 60
	}
	chart := components.NewASCIIChart("Corpus Projection").
		AddSeries("Expected corpus", expected, tuistyles.ColorChartLine1).
		AddSeries("Required corpus", required, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(width, 12).
		WithValueFormat(func(v float64) string { return tuistyles.FormatShort(v, m.currency) })

	var content strings.Builder
	content.WriteString(chart.Render())
	content.WriteString("\n\n")
	content.WriteString(m.renderTable())
	return content.String()
}

func (m *ProjectionModel) renderTable() string {
	header := fmt.Sprintf("%-6s %-5s %14s %14s %14s %9s", "Year", "Age", "Expenses", "Required", "Expected", "Score")

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	end := m.offset + projectionPageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for _, r := range m.rows[m.offset:end] {
		age := "-"
		if r.Age > 0 {
			age = fmt.Sprintf("%d", r.Age)
		}
		line := fmt.Sprintf("%-6d %-5s %14s %14s %14s ", r.Year, age,
			tuistyles.FormatShort(r.AnnualExpenses.InexactFloat64(), m.currency),
			tuistyles.FormatShort(r.RequiredCorpus.InexactFloat64(), m.currency),
			tuistyles.FormatShort(r.ExpectedCorpus.InexactFloat64(), m.currency))
		score := r.FFScorePct.InexactFloat64()
		b.WriteString(tuistyles.TableCellStyle.Render(line))
		b.WriteString(tuistyles.ScoreStyle(score).Render(fmt.Sprintf("%8.1f%%", score)))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(
		fmt.Sprintf("rows %d-%d of %d · ↑/↓ scroll · pgup/pgdn page", m.offset+1, end, len(m.rows))))
	return b.String()
}
