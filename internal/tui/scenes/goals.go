package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tui/components"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// GoalsModel lists goals with their computed status. Deleting asks for confirmation.
type GoalsModel struct {
	goals      []domain.Goal
	statuses   map[string]domain.GoalStatus
	currency   string
	selected   int
	confirming bool
	width      int
	height     int
}

// NewGoalsModel creates a new goals scene model
func NewGoalsModel(currency string) *GoalsModel {
	return &GoalsModel{currency: currency, statuses: map[string]domain.GoalStatus{}}
}

// SetState updates the goal list from the state and its summary
func (m *GoalsModel) SetState(state *domain.AppState) {
	m.goals = nil
	m.statuses = map[string]domain.GoalStatus{}
	m.confirming = false
	if state == nil {
		return
	}
	m.goals = append(m.goals, state.Goals...)
	if state.Summary != nil {
		for _, s := range state.Summary.Goals {
			m.statuses[s.GoalID] = s
		}
	}
	if m.selected >= len(m.goals) {
		m.selected = len(m.goals) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// SetSize updates the scene dimensions
func (m *GoalsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted goal, if any
func (m *GoalsModel) Selected() *domain.Goal {
	if m.selected >= 0 && m.selected < len(m.goals) {
		return &m.goals[m.selected]
	}
	return nil
}

// Update handles messages for the goals scene
func (m *GoalsModel) Update(msg tea.Msg) (*GoalsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.goals) == 0 {
		return m, nil
	}

	if m.confirming {
		m.confirming = false
		if key.Matches(keyMsg, key.NewBinding(key.WithKeys("y", "Y"))) {
			id := m.goals[m.selected].ID
			return m, func() tea.Msg { return tuimsg.GoalRemoveRequestedMsg{GoalID: id} }
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selected < len(m.goals)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("x", "delete"))):
		m.confirming = true
	}
	return m, nil
}

// View renders the goal cards
func (m *GoalsModel) View() string {
	if len(m.goals) == 0 {
		return tuistyles.BorderStyle.Render("No goals recorded.\n\nAdd one with: finfree ledger add-goal")
	}

	width := m.width - 6
	if width < 40 || width > 80 {
		width = 60
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Goals"))
	b.WriteString("\n\n")
	for i, g := range m.goals {
		status, ok := m.statuses[g.ID]
		if !ok {
			status = domain.GoalStatus{GoalID: g.ID, Name: g.Name}
		}
		b.WriteString(components.NewGoalCard(g, status, m.currency).
			SetSelected(i == m.selected).
			WithWidth(width).
			Render())
		b.WriteString("\n")
	}

	if m.confirming {
		b.WriteString(tuistyles.ErrorStyle.Render("Delete \"" + m.goals[m.selected].Name + "\"? (y/n)"))
	} else {
		b.WriteString(helpLine([][2]string{{"↑/↓", "select"}, {"x", "delete"}}))
	}
	return b.String()
}
