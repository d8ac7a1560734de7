package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tui/components"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

type riskKeyMap struct {
	Up, Down, Left, Right, Submit, Reset key.Binding
}

var riskKeys = riskKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous question")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next question")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "lower")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "higher")),
	Submit: key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save answers")),
	Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
}

// RiskModel is the five question risk questionnaire with a live profile preview
type RiskModel struct {
	saved    domain.RiskAnswers
	sliders  []*components.AnswerSlider
	focused  int
	modified bool
	width    int
	height   int
}

// NewRiskModel creates a new risk scene model
func NewRiskModel() *RiskModel {
	m := &RiskModel{}
	m.buildSliders()
	return m
}

// SetState loads the stored answers unless there are unsaved edits
func (m *RiskModel) SetState(state *domain.AppState) {
	if state == nil {
		return
	}
	m.saved = state.RiskAnswers
	if !m.modified {
		m.buildSliders()
	}
}

// SetSize updates the scene dimensions
func (m *RiskModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Modified reports whether there are unsaved answers
func (m *RiskModel) Modified() bool {
	return m.modified
}

// Answers returns the answers currently on screen
func (m *RiskModel) Answers() domain.RiskAnswers {
	return domain.RiskAnswers{
		Experience:          m.sliders[0].Value,
		Knowledge:           m.sliders[1].Value,
		VolatilityTolerance: m.sliders[2].Value,
		GoalOrientation:     m.sliders[3].Value,
		Horizon:             m.sliders[4].Value,
	}
}

func (m *RiskModel) buildSliders() {
	a := m.saved
	m.sliders = []*components.AnswerSlider{
		components.NewAnswerSlider("Investment experience", a.Experience).WithScale("none", "decades"),
		components.NewAnswerSlider("Market knowledge", a.Knowledge).WithScale("novice", "expert"),
		components.NewAnswerSlider("Comfort with volatility", a.VolatilityTolerance).WithScale("sell on any dip", "buy the dip"),
		components.NewAnswerSlider("Goal orientation", a.GoalOrientation).WithScale("preserve capital", "maximise growth"),
		components.NewAnswerSlider("Investment horizon", a.Horizon).WithScale("under a year", "over 15 years"),
	}
	if m.focused >= len(m.sliders) {
		m.focused = 0
	}
	m.sliders[m.focused].SetFocused(true)
	m.modified = false
}

// Update handles messages for the risk scene
func (m *RiskModel) Update(msg tea.Msg) (*RiskModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, riskKeys.Up):
		m.moveFocus(-1)
	case key.Matches(keyMsg, riskKeys.Down):
		m.moveFocus(1)
	case key.Matches(keyMsg, riskKeys.Left):
		m.sliders[m.focused].Decrement()
		m.modified = true
	case key.Matches(keyMsg, riskKeys.Right):
		m.sliders[m.focused].Increment()
		m.modified = true
	case key.Matches(keyMsg, riskKeys.Reset):
		m.buildSliders()
	case key.Matches(keyMsg, riskKeys.Submit):
		return m, m.submit()
	default:
		// digits answer the focused question directly
		if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '5' {
			m.sliders[m.focused].Set(int(s[0] - '0'))
			m.modified = true
		}
	}
	return m, nil
}

func (m *RiskModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

func (m *RiskModel) submit() tea.Cmd {
	answers := m.Answers()
	if !answers.IsComplete() {
		return func() tea.Msg {
			return tuimsg.ErrorMsg{Err: fmt.Errorf("answer all five questions before saving")}
		}
	}
	m.modified = false
	return func() tea.Msg {
		return tuimsg.RiskAnswersSubmittedMsg{Answers: answers}
	}
}

// View renders the questionnaire and its preview
func (m *RiskModel) View() string {
	var left strings.Builder
	left.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Risk Questionnaire"))
	left.WriteString("\n\n")
	for _, s := range m.sliders {
		left.WriteString(s.Render())
		left.WriteString("\n\n")
	}
	left.WriteString(m.renderHelp())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.BorderStyle.Render(left.String()),
		"  ",
		m.renderPreview())
}

func (m *RiskModel) renderPreview() string {
	answers := m.Answers()
	var b strings.Builder
	title := "Profile Preview"
	if m.modified {
		title += " (unsaved)"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(title))
	b.WriteString("\n\n")

	if !answers.IsComplete() {
		b.WriteString(tuistyles.InfoStyle.Render("Answer every question to see your profile"))
		return tuistyles.BorderStyle.Render(b.String())
	}

	profile := calculation.ProfileRisk(answers)
	b.WriteString(components.NewScoreGauge("Risk score", float64(profile.Score)).WithWidth(20).Render())
	b.WriteString("\n\n")
	b.WriteString(tuistyles.MetricValueStyle.Render(string(profile.Category)))
	b.WriteString("\n\n")
	for _, part := range []struct {
		name  string
		value string
	}{
		{"Equity", profile.Allocation.Equity.String()},
		{"Debt", profile.Allocation.Debt.String()},
		{"Gold", profile.Allocation.Gold.String()},
		{"Cash", profile.Allocation.Cash.String()},
	} {
		b.WriteString(fmt.Sprintf("%s %s\n",
			tuistyles.MetricLabelStyle.Width(8).Render(part.name),
			tuistyles.ParameterValueStyle.Render(part.value+"%")))
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *RiskModel) renderHelp() string {
	var parts []string
	for _, b := range []key.Binding{riskKeys.Up, riskKeys.Down, riskKeys.Left, riskKeys.Right, riskKeys.Submit, riskKeys.Reset} {
		h := b.Help()
		parts = append(parts, tuistyles.HelpKeyStyle.Render(h.Key)+" "+tuistyles.HelpDescStyle.Render(h.Desc))
	}
	parts = append(parts, tuistyles.HelpKeyStyle.Render("1-5")+" "+tuistyles.HelpDescStyle.Render("answer"))
	return strings.Join(parts, " • ")
}
