package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

const (
	fieldExpectedReturn = iota
	fieldInflation
	fieldSavingsGrowth
	fieldLifeExpectancy
	fieldMonthlySavings
	fieldCount
)

// AssumptionsModel edits the projection assumptions one field at a time
type AssumptionsModel struct {
	saved    domain.Assumptions
	inputs   []textinput.Model
	labels   []string
	hints    []string
	focused  int
	editing  bool
	modified bool
	err      error
	width    int
	height   int
}

// NewAssumptionsModel creates a new assumptions scene model
func NewAssumptionsModel() *AssumptionsModel {
	m := &AssumptionsModel{
		saved: domain.DefaultAssumptions(),
		labels: []string{
			"Expected return",
			"Inflation",
			"Savings growth",
			"Life expectancy",
			"Monthly savings override",
		},
		hints: []string{
			"annual %, e.g. 12",
			"annual %, e.g. 6",
			"annual % raise in savings",
			"age in years",
			"blank uses income minus expenses",
		},
		inputs: make([]textinput.Model, fieldCount),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 16
		ti.Width = 18
		ti.Placeholder = m.hints[i]
		m.inputs[i] = ti
	}
	m.reset()
	return m
}

// SetState loads the stored assumptions unless there are unsaved edits
func (m *AssumptionsModel) SetState(state *domain.AppState) {
	if state == nil {
		return
	}
	m.saved = state.Assumptions
	if !m.modified && !m.editing {
		m.reset()
	}
}

// SetSize updates the scene dimensions
func (m *AssumptionsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether a text field has focus; global shortcuts are suspended meanwhile
func (m *AssumptionsModel) Editing() bool {
	return m.editing
}

func (m *AssumptionsModel) reset() {
	a := m.saved
	m.inputs[fieldExpectedReturn].SetValue(a.ExpectedReturnPct.String())
	m.inputs[fieldInflation].SetValue(a.InflationPct.String())
	m.inputs[fieldSavingsGrowth].SetValue(a.SavingsGrowthPct.String())
	m.inputs[fieldLifeExpectancy].SetValue(strconv.Itoa(a.LifeExpectancy))
	if a.MonthlySavings != nil {
		m.inputs[fieldMonthlySavings].SetValue(a.MonthlySavings.String())
	} else {
		m.inputs[fieldMonthlySavings].SetValue("")
	}
	m.modified = false
	m.err = nil
}

// Update handles messages for the assumptions scene
func (m *AssumptionsModel) Update(msg tea.Msg) (*AssumptionsModel, tea.Cmd) {
	if m.editing {
		return m.updateEditing(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.focused > 0 {
			m.focused--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		if m.focused < fieldCount-1 {
			m.focused++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "e"))):
		m.editing = true
		m.inputs[m.focused].Focus()
		m.inputs[m.focused].CursorEnd()
		return m, textinput.Blink
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+s", "s"))):
		return m, m.submit()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+r"))):
		m.reset()
	}
	return m, nil
}

func (m *AssumptionsModel) updateEditing(msg tea.Msg) (*AssumptionsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyTab:
			m.editing = false
			m.inputs[m.focused].Blur()
			m.modified = true
			_, m.err = m.parse()
			return m, nil
		case tea.KeyEsc:
			m.editing = false
			m.inputs[m.focused].Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// parse reads every field into assumptions
func (m *AssumptionsModel) parse() (domain.Assumptions, error) {
	pct := func(field int) (decimal.Decimal, error) {
		v, err := decimal.NewFromString(strings.TrimSpace(m.inputs[field].Value()))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s must be a number", strings.ToLower(m.labels[field]))
		}
		if v.IsNegative() {
			return decimal.Zero, fmt.Errorf("%s cannot be negative", strings.ToLower(m.labels[field]))
		}
		return v, nil
	}

	var a domain.Assumptions
	var err error
	if a.ExpectedReturnPct, err = pct(fieldExpectedReturn); err != nil {
		return a, err
	}
	if a.InflationPct, err = pct(fieldInflation); err != nil {
		return a, err
	}
	if a.SavingsGrowthPct, err = pct(fieldSavingsGrowth); err != nil {
		return a, err
	}
	life, convErr := strconv.Atoi(strings.TrimSpace(m.inputs[fieldLifeExpectancy].Value()))
	if convErr != nil || life < 0 {
		return a, fmt.Errorf("life expectancy must be a whole number of years")
	}
	a.LifeExpectancy = life

	if raw := strings.TrimSpace(m.inputs[fieldMonthlySavings].Value()); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return a, fmt.Errorf("monthly savings override must be a number")
		}
		a.MonthlySavings = &v
	}
	return a, nil
}

func (m *AssumptionsModel) submit() tea.Cmd {
	a, err := m.parse()
	m.err = err
	if err != nil {
		return nil
	}
	m.modified = false
	return func() tea.Msg {
		return tuimsg.AssumptionsSubmittedMsg{Assumptions: a}
	}
}

// View renders the form
func (m *AssumptionsModel) View() string {
	var b strings.Builder
	title := "Projection Assumptions"
	if m.modified {
		title += " (unsaved)"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(title))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := tuistyles.ParameterLabelStyle
		marker := "  "
		if i == m.focused {
			label = label.Foreground(tuistyles.ColorPrimary)
			marker = "▶ "
		}
		b.WriteString(marker)
		b.WriteString(label.Width(26).Render(m.labels[i]))
		if m.editing && i == m.focused {
			b.WriteString(m.inputs[i].View())
		} else {
			value := m.inputs[i].Value()
			if value == "" {
				value = "-"
			}
			b.WriteString(tuistyles.ParameterValueStyle.Render(value))
			b.WriteString("  ")
			b.WriteString(tuistyles.HelpDescStyle.Render(m.hints[i]))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(tuistyles.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(helpLine([][2]string{{"enter", "done"}, {"esc", "cancel"}}))
	} else {
		b.WriteString(helpLine([][2]string{{"↑/↓", "select"}, {"enter", "edit"}, {"s", "save"}, {"ctrl+r", "reset"}}))
	}
	return tuistyles.BorderStyle.Render(b.String())
}

func helpLine(pairs [][2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, tuistyles.HelpKeyStyle.Render(p[0])+" "+tuistyles.HelpDescStyle.Render(p[1]))
	}
	return strings.Join(parts, " • ")
}
