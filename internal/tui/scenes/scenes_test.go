package scenes

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func press(keys ...string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(keys))
	for _, k := range keys {
		switch k {
		case "enter":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEsc})
		case "up":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyUp})
		case "down":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyDown})
		case "right":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRight})
		case "left":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyLeft})
		case "end":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnd})
		case "backspace":
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyBackspace})
		default:
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
	return msgs
}

func computedState(t *testing.T) *domain.AppState {
	t.Helper()
	s := domain.NewAppState()
	s.Personal.Name = "Asha"
	s.Personal.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Assets.Category(domain.Equity).Named["index_funds"] = domain.MoneyRecord{Value: decimal.NewFromInt(1000000)}
	s.Income.Regular = decimal.NewFromInt(100000)
	s.Expenses.MonthlyRecurring.Named["living"] = decimal.NewFromInt(50000)
	s.RiskAnswers = domain.RiskAnswers{Experience: 3, Knowledge: 3, VolatilityTolerance: 3, GoalOrientation: 3, Horizon: 3}
	s.Goals = []domain.Goal{
		{ID: "g1", Name: "House", TargetAmount: decimal.NewFromInt(500000), TimelineYears: 5, StartDate: testNow},
		{ID: "g2", Name: "Car", TargetAmount: decimal.NewFromInt(80000), TimelineYears: 2, StartDate: testNow},
	}

	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return testNow }
	summary, err := engine.RecomputeState(s)
	require.NoError(t, err)
	s.Summary = summary
	return s
}

func TestDashboard_View(t *testing.T) {
	m := NewDashboardModel("USD")
	assert.Contains(t, m.View(), "No state loaded")

	m.SetSize(120, 40)
	m.SetState(computedState(t))
	out := m.View()
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "Net Worth")
	assert.Contains(t, out, "$1,000,000.00")
	assert.Contains(t, out, "Financial Health")
	assert.Contains(t, out, "Risk profile: Moderately Aggressive")
}

func TestDepletionLabel(t *testing.T) {
	assert.Equal(t, "1 year", depletionLabel(1))
	assert.Equal(t, "17 years", depletionLabel(17))
	assert.Equal(t, "100+ years", depletionLabel(calculation.MaxHorizonYears))
}

func TestProjection_Scroll(t *testing.T) {
	rows := make([]domain.ProjectionRow, 30)
	for i := range rows {
		rows[i] = domain.ProjectionRow{
			Year:           2025 + i,
			RequiredCorpus: decimal.NewFromInt(int64(1000000 + i*10000)),
			ExpectedCorpus: decimal.NewFromInt(int64(500000 + i*50000)),
		}
	}
	m := NewProjectionModel("USD")
	assert.Contains(t, m.View(), "No projection yet")

	m.SetState(&domain.AppState{Summary: &domain.DerivedSummary{Projection: rows}})
	for _, k := range press("up") {
		m, _ = m.Update(k)
	}
	assert.Equal(t, 0, m.Offset(), "scrolling stops at the top")

	for _, k := range press("down", "down") {
		m, _ = m.Update(k)
	}
	assert.Equal(t, 2, m.Offset())

	for _, k := range press("end") {
		m, _ = m.Update(k)
	}
	assert.Equal(t, 20, m.Offset())
	assert.Contains(t, m.View(), "rows 21-30 of 30")

	// a shorter projection pulls the offset back in range
	m.SetState(&domain.AppState{Summary: &domain.DerivedSummary{Projection: rows[:12]}})
	assert.Equal(t, 2, m.Offset())
}

func TestRisk_SubmitRequiresEveryAnswer(t *testing.T) {
	m := NewRiskModel()
	m.SetState(domain.NewAppState())

	m, cmd := m.Update(press("enter")[0])
	require.NotNil(t, cmd)
	_, isErr := cmd().(tuimsg.ErrorMsg)
	assert.True(t, isErr)
}

func TestRisk_AnswerAndSubmit(t *testing.T) {
	m := NewRiskModel()
	m.SetState(domain.NewAppState())

	// answer 5,4,3,2,1 moving down the questions
	for i, k := range []string{"5", "4", "3", "2", "1"} {
		if i > 0 {
			m, _ = m.Update(press("down")[0])
		}
		m, _ = m.Update(press(k)[0])
	}
	assert.True(t, m.Modified())

	// nudge the last answer up
	m, _ = m.Update(press("right")[0])

	m, cmd := m.Update(press("enter")[0])
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.RiskAnswersSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, domain.RiskAnswers{Experience: 5, Knowledge: 4, VolatilityTolerance: 3, GoalOrientation: 2, Horizon: 2}, msg.Answers)
	assert.False(t, m.Modified())
	assert.Contains(t, m.View(), string(calculation.ProfileRisk(msg.Answers).Category))
}

func TestRisk_KeepsUnsavedEditsOnRefresh(t *testing.T) {
	m := NewRiskModel()
	m.SetState(computedState(t))
	m, _ = m.Update(press("5")[0])

	m.SetState(computedState(t))
	assert.Equal(t, 5, m.Answers().Experience)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 3, m.Answers().Experience)
}

func TestAssumptions_EditAndSubmit(t *testing.T) {
	m := NewAssumptionsModel()
	m.SetState(computedState(t))
	assert.False(t, m.Editing())

	// expected return 12 -> 9
	for _, k := range press("enter", "backspace", "backspace", "9") {
		m, _ = m.Update(k)
	}
	assert.True(t, m.Editing())
	m, _ = m.Update(press("enter")[0])
	assert.False(t, m.Editing())

	// monthly savings override is the last field
	for _, k := range press("down", "down", "down", "down", "enter", "2", "0", "0", "0", "0", "enter") {
		m, _ = m.Update(k)
	}

	m, cmd := m.Update(press("s")[0])
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.AssumptionsSubmittedMsg)
	require.True(t, ok)
	assert.True(t, msg.Assumptions.ExpectedReturnPct.Equal(decimal.NewFromInt(9)), msg.Assumptions.ExpectedReturnPct.String())
	assert.True(t, msg.Assumptions.InflationPct.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 85, msg.Assumptions.LifeExpectancy)
	require.NotNil(t, msg.Assumptions.MonthlySavings)
	assert.True(t, msg.Assumptions.MonthlySavings.Equal(decimal.NewFromInt(20000)))
}

func TestAssumptions_RejectsBadInput(t *testing.T) {
	m := NewAssumptionsModel()
	m.SetState(computedState(t))

	for _, k := range press("down", "enter", "backspace", "x", "enter") {
		m, _ = m.Update(k)
	}
	assert.Contains(t, m.View(), "inflation must be a number")

	m, cmd := m.Update(press("s")[0])
	assert.Nil(t, cmd)

	// esc abandons an edit in progress
	for _, k := range press("enter", "backspace", "7", "esc") {
		m, _ = m.Update(k)
	}
	assert.False(t, m.Editing())
}

func TestGoals_DeleteConfirmation(t *testing.T) {
	m := NewGoalsModel("USD")
	m.SetState(computedState(t))
	require.NotNil(t, m.Selected())
	assert.Equal(t, "House", m.Selected().Name)
	assert.Contains(t, m.View(), "Car")

	m, _ = m.Update(press("down")[0])
	assert.Equal(t, "Car", m.Selected().Name)

	// declining keeps the goal
	m, _ = m.Update(press("x")[0])
	assert.Contains(t, m.View(), "Delete \"Car\"?")
	m, cmd := m.Update(press("n")[0])
	assert.Nil(t, cmd)

	m, _ = m.Update(press("x")[0])
	_, cmd = m.Update(press("y")[0])
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.GoalRemoveRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "g2", msg.GoalID)
}

func TestGoals_Empty(t *testing.T) {
	m := NewGoalsModel("USD")
	m.SetState(domain.NewAppState())
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "No goals recorded")

	_, cmd := m.Update(press("x")[0])
	assert.Nil(t, cmd)
}
