package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/store"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *tracker.Tracker) {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	engine.Now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	path := filepath.Join(t.TempDir(), "finfree.yaml")
	tr, err := tracker.Open(context.Background(), store.NewFileStore(path), engine)
	require.NoError(t, err)
	require.NoError(t, tr.SetRegularIncome(context.Background(), decimal.NewFromInt(100000)))
	_, err = tr.AddGoal(context.Background(), domain.Goal{Name: "House", TargetAmount: decimal.NewFromInt(500000), TimelineYears: 5})
	require.NoError(t, err)

	m := NewModel(context.Background(), tr, "INR")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	m = next.(Model)
	next, _ = m.Update(m.Init()())
	return next.(Model), tr
}

// step applies a message and then the message its command produces, if any
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func TestModel_InitLoadsState(t *testing.T) {
	m, _ := newTestModel(t)
	require.NotNil(t, m.State())
	require.NotNil(t, m.State().Summary)
	assert.True(t, m.State().Summary.MonthlyIncome.Equal(decimal.NewFromInt(100000)))
	assert.Contains(t, m.View(), "FINFREE - Financial Freedom Tracker")
	assert.Contains(t, m.View(), "Dashboard")
}

func TestModel_InitWithoutTracker(t *testing.T) {
	m := NewModel(context.Background(), nil, "INR")
	next, _ := m.Update(m.Init()())
	assert.Error(t, next.(Model).Err())
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t)

	tests := []struct {
		key  string
		want Scene
	}{
		{"p", SceneProjection},
		{"r", SceneRisk},
		{"a", SceneAssumptions},
		{"g", SceneGoals},
		{"?", SceneHelp},
		{"d", SceneDashboard},
	}
	for _, tt := range tests {
		m = step(t, m, runes(tt.key))
		if m.CurrentScene() != tt.want {
			t.Errorf("after %q scene = %s, want %s", tt.key, m.CurrentScene(), tt.want)
		}
	}

	m = step(t, m, runes("g"))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.CurrentScene(), "esc returns to the previous scene")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_EditingSuspendsShortcuts(t *testing.T) {
	m, _ := newTestModel(t)
	m = step(t, m, runes("a"))
	require.Equal(t, SceneAssumptions, m.CurrentScene())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	next, _ = m.Update(runes("d"))
	m = next.(Model)
	assert.Equal(t, SceneAssumptions, m.CurrentScene(), "typing into a field does not navigate")
}

func TestModel_SaveRiskAnswers(t *testing.T) {
	m, tr := newTestModel(t)
	answers := domain.RiskAnswers{Experience: 5, Knowledge: 5, VolatilityTolerance: 5, GoalOrientation: 5, Horizon: 5}

	next, cmd := m.Update(tuimsg.RiskAnswersSubmittedMsg{Answers: answers})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Saving risk answers")

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, answers, tr.State().RiskAnswers)
	assert.Equal(t, domain.Aggressive, m.State().Summary.Risk.Category)
	assert.Contains(t, m.View(), "Saved risk answers")
}

func TestModel_SaveAssumptionsAndRemoveGoal(t *testing.T) {
	m, tr := newTestModel(t)

	a := domain.DefaultAssumptions()
	a.InflationPct = decimal.NewFromInt(4)
	m = step(t, m, tuimsg.AssumptionsSubmittedMsg{Assumptions: a})
	assert.True(t, tr.State().Assumptions.InflationPct.Equal(decimal.NewFromInt(4)))

	require.Len(t, m.State().Goals, 1)
	m = step(t, m, tuimsg.GoalRemoveRequestedMsg{GoalID: m.State().Goals[0].ID})
	assert.Empty(t, tr.State().Goals)
	assert.Empty(t, m.State().Goals)
}

func TestModel_ErrorIsDismissedByAnyKey(t *testing.T) {
	m, tr := newTestModel(t)

	m = step(t, m, tuimsg.GoalRemoveRequestedMsg{GoalID: "missing"})
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Press any key to continue")
	assert.Len(t, tr.State().Goals, 1, "a failed removal leaves the goals alone")

	next, _ := m.Update(runes("p"))
	m = next.(Model)
	assert.NoError(t, m.Err())
	assert.Equal(t, SceneDashboard, m.CurrentScene(), "the dismissing key is swallowed")

	next, _ = m.Update(tuimsg.ErrorMsg{Err: errors.New("boom")})
	assert.EqualError(t, next.(Model).Err(), "boom")
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(Model)
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 40, m.height)
}
