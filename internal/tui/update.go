package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.StateLoadedMsg:
		m.loading = false
		m.setState(msg.State)
		return m, nil

	case tuimsg.StateSavedMsg:
		m.loading = false
		m.status = "Saved " + msg.Op
		m.setState(msg.State)
		return m, nil

	case tuimsg.RiskAnswersSubmittedMsg:
		answers := msg.Answers
		return m.startSave("risk answers", func(ctx context.Context, t *tracker.Tracker) error {
			return t.SetRiskAnswers(ctx, answers)
		})

	case tuimsg.AssumptionsSubmittedMsg:
		a := msg.Assumptions
		return m.startSave("assumptions", func(ctx context.Context, t *tracker.Tracker) error {
			return t.SetAssumptions(ctx, a)
		})

	case tuimsg.GoalRemoveRequestedMsg:
		id := msg.GoalID
		return m.startSave("goal removal", func(ctx context.Context, t *tracker.Tracker) error {
			return t.RemoveGoal(ctx, id)
		})
	}

	return m.updateCurrentScene(msg)
}

func (m Model) startSave(op string, fn func(ctx context.Context, t *tracker.Tracker) error) (tea.Model, tea.Cmd) {
	m.loading = true
	m.spinner.Message = "Saving " + op + "..."
	return m, m.mutateCmd(op, fn)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	// text fields get every key while focused
	if m.currentScene == SceneAssumptions && m.assumptionsModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	navigate := func(s Scene) (tea.Model, tea.Cmd) {
		if m.currentScene == s {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateMsg{Scene: s} }
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return navigate(SceneHelp)
	case "d":
		return navigate(SceneDashboard)
	case "p":
		return navigate(SceneProjection)
	case "r":
		return navigate(SceneRisk)
	case "a":
		return navigate(SceneAssumptions)
	case "g":
		return navigate(SceneGoals)
	case "esc":
		if m.currentScene == SceneDashboard {
			return m, nil
		}
		back := m.previousScene
		if back == m.currentScene {
			back = SceneDashboard
		}
		return navigate(back)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case SceneProjection:
		m.projectionModel, cmd = m.projectionModel.Update(msg)
	case SceneRisk:
		m.riskModel, cmd = m.riskModel.Update(msg)
	case SceneAssumptions:
		m.assumptionsModel, cmd = m.assumptionsModel.Update(msg)
	case SceneGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	}
	return m, cmd
}
