package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render(m.spinner.Render()))
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.dashboardModel.View()
	case SceneProjection:
		content = m.projectionModel.View()
	case SceneRisk:
		content = m.riskModel.View()
	case SceneAssumptions:
		content = m.assumptionsModel.View()
	case SceneGoals:
		content = m.goalsModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("FINFREE - Financial Freedom Tracker")
	crumb := m.currentScene.String()
	if m.state != nil && m.state.Personal.Name != "" {
		crumb = fmt.Sprintf("%s / %s", m.state.Personal.Name, crumb)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("d", "dashboard"),
		formatShortcut("p", "projection"),
		formatShortcut("r", "risk"),
		formatShortcut("a", "assumptions"),
		formatShortcut("g", "goals"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	right := ""
	switch {
	case m.status != "":
		right = m.status
	case m.tracker != nil:
		right = m.tracker.Location()
	}
	if right != "" {
		right = tuistyles.SubtitleStyle.Render(right)
		gap := m.width - lipgloss.Width(statusText) - lipgloss.Width(right) - 4
		if gap < 1 {
			gap = 1
		}
		statusText += strings.Repeat(" ", gap) + right
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	return tuistyles.BorderStyle.Render(`FINFREE - Financial Freedom Tracker

SCREENS:
  d        Dashboard: net worth, both freedom models, health
  p        Projection: required against expected corpus by year
  r        Risk profile questionnaire
  a        Projection assumptions
  g        Goals
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

RISK PROFILE:
  ↑/↓      Choose a question
  ←/→, 1-5 Answer it
  Enter    Save answers

ASSUMPTIONS:
  Enter    Edit the selected field, Enter again to finish
  s        Save every field

GOALS:
  x        Delete the selected goal

Changes are saved to the state file as soon as they are made.`)
}
