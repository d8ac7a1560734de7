// Package tui is the interactive terminal dashboard over a tracked state.
package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/rgehrsitz/finfree/internal/tui/components"
	"github.com/rgehrsitz/finfree/internal/tui/scenes"
	"github.com/rgehrsitz/finfree/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	ctx      context.Context
	tracker  *tracker.Tracker
	mu       *sync.Mutex // commands run off the update loop; the tracker is not safe for concurrent use
	currency string

	currentScene  Scene
	previousScene Scene

	width  int
	height int

	state  *domain.AppState
	status string

	dashboardModel   *scenes.DashboardModel
	projectionModel  *scenes.ProjectionModel
	riskModel        *scenes.RiskModel
	assumptionsModel *scenes.AssumptionsModel
	goalsModel       *scenes.GoalsModel

	err     error
	loading bool
	spinner *components.Spinner
}

// NewModel creates a new application model over an open tracker
func NewModel(ctx context.Context, t *tracker.Tracker, currency string) Model {
	return Model{
		ctx:              ctx,
		tracker:          t,
		mu:               &sync.Mutex{},
		currency:         currency,
		currentScene:     SceneDashboard,
		dashboardModel:   scenes.NewDashboardModel(currency),
		projectionModel:  scenes.NewProjectionModel(currency),
		riskModel:        scenes.NewRiskModel(),
		assumptionsModel: scenes.NewAssumptionsModel(),
		goalsModel:       scenes.NewGoalsModel(currency),
		spinner:          components.NewSpinner("Loading..."),
		loading:          true,
		width:            80,
		height:           24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.loadStateCmd()
}

// loadStateCmd reads the tracked state
func (m Model) loadStateCmd() tea.Cmd {
	return func() tea.Msg {
		if m.tracker == nil {
			return tuimsg.ErrorMsg{Err: fmt.Errorf("no state is being tracked")}
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		return tuimsg.StateLoadedMsg{State: m.tracker.State()}
	}
}

// mutateCmd applies a tracker mutation and reports the refreshed state
func (m Model) mutateCmd(op string, fn func(ctx context.Context, t *tracker.Tracker) error) tea.Cmd {
	return func() tea.Msg {
		if m.tracker == nil {
			return tuimsg.ErrorMsg{Err: fmt.Errorf("no state is being tracked")}
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if err := fn(m.ctx, m.tracker); err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.StateSavedMsg{Op: op, State: m.tracker.State()}
	}
}

// setState pushes a new state into every scene
func (m *Model) setState(state *domain.AppState) {
	m.state = state
	m.dashboardModel.SetState(state)
	m.projectionModel.SetState(state)
	m.riskModel.SetState(state)
	m.assumptionsModel.SetState(state)
	m.goalsModel.SetState(state)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.dashboardModel.SetSize(width, height)
	m.projectionModel.SetSize(width, height)
	m.riskModel.SetSize(width, height)
	m.assumptionsModel.SetSize(width, height)
	m.goalsModel.SetSize(width, height)
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// State returns the last state received from the tracker
func (m Model) State() *domain.AppState {
	return m.state
}

// Err returns the error on screen, if any
func (m Model) Err() error {
	return m.err
}
