package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneProjection
	SceneRisk
	SceneAssumptions
	SceneGoals
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneProjection:
		return "Projection"
	case SceneRisk:
		return "Risk Profile"
	case SceneAssumptions:
		return "Assumptions"
	case SceneGoals:
		return "Goals"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}
