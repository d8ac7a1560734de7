// Package tuimsg holds the messages scenes send to the root model, kept apart so scenes
// do not import the tui package.
package tuimsg

import (
	"github.com/rgehrsitz/finfree/internal/domain"
)

// StateLoadedMsg carries a fresh copy of the tracked state and its summary
type StateLoadedMsg struct {
	State *domain.AppState
}

// StateSavedMsg signals a mutation was applied and persisted
type StateSavedMsg struct {
	Op    string
	State *domain.AppState
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RiskAnswersSubmittedMsg asks the root model to store new questionnaire answers
type RiskAnswersSubmittedMsg struct {
	Answers domain.RiskAnswers
}

// AssumptionsSubmittedMsg asks the root model to store new projection assumptions
type AssumptionsSubmittedMsg struct {
	Assumptions domain.Assumptions
}

// GoalRemoveRequestedMsg asks the root model to delete a goal
type GoalRemoveRequestedMsg struct {
	GoalID string
}
