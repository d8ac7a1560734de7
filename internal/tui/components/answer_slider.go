package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finfree/internal/tui/tuistyles"
)

const (
	minAnswer = 1
	maxAnswer = 5
)

// AnswerSlider is one risk questionnaire question answered on a 1-5 scale.
// Zero means unanswered and renders as an empty scale.
type AnswerSlider struct {
	Question  string
	Low       string // meaning of 1
	High      string // meaning of 5
	Value     int
	IsFocused bool
}

// NewAnswerSlider creates a slider; out-of-range values are treated as unanswered
func NewAnswerSlider(question string, value int) *AnswerSlider {
	s := &AnswerSlider{Question: question}
	if value >= minAnswer && value <= maxAnswer {
		s.Value = value
	}
	return s
}

// WithScale sets the captions for both ends of the scale
func (s *AnswerSlider) WithScale(low, high string) *AnswerSlider {
	s.Low = low
	s.High = high
	return s
}

// SetFocused sets the focus state
func (s *AnswerSlider) SetFocused(focused bool) *AnswerSlider {
	s.IsFocused = focused
	return s
}

// Increment moves one step up the scale. An unanswered question starts at 1.
func (s *AnswerSlider) Increment() {
	if s.Value < maxAnswer {
		s.Value++
	}
}

// Decrement moves one step down; it never goes below 1 once answered
func (s *AnswerSlider) Decrement() {
	if s.Value > minAnswer {
		s.Value--
	}
}

// Set picks an answer directly; values outside 1-5 are ignored
func (s *AnswerSlider) Set(value int) {
	if value >= minAnswer && value <= maxAnswer {
		s.Value = value
	}
}

// Answered reports whether a value has been chosen
func (s *AnswerSlider) Answered() bool {
	return s.Value >= minAnswer
}

// Render returns the question with its 1-5 scale
func (s *AnswerSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	marker := "  "
	if s.IsFocused {
		marker = "▶ "
	}
	content.WriteString(marker + labelStyle.Render(s.Question))
	content.WriteString("\n  ")

	for v := minAnswer; v <= maxAnswer; v++ {
		cell := fmt.Sprintf(" %d ", v)
		switch {
		case v == s.Value && s.IsFocused:
			cell = lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Background(tuistyles.ColorAccent).Render(cell)
		case v == s.Value:
			cell = lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Background(tuistyles.ColorPrimary).Render(cell)
		case v < s.Value:
			cell = lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Render(cell)
		default:
			cell = lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(cell)
		}
		content.WriteString(cell)
	}

	if s.Low != "" || s.High != "" {
		content.WriteString("\n  ")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).
			Render(fmt.Sprintf("1 = %s  ─  5 = %s", s.Low, s.High)))
	}
	return content.String()
}
