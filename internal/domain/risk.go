package domain

import (
	"github.com/shopspring/decimal"
)

// RiskAnswers holds the five questionnaire answers on a 1-5 scale. Zero means unanswered.
type RiskAnswers struct {
	Experience          int `yaml:"experience" json:"experience"`
	Knowledge           int `yaml:"knowledge" json:"knowledge"`
	VolatilityTolerance int `yaml:"volatility_tolerance" json:"volatility_tolerance"`
	GoalOrientation     int `yaml:"goal_orientation" json:"goal_orientation"`
	Horizon             int `yaml:"horizon" json:"horizon"`
}

// Clamped returns the answers forced into the 1-5 range
func (a RiskAnswers) Clamped() RiskAnswers {
	c := func(v int) int {
		if v < 1 {
			return 1
		}
		if v > 5 {
			return 5
		}
		return v
	}
	return RiskAnswers{
		Experience:          c(a.Experience),
		Knowledge:           c(a.Knowledge),
		VolatilityTolerance: c(a.VolatilityTolerance),
		GoalOrientation:     c(a.GoalOrientation),
		Horizon:             c(a.Horizon),
	}
}

// IsComplete reports whether every question has an answer
func (a RiskAnswers) IsComplete() bool {
	for _, v := range []int{a.Experience, a.Knowledge, a.VolatilityTolerance, a.GoalOrientation, a.Horizon} {
		if v < 1 || v > 5 {
			return false
		}
	}
	return true
}

// RiskCategory is the investor profile derived from the questionnaire
type RiskCategory string

const (
	VeryConservative     RiskCategory = "Very Conservative"
	Conservative         RiskCategory = "Conservative"
	Moderate             RiskCategory = "Moderate"
	ModeratelyAggressive RiskCategory = "Moderately Aggressive"
	Aggressive           RiskCategory = "Aggressive"
)

// Allocation is a recommended split in percent; the four parts sum to 100
type Allocation struct {
	Equity decimal.Decimal `yaml:"equity" json:"equity"`
	Debt   decimal.Decimal `yaml:"debt" json:"debt"`
	Gold   decimal.Decimal `yaml:"gold" json:"gold"`
	Cash   decimal.Decimal `yaml:"cash" json:"cash"`
}

// NewAllocation builds an allocation from whole percentages
func NewAllocation(equity, debt, gold, cash int64) Allocation {
	return Allocation{
		Equity: decimal.NewFromInt(equity),
		Debt:   decimal.NewFromInt(debt),
		Gold:   decimal.NewFromInt(gold),
		Cash:   decimal.NewFromInt(cash),
	}
}

// Total returns the sum of the four parts
func (a Allocation) Total() decimal.Decimal {
	return a.Equity.Add(a.Debt).Add(a.Gold).Add(a.Cash)
}

// Liquid is the gold and cash share, compared against liquid holdings in the investment mix
func (a Allocation) Liquid() decimal.Decimal {
	return a.Gold.Add(a.Cash)
}

// RiskProfile is the scored questionnaire result
type RiskProfile struct {
	Score      int          `yaml:"score" json:"score"`
	Category   RiskCategory `yaml:"category" json:"category"`
	Allocation Allocation   `yaml:"allocation" json:"allocation"`
}
