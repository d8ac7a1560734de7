package calculation

import (
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// Questionnaire weights; they sum to 1 so all-5 answers score 100
var (
	weightExperience = decimal.NewFromFloat(0.15)
	weightKnowledge  = decimal.NewFromFloat(0.20)
	weightVolatility = decimal.NewFromFloat(0.25)
	weightGoal       = decimal.NewFromFloat(0.25)
	weightHorizon    = decimal.NewFromFloat(0.15)
	riskScale        = decimal.NewFromInt(20)
)

type riskBand struct {
	min        int
	category   domain.RiskCategory
	allocation domain.Allocation
}

// riskBands is ordered high to low; the first band whose lower bound the score meets wins
var riskBands = []riskBand{
	{80, domain.Aggressive, domain.NewAllocation(75, 15, 5, 5)},
	{60, domain.ModeratelyAggressive, domain.NewAllocation(60, 25, 10, 5)},
	{40, domain.Moderate, domain.NewAllocation(45, 35, 15, 5)},
	{20, domain.Conservative, domain.NewAllocation(30, 45, 15, 10)},
	{0, domain.VeryConservative, domain.NewAllocation(15, 55, 20, 10)},
}

// RiskScore is the weighted questionnaire score on a 0-100 scale, rounded to the nearest integer.
// Answers outside 1-5 are clamped first.
func RiskScore(answers domain.RiskAnswers) int {
	a := answers.Clamped()
	sum := decimal.NewFromInt(int64(a.Experience)).Mul(weightExperience).
		Add(decimal.NewFromInt(int64(a.Knowledge)).Mul(weightKnowledge)).
		Add(decimal.NewFromInt(int64(a.VolatilityTolerance)).Mul(weightVolatility)).
		Add(decimal.NewFromInt(int64(a.GoalOrientation)).Mul(weightGoal)).
		Add(decimal.NewFromInt(int64(a.Horizon)).Mul(weightHorizon))
	return int(sum.Mul(riskScale).Round(0).IntPart())
}

// ProfileForScore returns the category and recommended allocation for a score
func ProfileForScore(score int) domain.RiskProfile {
	for _, b := range riskBands {
		if score >= b.min {
			return domain.RiskProfile{Score: score, Category: b.category, Allocation: b.allocation}
		}
	}
	last := riskBands[len(riskBands)-1]
	return domain.RiskProfile{Score: score, Category: last.category, Allocation: last.allocation}
}

// ProfileRisk scores the questionnaire and maps it to a profile
func ProfileRisk(answers domain.RiskAnswers) domain.RiskProfile {
	return ProfileForScore(RiskScore(answers))
}
