package calculation

import (
	"github.com/shopspring/decimal"
)

// DepletionStatus labels the years-based financial freedom score. It is not comparable with AccumulationStatus.
type DepletionStatus string

const (
	DepletionUltimate       DepletionStatus = "Ultimate"
	DepletionAchieved       DepletionStatus = "Achieved"
	DepletionVeryClose      DepletionStatus = "Very Close"
	DepletionGettingThere   DepletionStatus = "Getting There"
	DepletionStillDependent DepletionStatus = "Still Dependent"
	DepletionInsecure       DepletionStatus = "Insecure"
)

// ClassifyDepletion maps years of coverage to a status
func ClassifyDepletion(years int) DepletionStatus {
	switch {
	case years >= 100:
		return DepletionUltimate
	case years >= 70:
		return DepletionAchieved
	case years >= 50:
		return DepletionVeryClose
	case years >= 25:
		return DepletionGettingThere
	case years >= 10:
		return DepletionStillDependent
	default:
		return DepletionInsecure
	}
}

// AccumulationStatus labels the percent-of-required-corpus score
type AccumulationStatus string

const (
	AccumulationFree           AccumulationStatus = "Financially Free"
	AccumulationAlmostThere    AccumulationStatus = "Almost There"
	AccumulationGoodProgress   AccumulationStatus = "Good Progress"
	AccumulationGettingStarted AccumulationStatus = "Getting Started"
	AccumulationJustBeginning  AccumulationStatus = "Just Beginning"
)

// ClassifyAccumulation maps an FF score percentage to a status
func ClassifyAccumulation(pct decimal.Decimal) AccumulationStatus {
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return AccumulationFree
	case pct.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return AccumulationAlmostThere
	case pct.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return AccumulationGoodProgress
	case pct.GreaterThanOrEqual(decimal.NewFromInt(25)):
		return AccumulationGettingStarted
	default:
		return AccumulationJustBeginning
	}
}

// Health status labels
const (
	HealthExcellent        = "Excellent"
	HealthGood             = "Good"
	HealthFair             = "Fair"
	HealthNeedsImprovement = "Needs Improvement"
)

// ClassifyHealth maps an overall health score to a label
func ClassifyHealth(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return HealthExcellent
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return HealthGood
	case score.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return HealthFair
	default:
		return HealthNeedsImprovement
	}
}
