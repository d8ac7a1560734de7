package calculation

import (
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// MinWithdrawalRate is the floor of the safe withdrawal rate used for the required corpus
var MinWithdrawalRate = decimal.NewFromFloat(0.04)

// RequiredCorpus is annualExpenses / max(0.04, expectedReturn - inflation)
func RequiredCorpus(annualExpenses, expectedReturn, inflationRate decimal.Decimal) decimal.Decimal {
	rate := maxDecimal(MinWithdrawalRate, expectedReturn.Sub(inflationRate))
	return domain.NonNegative(annualExpenses).Div(rate)
}

// YearsToFreedom counts the years until currentCorpus, growing at returnRate and fed by
// annualSavings that grow at savingsGrowthRate, reaches requiredCorpus.
// ok is false when the target is not reached within MaxHorizonYears.
func YearsToFreedom(currentCorpus, requiredCorpus, annualSavings, returnRate, savingsGrowthRate decimal.Decimal) (years int, ok bool) {
	corpus := currentCorpus
	contribution := annualSavings
	growth := one.Add(returnRate)
	savingsGrowth := one.Add(savingsGrowthRate)

	for corpus.LessThan(requiredCorpus) && years < MaxHorizonYears {
		corpus = corpus.Mul(growth).Add(contribution)
		contribution = contribution.Mul(savingsGrowth)
		years++
	}
	if years >= MaxHorizonYears {
		return years, false
	}
	return years, true
}

// ProjectionInput carries the starting point of a projection. Rates are fractions.
type ProjectionInput struct {
	StartYear         int
	StartAge          int
	CurrentCorpus     decimal.Decimal
	AnnualExpenses    decimal.Decimal
	AnnualSavings     decimal.Decimal
	ExpectedReturn    decimal.Decimal
	InflationRate     decimal.Decimal
	SavingsGrowthRate decimal.Decimal
}

// Projection produces one row per year starting with the current year. The required corpus
// is recomputed each year against that year's inflated expenses, and the table ends with
// the first year the corpus covers it, or after MaxHorizonYears.
func Projection(in ProjectionInput) []domain.ProjectionRow {
	corpus := in.CurrentCorpus
	expense := domain.NonNegative(in.AnnualExpenses)
	contribution := in.AnnualSavings
	growth := one.Add(in.ExpectedReturn)
	inflation := one.Add(in.InflationRate)
	savingsGrowth := one.Add(in.SavingsGrowthRate)

	rows := make([]domain.ProjectionRow, 0, 16)
	for year := 0; year <= MaxHorizonYears; year++ {
		required := RequiredCorpus(expense, in.ExpectedReturn, in.InflationRate)
		rows = append(rows, domain.ProjectionRow{
			Year:           in.StartYear + year,
			Age:            in.StartAge + year,
			AnnualExpenses: expense.Round(2),
			RequiredCorpus: required.Round(2),
			ExpectedCorpus: corpus.Round(2),
			FFScorePct:     FFScore(corpus, required),
		})
		if corpus.GreaterThanOrEqual(required) {
			break
		}
		corpus = corpus.Mul(growth).Add(contribution)
		contribution = contribution.Mul(savingsGrowth)
		expense = expense.Mul(inflation)
	}
	return rows
}

// FFScore is corpus / required * 100, rounded to two places. It is not capped.
// With nothing required the score is 100.
func FFScore(corpus, required decimal.Decimal) decimal.Decimal {
	if !required.IsPositive() {
		return hundred
	}
	score := domain.NonNegative(corpus).Div(required).Mul(hundred)
	return score.Round(2)
}
