package calculation

import (
	"github.com/shopspring/decimal"
)

// MaxHorizonYears caps every year-by-year simulation
const MaxHorizonYears = 100

// DepletionYears counts how many years netWorth sustains annualExpenses that grow with
// inflationRate while the remaining corpus grows at returnRate. Rates are fractions (0.08 = 8%).
//
// Each year's expenses are withdrawn before the corpus grows. The result is capped at
// MaxHorizonYears and equals the cap whenever annualExpenses is not positive.
func DepletionYears(netWorth, annualExpenses, returnRate, inflationRate decimal.Decimal) int {
	if !annualExpenses.IsPositive() {
		return MaxHorizonYears
	}

	years := 0
	corpus := netWorth
	expense := annualExpenses
	growth := one.Add(returnRate)
	inflation := one.Add(inflationRate)

	for corpus.IsPositive() && years < MaxHorizonYears {
		corpus = corpus.Sub(expense)
		if !corpus.IsPositive() {
			break
		}
		corpus = corpus.Mul(growth)
		expense = expense.Mul(inflation)
		years++
	}
	return years
}
