package calculation

import (
	"time"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// Health score weights
var (
	weightSavingsRate   = decimal.NewFromFloat(0.25)
	weightDebt          = decimal.NewFromFloat(0.25)
	weightInvestmentMix = decimal.NewFromFloat(0.20)
	weightInsurance     = decimal.NewFromFloat(0.15)
	weightEmergencyFund = decimal.NewFromFloat(0.15)

	weightLifeCover    = decimal.NewFromFloat(0.6)
	weightMedicalCover = decimal.NewFromFloat(0.4)

	lifeCoverMultiple       = decimal.NewFromInt(10) // x annual income
	medicalCoverMultiple    = decimal.NewFromInt(5)  // x monthly income
	emergencyMonthsRequired = decimal.NewFromInt(6)  // x monthly expenses
)

// HealthInput holds the figures the health scorer needs
type HealthInput struct {
	SavingsRate     decimal.Decimal
	DebtRatio       decimal.Decimal
	CurrentMix      domain.InvestmentMix
	Recommended     domain.Allocation
	LifeCoverage    decimal.Decimal
	MedicalCoverage decimal.Decimal
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	LiquidAssets    decimal.Decimal
}

// InvestmentMixScore is max(0, 100 - sum of absolute deviations) over equity, debt and liquid.
// The recommended liquid share is gold plus cash.
func InvestmentMixScore(current domain.InvestmentMix, recommended domain.Allocation) decimal.Decimal {
	deviation := current.Equity.Sub(recommended.Equity).Abs().
		Add(current.Debt.Sub(recommended.Debt).Abs()).
		Add(current.Liquid.Sub(recommended.Liquid()).Abs())
	return clampPct(hundred.Sub(deviation))
}

// coverageScore is min(100, have / need * 100). With nothing needed any coverage scores 100 and none scores 0.
func coverageScore(have, need decimal.Decimal) decimal.Decimal {
	if !need.IsPositive() {
		if have.IsPositive() {
			return hundred
		}
		return zero
	}
	return clampPct(have.Div(need).Mul(hundred))
}

// InsuranceCoverageScore weights life cover against 10x annual income and medical cover against 5x monthly income
func InsuranceCoverageScore(lifeCoverage, medicalCoverage, monthlyIncome decimal.Decimal) decimal.Decimal {
	annualIncome := monthlyIncome.Mul(twelve)
	life := coverageScore(lifeCoverage, annualIncome.Mul(lifeCoverMultiple))
	medical := coverageScore(medicalCoverage, monthlyIncome.Mul(medicalCoverMultiple))
	return clampPct(life.Mul(weightLifeCover).Add(medical.Mul(weightMedicalCover)))
}

// EmergencyFundScore compares liquid assets against six months of expenses
func EmergencyFundScore(liquidAssets, monthlyExpenses decimal.Decimal) decimal.Decimal {
	return coverageScore(liquidAssets, monthlyExpenses.Mul(emergencyMonthsRequired))
}

// ScoreHealth computes every sub-score, clamps each to [0,100] and combines them
func ScoreHealth(in HealthInput) domain.HealthScore {
	h := domain.HealthScore{
		SavingsRateScore:   clampPct(in.SavingsRate),
		DebtScore:          clampPct(hundred.Sub(in.DebtRatio)),
		InvestmentMixScore: InvestmentMixScore(in.CurrentMix, in.Recommended),
		InsuranceScore:     InsuranceCoverageScore(in.LifeCoverage, in.MedicalCoverage, in.MonthlyIncome),
		EmergencyFundScore: EmergencyFundScore(in.LiquidAssets, in.MonthlyExpenses),
	}
	overall := h.SavingsRateScore.Mul(weightSavingsRate).
		Add(h.DebtScore.Mul(weightDebt)).
		Add(h.InvestmentMixScore.Mul(weightInvestmentMix)).
		Add(h.InsuranceScore.Mul(weightInsurance)).
		Add(h.EmergencyFundScore.Mul(weightEmergencyFund))

	h.SavingsRateScore = h.SavingsRateScore.Round(2)
	h.DebtScore = h.DebtScore.Round(2)
	h.InvestmentMixScore = h.InvestmentMixScore.Round(2)
	h.InsuranceScore = h.InsuranceScore.Round(2)
	h.EmergencyFundScore = h.EmergencyFundScore.Round(2)
	h.Overall = overall.Round(2)
	h.Status = ClassifyHealth(h.Overall)
	return h
}

// TotalCoverage sums the sum assured of policies in force at asOf
func TotalCoverage(policies []domain.InsurancePolicy, asOf time.Time) decimal.Decimal {
	total := zero
	for _, p := range policies {
		if p.IsActive(asOf) {
			total = total.Add(domain.NonNegative(p.SumAssured))
		}
	}
	return total
}
