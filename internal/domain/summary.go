package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentMix is the current split of investable assets in percent
type InvestmentMix struct {
	Equity decimal.Decimal `json:"equity"`
	Debt   decimal.Decimal `json:"debt"`
	Liquid decimal.Decimal `json:"liquid"`
}

// PassiveIncome breaks monthly passive income down by source
type PassiveIncome struct {
	Rental   decimal.Decimal `json:"rental"`
	Dividend decimal.Decimal `json:"dividend"`
	Interest decimal.Decimal `json:"interest"`
	Other    decimal.Decimal `json:"other"`
	Custom   decimal.Decimal `json:"custom"`
}

// Total sums every source
func (p PassiveIncome) Total() decimal.Decimal {
	return p.Rental.Add(p.Dividend).Add(p.Interest).Add(p.Other).Add(p.Custom)
}

// ProjectionRow is one year of the accumulation projection
type ProjectionRow struct {
	Year           int             `json:"year"`
	Age            int             `json:"age"`
	AnnualExpenses decimal.Decimal `json:"annual_expenses"`
	RequiredCorpus decimal.Decimal `json:"required_corpus"`
	ExpectedCorpus decimal.Decimal `json:"expected_corpus"`
	FFScorePct     decimal.Decimal `json:"ff_score_pct"`
}

// HealthScore holds the weighted financial health result. Every sub-score is in [0,100].
type HealthScore struct {
	SavingsRateScore   decimal.Decimal `json:"savings_rate_score"`
	DebtScore          decimal.Decimal `json:"debt_score"`
	InvestmentMixScore decimal.Decimal `json:"investment_mix_score"`
	InsuranceScore     decimal.Decimal `json:"insurance_score"`
	EmergencyFundScore decimal.Decimal `json:"emergency_fund_score"`
	Overall            decimal.Decimal `json:"overall"`
	Status             string          `json:"status"`
}

// GoalStatus reports progress on one goal
type GoalStatus struct {
	GoalID                string          `json:"goal_id"`
	Name                  string          `json:"name"`
	ProgressPct           decimal.Decimal `json:"progress_pct"`
	YearsRemaining        int             `json:"years_remaining"`
	RequiredMonthlySaving decimal.Decimal `json:"required_monthly_saving"`
}

// DerivedSummary is recomputed from the ledgers and never edited by hand.
//
// Two financial freedom metrics are reported side by side and must not be mixed:
// the depletion model counts how many years net worth covers inflating expenses,
// the accumulation model measures the corpus against the corpus required to retire.
type DerivedSummary struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetWorth         decimal.Decimal `json:"net_worth"`

	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	AnnualExpenses  decimal.Decimal `json:"annual_expenses"`
	MonthlySavings  decimal.Decimal `json:"monthly_savings"`
	SavingsRate     decimal.Decimal `json:"savings_rate"`
	DebtRatio       decimal.Decimal `json:"debt_ratio"`

	PassiveIncome       PassiveIncome   `json:"passive_income"`
	PlannedRentalIncome decimal.Decimal `json:"planned_rental_income"`
	InvestmentMix       InvestmentMix   `json:"investment_mix"`
	LiquidAssets        decimal.Decimal `json:"liquid_assets"`

	// Depletion model
	FFDepletionYears  int    `json:"ff_depletion_years"`
	FFDepletionStatus string `json:"ff_depletion_status"`

	// Accumulation model. FFYearsToFreedom is nil when freedom is unreachable within the horizon.
	RequiredCorpus       decimal.Decimal `json:"required_corpus"`
	FFScorePct           decimal.Decimal `json:"ff_score_pct"`
	FFAccumulationStatus string          `json:"ff_accumulation_status"`
	FFYearsToFreedom     *int            `json:"ff_years_to_freedom"`
	FreedomAge           *int            `json:"freedom_age"`
	Projection           []ProjectionRow `json:"projection"`

	Risk   RiskProfile  `json:"risk"`
	Health HealthScore  `json:"health"`
	Goals  []GoalStatus `json:"goals"`

	ComputedAt time.Time `json:"computed_at"`
}

// IsFreedomReachable reports whether the accumulation model converged within the horizon
func (s *DerivedSummary) IsFreedomReachable() bool {
	return s != nil && s.FFYearsToFreedom != nil
}
