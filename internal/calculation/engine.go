package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// Params are the scalar inputs of a recompute. Percentages are in percent units.
// MonthlySavings, when set, replaces income minus expenses as the contribution.
type Params struct {
	ExpectedReturnPct decimal.Decimal
	InflationPct      decimal.Decimal
	SavingsGrowthPct  decimal.Decimal
	LifeExpectancy    int
	MonthlySavings    *decimal.Decimal
	AsOf              time.Time
}

// ParamsFromAssumptions builds params from stored assumptions
func ParamsFromAssumptions(a domain.Assumptions, asOf time.Time) Params {
	return Params{
		ExpectedReturnPct: a.ExpectedReturnPct,
		InflationPct:      a.InflationPct,
		SavingsGrowthPct:  a.SavingsGrowthPct,
		LifeExpectancy:    a.LifeExpectancy,
		MonthlySavings:    a.MonthlySavings,
		AsOf:              asOf,
	}
}

// Rates converts the percentages to clamped fractions: return, inflation, savings growth
func (p Params) Rates() (ret, inflation, savingsGrowth decimal.Decimal) {
	return domain.NonNegative(p.ExpectedReturnPct).Div(hundred),
		domain.NonNegative(p.InflationPct).Div(hundred),
		domain.NonNegative(p.SavingsGrowthPct).Div(hundred)
}

// CalculationEngine recomputes the derived summary from a state snapshot
type CalculationEngine struct {
	Logger Logger
	Debug  bool
	Now    func() time.Time
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger sets the logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now()
	}
	return ce.Now()
}

// RecomputeState recomputes using the assumptions stored in the state
func (ce *CalculationEngine) RecomputeState(state *domain.AppState) (*domain.DerivedSummary, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	s := state.Clone()
	s.Normalize()
	return ce.Recompute(s, ParamsFromAssumptions(s.Assumptions, ce.now()))
}

// Recompute derives a fresh summary from the state and params. The state is not modified.
func (ce *CalculationEngine) Recompute(state *domain.AppState, params Params) (*domain.DerivedSummary, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	log := ce.logger()

	s := state.Clone()
	s.Normalize()

	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = ce.now()
	}
	returnRate, inflationRate, savingsGrowth := params.Rates()

	sum := &domain.DerivedSummary{ComputedAt: asOf}

	sum.TotalAssets = TotalAssets(s.Assets)
	sum.TotalLiabilities = TotalLiabilities(s.Liabilities)
	sum.NetWorth = sum.TotalAssets.Sub(sum.TotalLiabilities)

	sum.PassiveIncome = MonthlyPassiveIncome(s.Assets, s.Income)
	sum.PlannedRentalIncome = PlannedRentalIncome(s.Expenses).Round(2)
	sum.MonthlyIncome = MonthlyIncome(s).Round(2)
	sum.AnnualIncome = sum.MonthlyIncome.Mul(twelve)
	sum.MonthlyExpenses = MonthlyExpenses(s.Expenses).Round(2)
	sum.AnnualExpenses = sum.MonthlyExpenses.Mul(twelve)
	sum.SavingsRate = SavingsRate(sum.MonthlyIncome, sum.MonthlyExpenses).Round(2)
	sum.DebtRatio = DebtRatio(sum.TotalLiabilities, sum.TotalAssets).Round(2)
	sum.InvestmentMix = CurrentInvestmentMix(s.Assets)
	sum.LiquidAssets = LiquidAssets(s.Assets)

	if params.MonthlySavings != nil {
		sum.MonthlySavings = domain.NonNegative(*params.MonthlySavings)
	} else {
		sum.MonthlySavings = domain.NonNegative(sum.MonthlyIncome.Sub(sum.MonthlyExpenses))
	}

	log.Debugf("totals: assets=%s liabilities=%s income=%s expenses=%s",
		sum.TotalAssets.StringFixed(2), sum.TotalLiabilities.StringFixed(2),
		sum.MonthlyIncome.StringFixed(2), sum.MonthlyExpenses.StringFixed(2))

	// Depletion model
	sum.FFDepletionYears = DepletionYears(sum.NetWorth, sum.AnnualExpenses, returnRate, inflationRate)
	sum.FFDepletionStatus = string(ClassifyDepletion(sum.FFDepletionYears))

	// Accumulation model
	corpus := domain.NonNegative(sum.NetWorth)
	annualSavings := sum.MonthlySavings.Mul(twelve)
	sum.RequiredCorpus = RequiredCorpus(sum.AnnualExpenses, returnRate, inflationRate).Round(2)
	sum.FFScorePct = FFScore(corpus, sum.RequiredCorpus)
	sum.FFAccumulationStatus = string(ClassifyAccumulation(sum.FFScorePct))

	age := s.Personal.Age(asOf)
	if years, ok := YearsToFreedom(corpus, sum.RequiredCorpus, annualSavings, returnRate, savingsGrowth); ok {
		y := years
		sum.FFYearsToFreedom = &y
		if age > 0 {
			a := age + years
			sum.FreedomAge = &a
			if params.LifeExpectancy > 0 && a > params.LifeExpectancy {
				log.Warnf("freedom age %d is beyond life expectancy %d", a, params.LifeExpectancy)
			}
		}
	} else {
		log.Infof("financial freedom not reachable within %d years", MaxHorizonYears)
	}

	sum.Projection = Projection(ProjectionInput{
		StartYear:         asOf.Year(),
		StartAge:          age,
		CurrentCorpus:     corpus,
		AnnualExpenses:    sum.AnnualExpenses,
		AnnualSavings:     annualSavings,
		ExpectedReturn:    returnRate,
		InflationRate:     inflationRate,
		SavingsGrowthRate: savingsGrowth,
	})

	sum.Risk = ProfileRisk(s.RiskAnswers)
	sum.Health = ScoreHealth(HealthInput{
		SavingsRate:     sum.SavingsRate,
		DebtRatio:       sum.DebtRatio,
		CurrentMix:      sum.InvestmentMix,
		Recommended:     sum.Risk.Allocation,
		LifeCoverage:    TotalCoverage(s.Insurance.Life, asOf),
		MedicalCoverage: TotalCoverage(s.Insurance.Medical, asOf),
		MonthlyIncome:   sum.MonthlyIncome,
		MonthlyExpenses: sum.MonthlyExpenses,
		LiquidAssets:    sum.LiquidAssets,
	})

	sum.InvestmentMix = domain.InvestmentMix{
		Equity: sum.InvestmentMix.Equity.Round(2),
		Debt:   sum.InvestmentMix.Debt.Round(2),
		Liquid: sum.InvestmentMix.Liquid.Round(2),
	}
	sum.PassiveIncome = roundPassive(sum.PassiveIncome)

	sum.Goals = make([]domain.GoalStatus, 0, len(s.Goals))
	for _, g := range s.Goals {
		sum.Goals = append(sum.Goals, domain.GoalStatus{
			GoalID:                g.ID,
			Name:                  g.Name,
			ProgressPct:           g.Progress(asOf),
			YearsRemaining:        g.YearsRemaining(asOf),
			RequiredMonthlySaving: g.RequiredMonthlySaving(returnRate, asOf),
		})
	}

	if ce.Debug {
		log.Debugf("ff: depletion=%d years (%s), score=%s%% (%s), projection rows=%d",
			sum.FFDepletionYears, sum.FFDepletionStatus, sum.FFScorePct.StringFixed(2),
			sum.FFAccumulationStatus, len(sum.Projection))
	}
	return sum, nil
}

func roundPassive(p domain.PassiveIncome) domain.PassiveIncome {
	return domain.PassiveIncome{
		Rental:   p.Rental.Round(2),
		Dividend: p.Dividend.Round(2),
		Interest: p.Interest.Round(2),
		Other:    p.Other.Round(2),
		Custom:   p.Custom.Round(2),
	}
}
