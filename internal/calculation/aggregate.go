package calculation

import (
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// TotalOf sums every named and custom record value in a category. A nil category totals zero.
func TotalOf(c *domain.Category) decimal.Decimal {
	total := zero
	for _, r := range c.Records() {
		total = total.Add(domain.NonNegative(r.Value))
	}
	return total
}

// WeightedYieldIncome returns the annual income a category yields: sum of value * yieldPct / 100
func WeightedYieldIncome(c *domain.Category) decimal.Decimal {
	total := zero
	for _, r := range c.Records() {
		total = total.Add(r.AnnualYield())
	}
	return total
}

// YieldIncomeByCategory returns annual yield income per category
func YieldIncomeByCategory(l domain.AssetLedger) map[domain.AssetCategory]decimal.Decimal {
	out := make(map[domain.AssetCategory]decimal.Decimal, len(l))
	for name, c := range l {
		out[name] = WeightedYieldIncome(c)
	}
	return out
}

// TotalAssets sums every asset category
func TotalAssets(l domain.AssetLedger) decimal.Decimal {
	total := zero
	for _, c := range l {
		total = total.Add(TotalOf(c))
	}
	return total
}

// TotalLiabilities sums the outstanding amount of every liability
func TotalLiabilities(l domain.LiabilityLedger) decimal.Decimal {
	total := zero
	for _, e := range l.Entries() {
		total = total.Add(domain.NonNegative(e.Amount))
	}
	return total
}

// NetWorth is total assets minus total liabilities. It may be negative.
func NetWorth(assets domain.AssetLedger, liabilities domain.LiabilityLedger) decimal.Decimal {
	return TotalAssets(assets).Sub(TotalLiabilities(liabilities))
}

// MonthlyPassiveIncome derives monthly passive income from asset yields plus custom entries.
// Real estate yields rent, equity dividends, fixed income and cash interest.
func MonthlyPassiveIncome(assets domain.AssetLedger, income domain.IncomeLedger) domain.PassiveIncome {
	var p domain.PassiveIncome
	p.Rental, p.Dividend, p.Interest, p.Other, p.Custom = zero, zero, zero, zero, zero
	for name, annual := range YieldIncomeByCategory(assets) {
		monthly := annual.Div(twelve)
		switch name {
		case domain.RealEstate:
			p.Rental = p.Rental.Add(monthly)
		case domain.Equity:
			p.Dividend = p.Dividend.Add(monthly)
		case domain.FixedIncome, domain.Cash:
			p.Interest = p.Interest.Add(monthly)
		default:
			p.Other = p.Other.Add(monthly)
		}
	}
	for _, c := range income.CustomPassive {
		p.Custom = p.Custom.Add(domain.NonNegative(c.Amount))
	}
	return p
}

// MonthlyIncome is regular plus passive plus additional income normalized to a month
func MonthlyIncome(state *domain.AppState) decimal.Decimal {
	total := domain.NonNegative(state.Income.Regular)
	total = total.Add(MonthlyPassiveIncome(state.Assets, state.Income).Total())
	for _, a := range state.Income.Additional {
		total = total.Add(a.MonthlyAmount())
	}
	return total
}

// MonthlyExpenses is monthly recurring plus annual recurring / 12.
// Big expenses are excluded; callers add AmortizedBigExpenses explicitly.
func MonthlyExpenses(e domain.ExpenseLedger) decimal.Decimal {
	return e.MonthlyRecurring.Total().Add(e.AnnualRecurring.Total().Div(twelve))
}

// AmortizedBigExpenses spreads every big expense evenly over the given number of years, per month
func AmortizedBigExpenses(e domain.ExpenseLedger, years int) decimal.Decimal {
	if years <= 0 {
		return zero
	}
	total := zero
	for _, b := range e.BigExpenses {
		total = total.Add(domain.NonNegative(b.Amount))
	}
	return total.Div(decimal.NewFromInt(int64(years) * 12))
}

// PlannedRentalIncome is the monthly rent property-like big expenses would earn
func PlannedRentalIncome(e domain.ExpenseLedger) decimal.Decimal {
	total := zero
	for _, b := range e.BigExpenses {
		total = total.Add(b.MonthlyRentalIncome())
	}
	return total
}

// SavingsRate is (income - expenses) / income * 100, or 0 when income is not positive
func SavingsRate(monthlyIncome, monthlyExpenses decimal.Decimal) decimal.Decimal {
	if !monthlyIncome.IsPositive() {
		return zero
	}
	return monthlyIncome.Sub(monthlyExpenses).Div(monthlyIncome).Mul(hundred)
}

// DebtRatio is liabilities / assets * 100, or 100 when assets are not positive
func DebtRatio(totalLiabilities, totalAssets decimal.Decimal) decimal.Decimal {
	if !totalAssets.IsPositive() {
		return hundred
	}
	return totalLiabilities.Div(totalAssets).Mul(hundred)
}

// LiquidAssets is the cash category total, used for the emergency fund
func LiquidAssets(l domain.AssetLedger) decimal.Decimal {
	return TotalOf(l[domain.Cash])
}

// CurrentInvestmentMix splits investable assets into equity, debt (fixed income) and
// liquid (cash and commodities). Real estate is not investable for this purpose.
func CurrentInvestmentMix(l domain.AssetLedger) domain.InvestmentMix {
	equity := TotalOf(l[domain.Equity])
	debt := TotalOf(l[domain.FixedIncome])
	liquid := TotalOf(l[domain.Cash]).Add(TotalOf(l[domain.Commodities]))
	total := equity.Add(debt).Add(liquid)
	if !total.IsPositive() {
		return domain.InvestmentMix{Equity: zero, Debt: zero, Liquid: zero}
	}
	return domain.InvestmentMix{
		Equity: equity.Div(total).Mul(hundred),
		Debt:   debt.Div(total).Mul(hundred),
		Liquid: liquid.Div(total).Mul(hundred),
	}
}

func clampPct(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
