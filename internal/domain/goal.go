package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target with a timeline
type Goal struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Type          string          `yaml:"type" json:"type"`
	TargetAmount  decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	TimelineYears int             `yaml:"timeline_years" json:"timeline_years"`
	Priority      string          `yaml:"priority" json:"priority"`
	StartDate     time.Time       `yaml:"start_date" json:"start_date"`
}

// Progress returns the share of the timeline that has elapsed at now, in percent, clamped to [0,100].
// It does not look at how much has actually been saved.
func (g Goal) Progress(now time.Time) decimal.Decimal {
	if g.TimelineYears <= 0 || g.StartDate.IsZero() {
		return decimal.Zero
	}
	elapsed := now.Sub(g.StartDate)
	if elapsed <= 0 {
		return decimal.Zero
	}
	total := g.StartDate.AddDate(g.TimelineYears, 0, 0).Sub(g.StartDate)
	pct := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(total))).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}

// YearsRemaining returns whole years left until the goal date, never negative
func (g Goal) YearsRemaining(now time.Time) int {
	if g.StartDate.IsZero() {
		return g.TimelineYears
	}
	end := g.StartDate.AddDate(g.TimelineYears, 0, 0)
	years := 0
	for now.AddDate(years+1, 0, 0).Before(end) || now.AddDate(years+1, 0, 0).Equal(end) {
		years++
	}
	return years
}

// RequiredMonthlySaving is the level monthly contribution that grows to TargetAmount over
// the remaining timeline at the given annual return (a fraction, e.g. 0.12).
func (g Goal) RequiredMonthlySaving(annualReturn decimal.Decimal, now time.Time) decimal.Decimal {
	target := NonNegative(g.TargetAmount)
	months := int64(g.YearsRemaining(now)) * 12
	if months <= 0 {
		return target
	}
	n := decimal.NewFromInt(months)
	r := NonNegative(annualReturn).Div(decimal.NewFromInt(12))
	if r.IsZero() {
		return target.Div(n).Round(2)
	}
	growth := decimal.NewFromInt(1).Add(r).Pow(n).Sub(decimal.NewFromInt(1))
	return target.Mul(r).Div(growth).Round(2)
}
