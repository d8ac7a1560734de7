package transform

import (
	"fmt"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	maxReturnPct    = decimal.NewFromInt(50)
	maxInflationPct = decimal.NewFromInt(30)
	maxGrowthPct    = decimal.NewFromInt(50)
)

// AdjustReturn shifts the expected annual return by Delta percentage points.
type AdjustReturn struct {
	Delta decimal.Decimal // e.g. -2 for two points lower
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Shift expected return by %s points", signed(ar.Delta))
}

func (ar *AdjustReturn) Validate(base *domain.AppState) error {
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	return checkRange(ar.Name(), "expected return", base.Assumptions.ExpectedReturnPct.Add(ar.Delta), maxReturnPct)
}

func (ar *AdjustReturn) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	modified.Assumptions.ExpectedReturnPct = modified.Assumptions.ExpectedReturnPct.Add(ar.Delta)
	return modified, nil
}

// AdjustInflation shifts the expense inflation assumption by Delta percentage points.
type AdjustInflation struct {
	Delta decimal.Decimal
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Shift inflation by %s points", signed(ai.Delta))
}

func (ai *AdjustInflation) Validate(base *domain.AppState) error {
	if err := requireBase(ai.Name(), base); err != nil {
		return err
	}
	return checkRange(ai.Name(), "inflation", base.Assumptions.InflationPct.Add(ai.Delta), maxInflationPct)
}

func (ai *AdjustInflation) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	modified.Assumptions.InflationPct = modified.Assumptions.InflationPct.Add(ai.Delta)
	return modified, nil
}

// AdjustSavingsGrowth shifts the yearly growth of contributions by Delta percentage points.
type AdjustSavingsGrowth struct {
	Delta decimal.Decimal
}

func (as *AdjustSavingsGrowth) Name() string {
	return "adjust_savings_growth"
}

func (as *AdjustSavingsGrowth) Description() string {
	return fmt.Sprintf("Shift savings growth by %s points", signed(as.Delta))
}

func (as *AdjustSavingsGrowth) Validate(base *domain.AppState) error {
	if err := requireBase(as.Name(), base); err != nil {
		return err
	}
	return checkRange(as.Name(), "savings growth", base.Assumptions.SavingsGrowthPct.Add(as.Delta), maxGrowthPct)
}

func (as *AdjustSavingsGrowth) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	modified.Assumptions.SavingsGrowthPct = modified.Assumptions.SavingsGrowthPct.Add(as.Delta)
	return modified, nil
}

// SetLifeExpectancy replaces the life expectancy assumption.
type SetLifeExpectancy struct {
	Age int
}

func (sl *SetLifeExpectancy) Name() string {
	return "set_life_expectancy"
}

func (sl *SetLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan for a life expectancy of %d", sl.Age)
}

func (sl *SetLifeExpectancy) Validate(base *domain.AppState) error {
	if err := requireBase(sl.Name(), base); err != nil {
		return err
	}
	if sl.Age < 40 || sl.Age > 120 {
		return NewTransformError(sl.Name(), "validate", fmt.Sprintf("life expectancy must be between 40 and 120, got %d", sl.Age), nil)
	}
	return nil
}

func (sl *SetLifeExpectancy) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	modified.Assumptions.LifeExpectancy = sl.Age
	return modified, nil
}

func checkRange(name, what string, v, max decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(max) {
		return NewTransformError(name, "validate", fmt.Sprintf("%s must be between 0 and %s, got %s", what, max.String(), v.String()), nil)
	}
	return nil
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.String()
	}
	return "+" + d.String()
}
