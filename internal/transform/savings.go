package transform

import (
	"fmt"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	maxSavingsFactor = decimal.NewFromInt(10)
	maxExpenseFactor = decimal.NewFromInt(5)
)

// CurrentMonthlySavings returns the contribution the engine would use: the stored override,
// or monthly income minus monthly expenses floored at zero.
func CurrentMonthlySavings(s *domain.AppState) decimal.Decimal {
	if s.Assumptions.MonthlySavings != nil {
		return domain.NonNegative(*s.Assumptions.MonthlySavings)
	}
	return domain.NonNegative(calculation.MonthlyIncome(s).Sub(calculation.MonthlyExpenses(s.Expenses)))
}

// SetMonthlySavings overrides the monthly contribution.
type SetMonthlySavings struct {
	Amount decimal.Decimal
}

func (sm *SetMonthlySavings) Name() string {
	return "set_savings"
}

func (sm *SetMonthlySavings) Description() string {
	return fmt.Sprintf("Save %s per month", sm.Amount.StringFixed(0))
}

func (sm *SetMonthlySavings) Validate(base *domain.AppState) error {
	if err := requireBase(sm.Name(), base); err != nil {
		return err
	}
	if sm.Amount.IsNegative() {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("monthly savings cannot be negative, got %s", sm.Amount.String()), nil)
	}
	return nil
}

func (sm *SetMonthlySavings) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	amount := sm.Amount
	modified.Assumptions.MonthlySavings = &amount
	return modified, nil
}

// ScaleSavings multiplies the current monthly contribution by Factor and stores it as the override.
type ScaleSavings struct {
	Factor decimal.Decimal // 1.10 saves 10% more
}

func (ss *ScaleSavings) Name() string {
	return "scale_savings"
}

func (ss *ScaleSavings) Description() string {
	return fmt.Sprintf("Scale monthly savings by %sx", ss.Factor.String())
}

func (ss *ScaleSavings) Validate(base *domain.AppState) error {
	if err := requireBase(ss.Name(), base); err != nil {
		return err
	}
	if !ss.Factor.IsPositive() || ss.Factor.GreaterThan(maxSavingsFactor) {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("factor must be in (0, %s], got %s", maxSavingsFactor, ss.Factor), nil)
	}
	return nil
}

func (ss *ScaleSavings) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	scaled := CurrentMonthlySavings(base).Mul(ss.Factor).Round(2)
	modified.Assumptions.MonthlySavings = &scaled
	return modified, nil
}

// ScaleExpenses multiplies every recurring expense by Factor. Big one-off expenses are left alone.
// A stored savings override is kept as is.
type ScaleExpenses struct {
	Factor decimal.Decimal // 0.75 cuts spending by a quarter
}

func (se *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (se *ScaleExpenses) Description() string {
	return fmt.Sprintf("Scale recurring expenses by %sx", se.Factor.String())
}

func (se *ScaleExpenses) Validate(base *domain.AppState) error {
	if err := requireBase(se.Name(), base); err != nil {
		return err
	}
	if !se.Factor.IsPositive() || se.Factor.GreaterThan(maxExpenseFactor) {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("factor must be in (0, %s], got %s", maxExpenseFactor, se.Factor), nil)
	}
	return nil
}

func (se *ScaleExpenses) Apply(base *domain.AppState) (*domain.AppState, error) {
	modified := base.Clone()
	modified.Expenses.MonthlyRecurring.Scale(se.Factor)
	modified.Expenses.AnnualRecurring.Scale(se.Factor)
	return modified, nil
}
