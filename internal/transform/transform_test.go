package transform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// Helper function to create a basic test state: 100k income, 40k rent, 10k groceries
func createTestState() *domain.AppState {
	s := domain.NewAppState()
	s.Personal.Name = "Test Household"
	s.Income.Regular = decimal.NewFromInt(100000)
	s.Expenses.MonthlyRecurring.Named["rent"] = decimal.NewFromInt(40000)
	s.Expenses.MonthlyRecurring.Custom = []domain.NamedAmount{domain.NewNamedAmount("groceries", decimal.NewFromInt(10000))}
	s.Expenses.AnnualRecurring.Named["travel"] = decimal.NewFromInt(120000)
	s.Assets.Category(domain.Equity).Named["index_funds"] = domain.MoneyRecord{Value: decimal.NewFromInt(2000000)}
	return s
}

func TestApplyTransforms_NilState(t *testing.T) {
	transforms := []StateTransform{
		&AdjustReturn{Delta: decimal.NewFromInt(1)},
	}

	_, err := ApplyTransforms(nil, transforms)
	if err == nil {
		t.Error("Expected error for nil state, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestState()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}

	// Should return a copy, not the same instance
	if result == base {
		t.Error("Expected a copy, got same instance")
	}

	if result.Personal.Name != base.Personal.Name {
		t.Errorf("Expected name %s, got %s", base.Personal.Name, result.Personal.Name)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestState()
	transforms := []StateTransform{
		&AdjustReturn{Delta: decimal.NewFromInt(1)},
		nil,
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestState()
	transforms := []StateTransform{
		&AdjustReturn{Delta: decimal.NewFromInt(-20)}, // 12 - 20 is negative
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected a TransformError in the chain, got %T", err)
	}
	if te.TransformName != "adjust_return" {
		t.Errorf("Expected adjust_return, got %s", te.TransformName)
	}
}

func TestApplyTransforms_BaseUntouched(t *testing.T) {
	base := createTestState()
	transforms := []StateTransform{
		&AdjustReturn{Delta: decimal.NewFromInt(-2)},
		&ScaleExpenses{Factor: decimal.NewFromFloat(0.5)},
		&SetMonthlySavings{Amount: decimal.NewFromInt(1000)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !base.Assumptions.ExpectedReturnPct.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Base return changed to %s", base.Assumptions.ExpectedReturnPct)
	}
	if !base.Expenses.MonthlyRecurring.Named["rent"].Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Base rent changed to %s", base.Expenses.MonthlyRecurring.Named["rent"])
	}
	if base.Assumptions.MonthlySavings != nil {
		t.Error("Base savings override should stay unset")
	}

	if !result.Assumptions.ExpectedReturnPct.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected return 10, got %s", result.Assumptions.ExpectedReturnPct)
	}
	if !result.Expenses.MonthlyRecurring.Named["rent"].Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected rent 20000, got %s", result.Expenses.MonthlyRecurring.Named["rent"])
	}
}

func TestApplyTransforms_TransformChaining(t *testing.T) {
	base := createTestState()
	transforms := []StateTransform{
		&AdjustInflation{Delta: decimal.NewFromInt(1)},
		&AdjustInflation{Delta: decimal.NewFromInt(2)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// 6 + 1 + 2
	if !result.Assumptions.InflationPct.Equal(decimal.NewFromInt(9)) {
		t.Errorf("Expected inflation 9, got %s", result.Assumptions.InflationPct)
	}
}

func TestApplyTransforms_DropsStaleSummary(t *testing.T) {
	base := createTestState()
	base.Summary = &domain.DerivedSummary{NetWorth: decimal.NewFromInt(1)}

	result, err := ApplyTransforms(base, []StateTransform{&AdjustReturn{Delta: decimal.NewFromInt(1)}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Summary != nil {
		t.Error("Expected the copied summary to be cleared")
	}
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("test_transform", "apply", "test reason", nil)

	if err == nil {
		t.Fatal("Expected non-nil error")
	}

	expectedMsg := "transform test_transform (apply): test reason"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestTransformError_WithWrappedError(t *testing.T) {
	innerErr := fmt.Errorf("inner error")
	err := NewTransformError("test_transform", "validate", "validation failed", innerErr)

	expectedMsg := "transform test_transform (validate): validation failed: inner error"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
	if !errors.Is(err, innerErr) {
		t.Error("Expected the inner error to unwrap")
	}
}
