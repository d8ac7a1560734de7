package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// solverState holds 1M of equity against 50K a month of spending: 10M is required at 12/6
func solverState(monthlyIncome int64) *domain.AppState {
	s := domain.NewAppState()
	s.Assets.Category(domain.Equity).Named["index_funds"] = domain.MoneyRecord{Value: decimal.NewFromInt(1000000)}
	s.Income.Regular = decimal.NewFromInt(monthlyIncome)
	s.Expenses.MonthlyRecurring.Named["living"] = decimal.NewFromInt(50000)
	return s
}

func yearsToFreedomWith(t *testing.T, state *domain.AppState, monthly decimal.Decimal) *int {
	t.Helper()
	s := state.Clone()
	s.Assumptions.MonthlySavings = &monthly
	summary, err := calculation.NewCalculationEngine().Recompute(s, calculation.ParamsFromAssumptions(s.Assumptions, asOf))
	require.NoError(t, err)
	return summary.FFYearsToFreedom
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options != options {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver_NilEngine(t *testing.T) {
	solver := NewDefaultSolver(nil)

	if solver.CalcEngine == nil {
		t.Fatal("Expected a calculation engine to be created")
	}
	if solver.Options.MaxIterations != DefaultSolverOptions().MaxIterations {
		t.Error("Expected default options to be applied")
	}
}

func TestSolver_SolveSavings(t *testing.T) {
	solver := NewDefaultSolver(nil)
	state := solverState(0)

	result, err := solver.Solve(context.Background(), SolveRequest{
		Base:        state,
		Target:      SolveSavings,
		TargetYears: 10,
		AsOf:        asOf,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Greater(t, result.Iterations, 0)
	assert.True(t, result.Value.IsPositive())
	assert.True(t, result.Value.Equal(result.Value.Floor()), "answer is a whole amount")
	assert.True(t, result.CurrentValue.IsZero())
	assert.True(t, result.Difference.Equal(result.Value))

	require.NotNil(t, result.YearsToFreedom)
	assert.LessOrEqual(t, *result.YearsToFreedom, 10)

	// the answer is minimal up to the tolerance
	below := yearsToFreedomWith(t, state, result.Value.Sub(decimal.NewFromInt(101)))
	if below != nil {
		assert.Greater(t, *below, 10)
	}

	assert.Nil(t, state.Assumptions.MonthlySavings, "base state must not be modified")
}

func TestSolver_SolveSavings_ShorterHorizonNeedsMore(t *testing.T) {
	solver := NewDefaultSolver(nil)

	ten, err := solver.Solve(context.Background(), SolveRequest{Base: solverState(0), Target: SolveSavings, TargetYears: 10, AsOf: asOf})
	require.NoError(t, err)
	five, err := solver.Solve(context.Background(), SolveRequest{Base: solverState(0), Target: SolveSavings, TargetYears: 5, AsOf: asOf})
	require.NoError(t, err)

	assert.True(t, five.Value.GreaterThan(ten.Value), "five years %s should need more than ten years %s", five.Value, ten.Value)
}

func TestSolver_SolveSavings_AlreadyFree(t *testing.T) {
	solver := NewDefaultSolver(nil)
	state := solverState(0)
	state.Assets.Category(domain.Equity).Named["index_funds"] = domain.MoneyRecord{Value: decimal.NewFromInt(20000000)}

	result, err := solver.Solve(context.Background(), SolveRequest{Base: state, Target: SolveSavings, TargetYears: 1, AsOf: asOf})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Iterations)
	assert.True(t, result.Value.IsZero())
	require.NotNil(t, result.YearsToFreedom)
	assert.Equal(t, 0, *result.YearsToFreedom)
}

func TestSolver_SolveSavings_MaxIterations(t *testing.T) {
	solver := NewDefaultSolver(nil)
	state := solverState(0)

	result, err := solver.Solve(context.Background(), SolveRequest{
		Base:          state,
		Target:        SolveSavings,
		TargetYears:   10,
		MaxIterations: 2,
		AsOf:          asOf,
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Iterations)
	assert.Contains(t, result.ConvergenceInfo, "Max iterations (2)")
	require.NotNil(t, result.YearsToFreedom, "a partial answer is still feasible")
	assert.LessOrEqual(t, *result.YearsToFreedom, 10)
}

func TestSolver_SolveExpenses(t *testing.T) {
	solver := NewDefaultSolver(nil)
	state := solverState(80000)

	result, err := solver.Solve(context.Background(), SolveRequest{
		Base:        state,
		Target:      SolveExpenses,
		TargetYears: 25,
		AsOf:        asOf,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.CurrentValue.Equal(decimal.NewFromInt(600000)))
	assert.GreaterOrEqual(t, result.DepletionYears, 25)

	ret := decimal.NewFromFloat(0.12)
	inflation := decimal.NewFromFloat(0.06)
	netWorth := decimal.NewFromInt(1000000)
	assert.GreaterOrEqual(t, calculation.DepletionYears(netWorth, result.Value, ret, inflation), 25)
	assert.Less(t, calculation.DepletionYears(netWorth, result.Value.Add(decimal.NewFromInt(101)), ret, inflation), 25,
		"the answer is maximal up to the tolerance")

	assert.True(t, result.Difference.IsNegative(), "600K a year does not last 25 years on 1M")
}

func TestSolver_SolveExpenses_NoNetWorth(t *testing.T) {
	solver := NewDefaultSolver(nil)
	state := domain.NewAppState()
	state.Expenses.MonthlyRecurring.Named["living"] = decimal.NewFromInt(10000)

	_, err := solver.Solve(context.Background(), SolveRequest{Base: state, Target: SolveExpenses, TargetYears: 10, AsOf: asOf})

	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr), "expected BreakEvenError, got %v", err)
	assert.Equal(t, "solve_expenses", beErr.Operation)
}

func TestSolver_Solve_InvalidRequest(t *testing.T) {
	solver := NewDefaultSolver(nil)

	tests := []struct {
		name string
		req  SolveRequest
	}{
		{"nil base", SolveRequest{Target: SolveSavings, TargetYears: 10}},
		{"unsupported target", SolveRequest{Base: solverState(0), Target: "retirement_date", TargetYears: 10}},
		{"savings horizon zero", SolveRequest{Base: solverState(0), Target: SolveSavings}},
		{"savings horizon at cap", SolveRequest{Base: solverState(0), Target: SolveSavings, TargetYears: 100}},
		{"expenses horizon beyond cap", SolveRequest{Base: solverState(0), Target: SolveExpenses, TargetYears: 101}},
		{"negative tolerance", SolveRequest{Base: solverState(0), Target: SolveSavings, TargetYears: 10, Tolerance: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Solve(context.Background(), tt.req)
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestSolver_Solve_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, target := range []SolveTarget{SolveSavings, SolveExpenses} {
		_, err := solver.Solve(ctx, SolveRequest{Base: solverState(0), Target: target, TargetYears: 10, AsOf: asOf})
		assert.ErrorIs(t, err, context.Canceled, "target %s", target)
	}
}

func TestSolver_SolveAll(t *testing.T) {
	solver := NewDefaultSolver(nil)

	multi, err := solver.SolveAll(context.Background(), solverState(80000), 15, asOf)
	require.NoError(t, err)

	require.NotNil(t, multi.Savings)
	require.NotNil(t, multi.Expenses)
	assert.Equal(t, 15, multi.TargetYears)
	require.Len(t, multi.Recommendations, 2)
	assert.True(t, strings.HasPrefix(multi.Recommendations[1], "Spend Less:"), multi.Recommendations[1])
}

func TestSolver_SolveAll_SkipsUnsolvable(t *testing.T) {
	solver := NewDefaultSolver(nil)
	state := domain.NewAppState()
	state.Income.Regular = decimal.NewFromInt(50000)
	state.Expenses.MonthlyRecurring.Named["living"] = decimal.NewFromInt(20000)

	multi, err := solver.SolveAll(context.Background(), state, 20, asOf)
	require.NoError(t, err)

	assert.NotNil(t, multi.Savings)
	assert.Nil(t, multi.Expenses, "no net worth to draw down")
	assert.Len(t, multi.Recommendations, 1)
}

func TestSolver_SolveAll_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.SolveAll(ctx, solverState(0), 10, asOf)
	assert.ErrorIs(t, err, context.Canceled)
}
