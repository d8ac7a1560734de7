package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)
)

// Solver finds break-even savings and spending levels by bisection
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the search selected by req.Target
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case SolveSavings:
		return s.solveSavings(ctx, req)
	case SolveExpenses:
		return s.solveExpenses(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported solve target: %s", req.Target),
		}
	}
}

// solveSavings finds the smallest monthly contribution that reaches freedom within TargetYears.
// Saving requiredCorpus/12 a month reaches the corpus after one year, so that is the upper bound.
func (s *Solver) solveSavings(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	base, err := s.recompute(req.Base, req)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_savings", Message: "failed to calculate base state", Cause: err}
	}

	result := &SolveResult{
		Target:       SolveSavings,
		TargetYears:  req.TargetYears,
		CurrentValue: base.MonthlySavings,
		BaseSummary:  base,
	}

	zero, err := s.evaluateSavings(req, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if meetsFreedom(zero, req.TargetYears) {
		s.fillSavings(result, decimal.Zero, zero)
		result.Success = true
		result.ConvergenceInfo = "Target met without any further savings"
		return result, nil
	}

	lo := decimal.Zero
	hi := base.RequiredCorpus.Div(twelve)
	var best *domain.DerivedSummary

	for result.Iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
			result.Success = true
			break
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		summary, err := s.evaluateSavings(req, mid)
		if err != nil {
			return nil, err
		}
		if meetsFreedom(summary, req.TargetYears) {
			hi = mid
			best = summary
		} else {
			lo = mid
		}
	}

	value := hi.Ceil()
	if best == nil || !value.Equal(hi) {
		if best, err = s.evaluateSavings(req, value); err != nil {
			return nil, err
		}
	}
	s.fillSavings(result, value, best)

	if result.Success {
		result.ConvergenceInfo = fmt.Sprintf("Converged within %s after %d iterations", req.Tolerance.StringFixed(0), result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}

// solveExpenses finds the largest annual expense that net worth sustains for TargetYears
func (s *Solver) solveExpenses(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	base, err := s.recompute(req.Base, req)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_expenses", Message: "failed to calculate base state", Cause: err}
	}
	if !base.NetWorth.IsPositive() {
		return nil, &BreakEvenError{
			Operation: "solve_expenses",
			Message:   fmt.Sprintf("net worth must be positive, got %s", base.NetWorth.StringFixed(2)),
		}
	}

	params := calculation.ParamsFromAssumptions(req.Base.Assumptions, req.AsOf)
	returnRate, inflationRate, _ := params.Rates()
	lasts := func(expense decimal.Decimal) int {
		return calculation.DepletionYears(base.NetWorth, expense, returnRate, inflationRate)
	}

	result := &SolveResult{
		Target:       SolveExpenses,
		TargetYears:  req.TargetYears,
		CurrentValue: base.AnnualExpenses,
		BaseSummary:  base,
	}

	// spending the whole net worth in year one always fails
	lo := decimal.Zero
	hi := base.NetWorth

	for result.Iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
			result.Success = true
			break
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		if lasts(mid) >= req.TargetYears {
			lo = mid
		} else {
			hi = mid
		}
	}

	result.Value = lo.Floor()
	result.Difference = result.Value.Sub(result.CurrentValue)
	result.DepletionYears = lasts(result.Value)

	if result.Success {
		result.ConvergenceInfo = fmt.Sprintf("Converged within %s after %d iterations", req.Tolerance.StringFixed(0), result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}

// evaluateSavings recomputes the base state with the monthly contribution overridden
func (s *Solver) evaluateSavings(req SolveRequest, monthly decimal.Decimal) (*domain.DerivedSummary, error) {
	modified, err := transform.ApplyTransforms(req.Base, []transform.StateTransform{
		&transform.SetMonthlySavings{Amount: monthly},
	})
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_savings",
			Message:   "failed to apply savings transform",
			Cause:     err,
		}
	}

	summary, err := s.recompute(modified, req)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_savings",
			Message:   "failed to calculate state",
			Cause:     err,
		}
	}
	return summary, nil
}

func (s *Solver) recompute(state *domain.AppState, req SolveRequest) (*domain.DerivedSummary, error) {
	return s.CalcEngine.Recompute(state, calculation.ParamsFromAssumptions(state.Assumptions, req.AsOf))
}

func (s *Solver) fillSavings(result *SolveResult, value decimal.Decimal, summary *domain.DerivedSummary) {
	result.Value = value
	result.Difference = value.Sub(result.CurrentValue)
	result.DepletionYears = summary.FFDepletionYears
	result.YearsToFreedom = summary.FFYearsToFreedom
}

func meetsFreedom(summary *domain.DerivedSummary, targetYears int) bool {
	return summary.IsFreedomReachable() && *summary.FFYearsToFreedom <= targetYears
}
