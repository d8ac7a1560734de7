package breakeven

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/finfree/internal/domain"
)

// SolveAll runs both solvers for the same horizon and summarizes them. A target that
// cannot be solved (for example expenses with no net worth) is skipped; SolveAll only
// fails when neither produces a result or the context is cancelled.
func (s *Solver) SolveAll(ctx context.Context, base *domain.AppState, targetYears int, asOf time.Time) (*MultiResult, error) {
	multi := &MultiResult{TargetYears: targetYears}

	var lastErr error
	for _, target := range []SolveTarget{SolveSavings, SolveExpenses} {
		result, err := s.Solve(ctx, SolveRequest{
			Base:        base,
			Target:      target,
			TargetYears: targetYears,
			AsOf:        asOf,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
			continue
		}

		switch target {
		case SolveSavings:
			multi.Savings = result
		case SolveExpenses:
			multi.Expenses = result
		}
	}

	if multi.Savings == nil && multi.Expenses == nil {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no solver produced a result",
			Cause:     lastErr,
		}
	}

	multi.Recommendations = recommendations(multi)
	return multi, nil
}

func recommendations(m *MultiResult) []string {
	recs := []string{}

	if r := m.Savings; r != nil {
		switch {
		case r.Value.IsZero():
			recs = append(recs, fmt.Sprintf("On Track: current wealth reaches financial freedom within %d years without new savings", m.TargetYears))
		case r.Difference.IsPositive():
			recs = append(recs, fmt.Sprintf("Save More: increase monthly savings by %s to be free within %d years",
				r.Difference.StringFixed(0), m.TargetYears))
		default:
			recs = append(recs, fmt.Sprintf("Headroom: monthly savings could drop by %s and still reach freedom within %d years",
				r.Difference.Abs().StringFixed(0), m.TargetYears))
		}
	}

	if r := m.Expenses; r != nil {
		if r.Difference.IsNegative() {
			recs = append(recs, fmt.Sprintf("Spend Less: annual expenses must fall by %s for wealth to last %d years",
				r.Difference.Abs().StringFixed(0), m.TargetYears))
		} else {
			recs = append(recs, fmt.Sprintf("Sustainable: wealth covers up to %s a year for %d years",
				r.Value.StringFixed(0), m.TargetYears))
		}
	}

	return recs
}
