package breakeven

import (
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget defines which quantity the solver searches for
type SolveTarget string

const (
	SolveSavings  SolveTarget = "savings"  // minimum monthly savings to be free within TargetYears
	SolveExpenses SolveTarget = "expenses" // maximum annual expense that net worth covers for TargetYears
)

// SolveRequest defines the parameters for a solver run
type SolveRequest struct {
	Base          *domain.AppState
	Target        SolveTarget
	TargetYears   int
	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Stop once the bracket is this narrow
	AsOf          time.Time
}

// SolveResult contains the outcome of a solver run
type SolveResult struct {
	Target          SolveTarget `json:"target"`
	TargetYears     int         `json:"target_years"`
	Success         bool        `json:"success"`
	Iterations      int         `json:"iterations"`
	ConvergenceInfo string      `json:"convergence_info"`

	// Value is a monthly amount for SolveSavings and an annual amount for SolveExpenses
	Value        decimal.Decimal `json:"value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Difference   decimal.Decimal `json:"difference"`

	// Outcome at Value
	DepletionYears int  `json:"depletion_years"`
	YearsToFreedom *int `json:"years_to_freedom,omitempty"`

	BaseSummary *domain.DerivedSummary `json:"-"`
}

// MultiResult contains both solver answers for a single horizon
type MultiResult struct {
	TargetYears     int          `json:"target_years"`
	Savings         *SolveResult `json:"savings,omitempty"`
	Expenses        *SolveResult `json:"expenses,omitempty"`
	Recommendations []string     `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance in currency units
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(100),
		MaxIterations: 60,
	}
}

// Validate checks the request before any computation runs
func (r *SolveRequest) Validate() error {
	if r.Base == nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "base state is required",
		}
	}

	switch r.Target {
	case SolveSavings:
		// freedom must land strictly inside the simulation horizon
		if r.TargetYears < 1 || r.TargetYears >= calculation.MaxHorizonYears {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "target years for savings must be between 1 and 99",
			}
		}
	case SolveExpenses:
		if r.TargetYears < 1 || r.TargetYears > calculation.MaxHorizonYears {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "target years for expenses must be between 1 and 100",
			}
		}
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported solve target: " + string(r.Target),
		}
	}

	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
