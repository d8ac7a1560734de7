package breakeven

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected tolerance 100, got %s", opts.Tolerance.String())
	}
	if opts.MaxIterations != 60 {
		t.Errorf("Expected 60 iterations, got %d", opts.MaxIterations)
	}
}

func TestSolveRequest_Validate(t *testing.T) {
	valid := SolveRequest{Base: solverState(0), Target: SolveExpenses, TargetYears: 100}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected expenses at the horizon cap to be valid, got %v", err)
	}

	invalid := SolveRequest{Base: solverState(0), Target: SolveSavings, TargetYears: -3}
	err := invalid.Validate()
	if err == nil {
		t.Fatal("Expected error for negative horizon")
	}
	var beErr *BreakEvenError
	if !errors.As(err, &beErr) || beErr.Operation != "validate_request" {
		t.Errorf("Expected validate_request BreakEvenError, got %v", err)
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve_savings", Message: "failed", Cause: cause}

	if err.Error() != "solve_savings: failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	bare := &BreakEvenError{Operation: "solve", Message: "bad"}
	if bare.Error() != "solve: bad" {
		t.Errorf("Unexpected message %q", bare.Error())
	}
}

func sampleResult() *SolveResult {
	years := 10
	return &SolveResult{
		Target:          SolveSavings,
		TargetYears:     10,
		Success:         true,
		Iterations:      14,
		ConvergenceInfo: "Converged within 100 after 14 iterations",
		Value:           decimal.NewFromInt(41200),
		CurrentValue:    decimal.NewFromInt(30000),
		Difference:      decimal.NewFromInt(11200),
		YearsToFreedom:  &years,
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tf := &TableFormatter{}

	out := tf.Format(sampleResult())

	for _, want := range []string{
		"BREAK-EVEN SOLVER RESULTS",
		"Solve For:    Monthly savings",
		"Horizon:      10 years",
		"✓ Converged",
		"Required Monthly Savings: 41200.00",
		"Change:                   +11200.00",
		"Years to Freedom:         10",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	expenses := &SolveResult{
		Target:         SolveExpenses,
		TargetYears:    25,
		Value:          decimal.NewFromInt(85000),
		CurrentValue:   decimal.NewFromInt(600000),
		Difference:     decimal.NewFromInt(-515000),
		DepletionYears: 25,
	}
	out = tf.Format(expenses)
	for _, want := range []string{"⚠ Did not converge", "Headroom:                   -515000.00", "Wealth Lasts:               25 years"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestTableFormatter_FormatMulti(t *testing.T) {
	tf := &TableFormatter{}
	multi := &MultiResult{
		TargetYears:     10,
		Savings:         sampleResult(),
		Recommendations: []string{"Save More: increase monthly savings by 11200 to be free within 10 years"},
	}

	out := tf.FormatMulti(multi)

	for _, want := range []string{"BREAK-EVEN SUMMARY (10 YEAR HORIZON)", "Monthly savings", "41.2K", "+11.2K", "RECOMMENDATIONS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Annual expenses") {
		t.Error("Missing solver result should be skipped")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		jf := &JSONFormatter{Pretty: pretty}

		out, err := jf.Format(sampleResult())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["target"] != "savings" {
			t.Errorf("Expected target savings, got %v", decoded["target"])
		}
		if _, ok := decoded["BaseSummary"]; ok {
			t.Error("Base summary should not be serialized")
		}
	}
}
