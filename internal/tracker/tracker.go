// Package tracker holds the single application state. Every mutation is applied to a copy,
// the summary is recomputed, the whole state is persisted, and only then does the copy
// become current. A failed mutation leaves the tracker unchanged.
//
// A Tracker is not safe for concurrent use.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/store"
)

// Tracker owns the current state and its derived summary
type Tracker struct {
	store  store.Store
	engine *calculation.CalculationEngine
	state  *domain.AppState
	logger calculation.Logger
	now    func() time.Time
}

// Open loads the stored state, falling back to an empty state when nothing has been saved,
// and computes its summary. Nothing is written until the first mutation.
func Open(ctx context.Context, st store.Store, engine *calculation.CalculationEngine) (*Tracker, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}

	state, err := store.LoadOrDefault(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to load state from %s: %w", st.Location(), err)
	}

	t := &Tracker{
		store:  st,
		engine: engine,
		logger: engine.Logger,
		now:    engine.Now,
	}
	if t.logger == nil {
		t.logger = calculation.NopLogger{}
	}
	if t.now == nil {
		t.now = time.Now
	}

	summary, err := engine.RecomputeState(state)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	state.Summary = summary
	t.state = state

	t.logger.Debugf("opened state from %s", st.Location())
	return t, nil
}

// State returns a copy of the current state including its summary
func (t *Tracker) State() *domain.AppState {
	return t.state.Clone()
}

// Summary returns the current derived summary
func (t *Tracker) Summary() *domain.DerivedSummary {
	return t.state.Summary
}

// Location describes where the state is persisted
func (t *Tracker) Location() string {
	return t.store.Location()
}

// Replace swaps in a whole new state, e.g. an imported ledger file
func (t *Tracker) Replace(ctx context.Context, state *domain.AppState) error {
	if state == nil {
		return fmt.Errorf("replace: state cannot be nil")
	}
	return t.apply(ctx, "replace", func(s *domain.AppState) error {
		*s = *state.Clone()
		return nil
	})
}

// Save persists the current state unchanged
func (t *Tracker) Save(ctx context.Context) error {
	return t.apply(ctx, "save", func(*domain.AppState) error { return nil })
}

// apply runs fn against a copy of the state, recomputes and persists it
func (t *Tracker) apply(ctx context.Context, op string, fn func(s *domain.AppState) error) error {
	next := t.state.Clone()
	if err := fn(next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	next.Normalize()
	next.UpdatedAt = t.now().UTC()

	summary, err := t.engine.RecomputeState(next)
	if err != nil {
		return fmt.Errorf("%s: failed to compute summary: %w", op, err)
	}
	next.Summary = summary

	if err := t.store.Save(ctx, next); err != nil {
		t.logger.Errorf("%s: failed to save state to %s: %v", op, t.store.Location(), err)
		return fmt.Errorf("%s: failed to save state: %w", op, err)
	}

	t.state = next
	t.logger.Debugf("%s: saved state, net worth %s", op, summary.NetWorth.StringFixed(2))
	return nil
}
