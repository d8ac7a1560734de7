package tracker

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finfree/internal/domain"
)

// AddPolicy records a life or medical policy and returns its ID
func (t *Tracker) AddPolicy(ctx context.Context, kind domain.PolicyKind, p domain.InsurancePolicy) (string, error) {
	err := t.apply(ctx, "add policy", func(s *domain.AppState) error {
		name, err := requireName(p.Name)
		if err != nil {
			return err
		}
		policies, err := s.Insurance.Policies(kind)
		if err != nil {
			return err
		}
		p.Name = name
		p.ID = domain.NewID()
		if p.StartDate.IsZero() {
			p.StartDate = t.now().UTC()
		}
		*policies = append(*policies, p)
		return nil
	})
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// RemovePolicy removes a policy of either kind by ID
func (t *Tracker) RemovePolicy(ctx context.Context, id string) error {
	return t.apply(ctx, "remove policy", func(s *domain.AppState) error {
		if !s.Insurance.Remove(id) {
			return fmt.Errorf("policy %s: %w", id, ErrRecordNotFound)
		}
		return nil
	})
}

// AddGoal records a savings goal and returns its ID. A goal without a start date starts now.
func (t *Tracker) AddGoal(ctx context.Context, g domain.Goal) (string, error) {
	err := t.apply(ctx, "add goal", func(s *domain.AppState) error {
		name, err := requireName(g.Name)
		if err != nil {
			return err
		}
		if g.TimelineYears <= 0 {
			return fmt.Errorf("goal timeline must be at least one year, got %d", g.TimelineYears)
		}
		g.Name = name
		g.ID = domain.NewID()
		g.TargetAmount = domain.NonNegative(g.TargetAmount)
		if g.StartDate.IsZero() {
			g.StartDate = t.now().UTC()
		}
		s.Goals = append(s.Goals, g)
		return nil
	})
	if err != nil {
		return "", err
	}
	return g.ID, nil
}

// RemoveGoal removes a goal by ID
func (t *Tracker) RemoveGoal(ctx context.Context, id string) error {
	return t.apply(ctx, "remove goal", func(s *domain.AppState) error {
		if !s.RemoveGoal(id) {
			return fmt.Errorf("goal %s: %w", id, ErrRecordNotFound)
		}
		return nil
	})
}

// SetRiskAnswers stores the questionnaire answers; out-of-range answers are clamped when scored
func (t *Tracker) SetRiskAnswers(ctx context.Context, a domain.RiskAnswers) error {
	return t.apply(ctx, "set risk answers", func(s *domain.AppState) error {
		s.RiskAnswers = a
		return nil
	})
}

// SetAssumptions replaces the projection assumptions
func (t *Tracker) SetAssumptions(ctx context.Context, a domain.Assumptions) error {
	return t.apply(ctx, "set assumptions", func(s *domain.AppState) error {
		s.Assumptions = a
		return nil
	})
}

// UpdateAssumptions edits the current assumptions in place
func (t *Tracker) UpdateAssumptions(ctx context.Context, fn func(a *domain.Assumptions)) error {
	return t.apply(ctx, "update assumptions", func(s *domain.AppState) error {
		fn(&s.Assumptions)
		return nil
	})
}

// SetPersonal replaces the personal details
func (t *Tracker) SetPersonal(ctx context.Context, p domain.PersonalInfo) error {
	return t.apply(ctx, "set personal", func(s *domain.AppState) error {
		if p.RetirementAge < 0 || p.Dependents < 0 {
			return fmt.Errorf("retirement age and dependents cannot be negative")
		}
		s.Personal = p
		return nil
	})
}
