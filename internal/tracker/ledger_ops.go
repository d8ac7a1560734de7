package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrRecordNotFound is returned when a removal names a record that does not exist
var ErrRecordNotFound = errors.New("record not found")

// ExpenseBucketKind selects the monthly or annual recurring bucket
type ExpenseBucketKind string

const (
	MonthlyExpenses ExpenseBucketKind = "monthly"
	AnnualExpenses  ExpenseBucketKind = "annual"
)

func bucket(s *domain.AppState, kind ExpenseBucketKind) (*domain.ExpenseBucket, error) {
	switch kind {
	case MonthlyExpenses:
		return &s.Expenses.MonthlyRecurring, nil
	case AnnualExpenses:
		return &s.Expenses.AnnualRecurring, nil
	default:
		return nil, fmt.Errorf("unknown expense bucket %q", kind)
	}
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return name, nil
}

// SetAsset sets a predefined record of an asset category
func (t *Tracker) SetAsset(ctx context.Context, category domain.AssetCategory, key string, rec domain.MoneyRecord) error {
	return t.apply(ctx, "set asset", func(s *domain.AppState) error {
		key, err := requireName(key)
		if err != nil {
			return err
		}
		s.Assets.Category(category).Named[key] = rec.Normalized()
		return nil
	})
}

// AddCustomAsset appends a user-named record to an asset category and returns its ID
func (t *Tracker) AddCustomAsset(ctx context.Context, category domain.AssetCategory, name string, rec domain.MoneyRecord) (string, error) {
	var id string
	err := t.apply(ctx, "add asset", func(s *domain.AppState) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		nr := domain.NewNamedRecord(name, rec)
		c := s.Assets.Category(category)
		c.Custom = append(c.Custom, nr)
		id = nr.ID
		return nil
	})
	return id, err
}

// RemoveAsset removes a predefined record by key or a custom record by ID
func (t *Tracker) RemoveAsset(ctx context.Context, category domain.AssetCategory, keyOrID string) error {
	return t.apply(ctx, "remove asset", func(s *domain.AppState) error {
		c, ok := s.Assets[category]
		if !ok || c == nil {
			return fmt.Errorf("%s/%s: %w", category, keyOrID, ErrRecordNotFound)
		}
		if _, ok := c.Named[keyOrID]; ok {
			delete(c.Named, keyOrID)
			return nil
		}
		if c.RemoveCustom(keyOrID) {
			return nil
		}
		return fmt.Errorf("%s/%s: %w", category, keyOrID, ErrRecordNotFound)
	})
}

// SetLiability sets a predefined liability such as domain.HomeLoan
func (t *Tracker) SetLiability(ctx context.Context, key string, l domain.Liability) error {
	return t.apply(ctx, "set liability", func(s *domain.AppState) error {
		key, err := requireName(key)
		if err != nil {
			return err
		}
		s.Liabilities.Named[key] = l.Normalized()
		return nil
	})
}

// AddCustomLiability appends a user-named liability and returns its ID
func (t *Tracker) AddCustomLiability(ctx context.Context, name string, l domain.Liability) (string, error) {
	var id string
	err := t.apply(ctx, "add liability", func(s *domain.AppState) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		nl := domain.NamedLiability{ID: domain.NewID(), Name: name, Liability: l.Normalized()}
		s.Liabilities.Custom = append(s.Liabilities.Custom, nl)
		id = nl.ID
		return nil
	})
	return id, err
}

// RemoveLiability removes a predefined liability by key or a custom one by ID
func (t *Tracker) RemoveLiability(ctx context.Context, keyOrID string) error {
	return t.apply(ctx, "remove liability", func(s *domain.AppState) error {
		if _, ok := s.Liabilities.Named[keyOrID]; ok {
			delete(s.Liabilities.Named, keyOrID)
			return nil
		}
		if s.Liabilities.RemoveCustom(keyOrID) {
			return nil
		}
		return fmt.Errorf("liability %s: %w", keyOrID, ErrRecordNotFound)
	})
}

// SetRegularIncome sets the monthly salary or business income
func (t *Tracker) SetRegularIncome(ctx context.Context, monthly decimal.Decimal) error {
	return t.apply(ctx, "set income", func(s *domain.AppState) error {
		s.Income.Regular = domain.NonNegative(monthly)
		return nil
	})
}

// AddPassiveIncome adds a custom monthly passive income entry and returns its ID
func (t *Tracker) AddPassiveIncome(ctx context.Context, name string, monthly decimal.Decimal) (string, error) {
	var id string
	err := t.apply(ctx, "add passive income", func(s *domain.AppState) error {
		if _, err := requireName(name); err != nil {
			return err
		}
		entry := domain.NewNamedAmount(name, monthly)
		s.Income.CustomPassive = append(s.Income.CustomPassive, entry)
		id = entry.ID
		return nil
	})
	return id, err
}

// AddAdditionalIncome adds a side income paid at the given frequency and returns its ID
func (t *Tracker) AddAdditionalIncome(ctx context.Context, name string, amount decimal.Decimal, frequency string) (string, error) {
	var id string
	err := t.apply(ctx, "add additional income", func(s *domain.AppState) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		freq, err := domain.ParseFrequency(frequency)
		if err != nil {
			return err
		}
		entry := domain.AdditionalIncome{ID: domain.NewID(), Name: name, Amount: domain.NonNegative(amount), Frequency: freq}
		s.Income.Additional = append(s.Income.Additional, entry)
		id = entry.ID
		return nil
	})
	return id, err
}

// RemoveIncome removes a passive or additional income entry by ID
func (t *Tracker) RemoveIncome(ctx context.Context, id string) error {
	return t.apply(ctx, "remove income", func(s *domain.AppState) error {
		for i, p := range s.Income.CustomPassive {
			if p.ID == id {
				s.Income.CustomPassive = append(s.Income.CustomPassive[:i], s.Income.CustomPassive[i+1:]...)
				return nil
			}
		}
		for i, a := range s.Income.Additional {
			if a.ID == id {
				s.Income.Additional = append(s.Income.Additional[:i], s.Income.Additional[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("income %s: %w", id, ErrRecordNotFound)
	})
}

// SetExpense sets a predefined expense in the monthly or annual bucket
func (t *Tracker) SetExpense(ctx context.Context, kind ExpenseBucketKind, key string, amount decimal.Decimal) error {
	return t.apply(ctx, "set expense", func(s *domain.AppState) error {
		key, err := requireName(key)
		if err != nil {
			return err
		}
		b, err := bucket(s, kind)
		if err != nil {
			return err
		}
		b.Named[key] = domain.NonNegative(amount)
		return nil
	})
}

// AddCustomExpense appends a user-named expense to a bucket and returns its ID
func (t *Tracker) AddCustomExpense(ctx context.Context, kind ExpenseBucketKind, name string, amount decimal.Decimal) (string, error) {
	var id string
	err := t.apply(ctx, "add expense", func(s *domain.AppState) error {
		if _, err := requireName(name); err != nil {
			return err
		}
		b, err := bucket(s, kind)
		if err != nil {
			return err
		}
		entry := domain.NewNamedAmount(name, amount)
		b.Custom = append(b.Custom, entry)
		id = entry.ID
		return nil
	})
	return id, err
}

// RemoveExpense removes a predefined expense by key or a custom one by ID
func (t *Tracker) RemoveExpense(ctx context.Context, kind ExpenseBucketKind, keyOrID string) error {
	return t.apply(ctx, "remove expense", func(s *domain.AppState) error {
		b, err := bucket(s, kind)
		if err != nil {
			return err
		}
		if _, ok := b.Named[keyOrID]; ok {
			delete(b.Named, keyOrID)
			return nil
		}
		if b.RemoveCustom(keyOrID) {
			return nil
		}
		return fmt.Errorf("%s expense %s: %w", kind, keyOrID, ErrRecordNotFound)
	})
}

// AddBigExpense records a planned one-off purchase and returns its ID
func (t *Tracker) AddBigExpense(ctx context.Context, b domain.BigExpense) (string, error) {
	err := t.apply(ctx, "add big expense", func(s *domain.AppState) error {
		name, err := requireName(b.Name)
		if err != nil {
			return err
		}
		b.Name = name
		b.ID = domain.NewID()
		b.Amount = domain.NonNegative(b.Amount)
		b.RentalYieldPct = domain.NonNegative(b.RentalYieldPct)
		s.Expenses.BigExpenses = append(s.Expenses.BigExpenses, b)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// RemoveBigExpense removes a planned purchase by ID
func (t *Tracker) RemoveBigExpense(ctx context.Context, id string) error {
	return t.apply(ctx, "remove big expense", func(s *domain.AppState) error {
		for i, b := range s.Expenses.BigExpenses {
			if b.ID == id {
				s.Expenses.BigExpenses = append(s.Expenses.BigExpenses[:i], s.Expenses.BigExpenses[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("big expense %s: %w", id, ErrRecordNotFound)
	})
}
