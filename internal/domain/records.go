package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MoneyRecord is a single asset line item: a value and an optional annual yield in percent
type MoneyRecord struct {
	Value    decimal.Decimal `yaml:"value" json:"value"`
	YieldPct decimal.Decimal `yaml:"yield_pct,omitempty" json:"yield_pct,omitempty"`
}

// Normalized returns the record with negative fields coerced to zero
func (r MoneyRecord) Normalized() MoneyRecord {
	return MoneyRecord{
		Value:    NonNegative(r.Value),
		YieldPct: NonNegative(r.YieldPct),
	}
}

// AnnualYield returns value * yieldPct / 100
func (r MoneyRecord) AnnualYield() decimal.Decimal {
	n := r.Normalized()
	return n.Value.Mul(n.YieldPct).Div(hundred)
}

// NamedRecord is a user-added line item that carries its own display name
type NamedRecord struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	MoneyRecord `yaml:",inline"`
}

// NewNamedRecord creates a custom record with a fresh ID
func NewNamedRecord(name string, record MoneyRecord) NamedRecord {
	return NamedRecord{
		ID:          NewID(),
		Name:        strings.TrimSpace(name),
		MoneyRecord: record.Normalized(),
	}
}

// Category groups the predefined records of one asset class with the user's custom ones.
// Custom is always non-nil after Normalize.
type Category struct {
	Named  map[string]MoneyRecord `yaml:"named" json:"named"`
	Custom []NamedRecord          `yaml:"custom" json:"custom"`
}

// NewCategory returns an empty category
func NewCategory() *Category {
	return &Category{
		Named:  make(map[string]MoneyRecord),
		Custom: []NamedRecord{},
	}
}

// Normalize fills nil collections and clamps negative values
func (c *Category) Normalize() {
	if c.Named == nil {
		c.Named = make(map[string]MoneyRecord)
	}
	if c.Custom == nil {
		c.Custom = []NamedRecord{}
	}
	for k, r := range c.Named {
		c.Named[k] = r.Normalized()
	}
	for i := range c.Custom {
		c.Custom[i].MoneyRecord = c.Custom[i].MoneyRecord.Normalized()
		if c.Custom[i].ID == "" {
			c.Custom[i].ID = NewID()
		}
	}
}

// Records returns every record in the category, named first
func (c *Category) Records() []MoneyRecord {
	if c == nil {
		return nil
	}
	out := make([]MoneyRecord, 0, len(c.Named)+len(c.Custom))
	for _, r := range c.Named {
		out = append(out, r)
	}
	for _, r := range c.Custom {
		out = append(out, r.MoneyRecord)
	}
	return out
}

// RemoveCustom deletes the custom record with the given ID and reports whether it existed
func (c *Category) RemoveCustom(id string) bool {
	for i, r := range c.Custom {
		if r.ID == id {
			c.Custom = append(c.Custom[:i], c.Custom[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the category
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	out := &Category{
		Named:  make(map[string]MoneyRecord, len(c.Named)),
		Custom: make([]NamedRecord, len(c.Custom)),
	}
	for k, v := range c.Named {
		out.Named[k] = v
	}
	copy(out.Custom, c.Custom)
	return out
}

// NamedAmount is a custom entry that only carries an amount
type NamedAmount struct {
	ID     string          `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// NewNamedAmount creates a custom amount entry with a fresh ID
func NewNamedAmount(name string, amount decimal.Decimal) NamedAmount {
	return NamedAmount{ID: NewID(), Name: strings.TrimSpace(name), Amount: NonNegative(amount)}
}

// NonNegative clamps negative values to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseAmount converts free-form numeric text to a non-negative amount.
// Empty, unparseable or negative input yields zero; it never fails.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// NewID returns a new random identifier for a user-added record
func NewID() string {
	return uuid.NewString()
}
