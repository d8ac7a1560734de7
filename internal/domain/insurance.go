package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PolicyKind distinguishes life cover from medical cover
type PolicyKind string

const (
	LifePolicy    PolicyKind = "life"
	MedicalPolicy PolicyKind = "medical"
)

// InsurancePolicy is one life or medical policy.
// TermYears applies to life policies; RoomRentLimit and HasCoPay to medical ones.
type InsurancePolicy struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	PolicyType    string          `yaml:"policy_type" json:"policy_type"`
	SumAssured    decimal.Decimal `yaml:"sum_assured" json:"sum_assured"`
	AnnualPremium decimal.Decimal `yaml:"annual_premium" json:"annual_premium"`
	StartDate     time.Time       `yaml:"start_date" json:"start_date"`
	TermYears     int             `yaml:"term_years,omitempty" json:"term_years,omitempty"`
	RoomRentLimit decimal.Decimal `yaml:"room_rent_limit,omitempty" json:"room_rent_limit,omitempty"`
	HasCoPay      bool            `yaml:"has_co_pay,omitempty" json:"has_co_pay,omitempty"`
}

// IsActive reports whether a term policy is still in force at t. Policies without a term never lapse.
func (p InsurancePolicy) IsActive(t time.Time) bool {
	if p.TermYears <= 0 || p.StartDate.IsZero() {
		return true
	}
	return t.Before(p.StartDate.AddDate(p.TermYears, 0, 0))
}

// InsuranceLedger keeps policies per kind in insertion order
type InsuranceLedger struct {
	Life    []InsurancePolicy `yaml:"life" json:"life"`
	Medical []InsurancePolicy `yaml:"medical" json:"medical"`
}

// NewInsuranceLedger returns an empty ledger
func NewInsuranceLedger() InsuranceLedger {
	return InsuranceLedger{Life: []InsurancePolicy{}, Medical: []InsurancePolicy{}}
}

// Policies returns the slice for the given kind
func (l *InsuranceLedger) Policies(kind PolicyKind) (*[]InsurancePolicy, error) {
	switch kind {
	case LifePolicy:
		return &l.Life, nil
	case MedicalPolicy:
		return &l.Medical, nil
	default:
		return nil, fmt.Errorf("unknown policy kind %q", kind)
	}
}

// Remove deletes a policy of either kind by ID
func (l *InsuranceLedger) Remove(id string) bool {
	for _, list := range []*[]InsurancePolicy{&l.Life, &l.Medical} {
		for i, p := range *list {
			if p.ID == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Normalize fills nil collections and clamps negative values
func (l *InsuranceLedger) Normalize() {
	if l.Life == nil {
		l.Life = []InsurancePolicy{}
	}
	if l.Medical == nil {
		l.Medical = []InsurancePolicy{}
	}
	for _, list := range [][]InsurancePolicy{l.Life, l.Medical} {
		for i := range list {
			p := &list[i]
			p.SumAssured = NonNegative(p.SumAssured)
			p.AnnualPremium = NonNegative(p.AnnualPremium)
			p.RoomRentLimit = NonNegative(p.RoomRentLimit)
			if p.TermYears < 0 {
				p.TermYears = 0
			}
			if p.ID == "" {
				p.ID = NewID()
			}
		}
	}
}

// Clone returns a deep copy
func (l InsuranceLedger) Clone() InsuranceLedger {
	out := InsuranceLedger{
		Life:    make([]InsurancePolicy, len(l.Life)),
		Medical: make([]InsurancePolicy, len(l.Medical)),
	}
	copy(out.Life, l.Life)
	copy(out.Medical, l.Medical)
	return out
}
