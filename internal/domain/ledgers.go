package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetCategory names one class of assets in the ledger
type AssetCategory string

const (
	RealEstate  AssetCategory = "real_estate"
	Equity      AssetCategory = "equity"
	FixedIncome AssetCategory = "fixed_income"
	Commodities AssetCategory = "commodities"
	Cash        AssetCategory = "cash"
)

// StandardAssetCategories lists the categories every ledger starts with
func StandardAssetCategories() []AssetCategory {
	return []AssetCategory{RealEstate, Equity, FixedIncome, Commodities, Cash}
}

// AssetLedger maps each asset category to its records
type AssetLedger map[AssetCategory]*Category

// NewAssetLedger creates a ledger with every standard category present and empty
func NewAssetLedger() AssetLedger {
	l := make(AssetLedger)
	for _, c := range StandardAssetCategories() {
		l[c] = NewCategory()
	}
	return l
}

// Category returns the named category, creating it when absent
func (l AssetLedger) Category(name AssetCategory) *Category {
	c, ok := l[name]
	if !ok || c == nil {
		c = NewCategory()
		l[name] = c
	}
	return c
}

// Normalize ensures every standard category exists and all records are well formed
func (l AssetLedger) Normalize() {
	for _, c := range StandardAssetCategories() {
		l.Category(c)
	}
	for _, c := range l {
		c.Normalize()
	}
}

// Clone returns a deep copy of the ledger
func (l AssetLedger) Clone() AssetLedger {
	if l == nil {
		return nil
	}
	out := make(AssetLedger, len(l))
	for k, v := range l {
		out[k] = v.Clone()
	}
	return out
}

// Liability is one outstanding loan or balance
type Liability struct {
	Amount                decimal.Decimal `yaml:"amount" json:"amount"`
	RemainingTenureMonths int             `yaml:"remaining_tenure_months" json:"remaining_tenure_months"`
}

// Normalized clamps negative fields to zero
func (l Liability) Normalized() Liability {
	if l.RemainingTenureMonths < 0 {
		l.RemainingTenureMonths = 0
	}
	l.Amount = NonNegative(l.Amount)
	return l
}

// NamedLiability is a user-added liability
type NamedLiability struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Liability `yaml:",inline"`
}

// Predefined liability keys
const (
	HomeLoan      = "home_loan"
	CarLoan       = "car_loan"
	CreditCard    = "credit_card"
	EducationLoan = "education_loan"
	PersonalLoan  = "personal_loan"
)

// LiabilityLedger holds predefined liabilities by type plus custom ones
type LiabilityLedger struct {
	Named  map[string]Liability `yaml:"named" json:"named"`
	Custom []NamedLiability     `yaml:"custom" json:"custom"`
}

// NewLiabilityLedger returns an empty ledger
func NewLiabilityLedger() LiabilityLedger {
	return LiabilityLedger{Named: make(map[string]Liability), Custom: []NamedLiability{}}
}

// Normalize fills nil collections and clamps negative values
func (l *LiabilityLedger) Normalize() {
	if l.Named == nil {
		l.Named = make(map[string]Liability)
	}
	if l.Custom == nil {
		l.Custom = []NamedLiability{}
	}
	for k, v := range l.Named {
		l.Named[k] = v.Normalized()
	}
	for i := range l.Custom {
		l.Custom[i].Liability = l.Custom[i].Liability.Normalized()
		if l.Custom[i].ID == "" {
			l.Custom[i].ID = NewID()
		}
	}
}

// Entries returns every liability, named first
func (l LiabilityLedger) Entries() []Liability {
	out := make([]Liability, 0, len(l.Named)+len(l.Custom))
	for _, v := range l.Named {
		out = append(out, v)
	}
	for _, v := range l.Custom {
		out = append(out, v.Liability)
	}
	return out
}

// RemoveCustom deletes a custom liability by ID
func (l *LiabilityLedger) RemoveCustom(id string) bool {
	for i, v := range l.Custom {
		if v.ID == id {
			l.Custom = append(l.Custom[:i], l.Custom[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (l LiabilityLedger) Clone() LiabilityLedger {
	out := LiabilityLedger{
		Named:  make(map[string]Liability, len(l.Named)),
		Custom: make([]NamedLiability, len(l.Custom)),
	}
	for k, v := range l.Named {
		out.Named[k] = v
	}
	copy(out.Custom, l.Custom)
	return out
}

// ExpenseBucket is a set of named recurring costs plus custom ones
type ExpenseBucket struct {
	Named  map[string]decimal.Decimal `yaml:"named" json:"named"`
	Custom []NamedAmount              `yaml:"custom" json:"custom"`
}

// NewExpenseBucket returns an empty bucket
func NewExpenseBucket() ExpenseBucket {
	return ExpenseBucket{Named: make(map[string]decimal.Decimal), Custom: []NamedAmount{}}
}

// Normalize fills nil collections and clamps negative values
func (b *ExpenseBucket) Normalize() {
	if b.Named == nil {
		b.Named = make(map[string]decimal.Decimal)
	}
	if b.Custom == nil {
		b.Custom = []NamedAmount{}
	}
	for k, v := range b.Named {
		b.Named[k] = NonNegative(v)
	}
	for i := range b.Custom {
		b.Custom[i].Amount = NonNegative(b.Custom[i].Amount)
		if b.Custom[i].ID == "" {
			b.Custom[i].ID = NewID()
		}
	}
}

// Total sums the named and custom amounts
func (b ExpenseBucket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b.Named {
		total = total.Add(NonNegative(v))
	}
	for _, v := range b.Custom {
		total = total.Add(NonNegative(v.Amount))
	}
	return total
}

// Scale multiplies every entry by factor
func (b *ExpenseBucket) Scale(factor decimal.Decimal) {
	for k, v := range b.Named {
		b.Named[k] = v.Mul(factor)
	}
	for i := range b.Custom {
		b.Custom[i].Amount = b.Custom[i].Amount.Mul(factor)
	}
}

// RemoveCustom deletes a custom entry by ID
func (b *ExpenseBucket) RemoveCustom(id string) bool {
	for i, v := range b.Custom {
		if v.ID == id {
			b.Custom = append(b.Custom[:i], b.Custom[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (b ExpenseBucket) Clone() ExpenseBucket {
	out := ExpenseBucket{
		Named:  make(map[string]decimal.Decimal, len(b.Named)),
		Custom: make([]NamedAmount, len(b.Custom)),
	}
	for k, v := range b.Named {
		out.Named[k] = v
	}
	copy(out.Custom, b.Custom)
	return out
}

// BigExpense is a one-off outlay such as a property purchase. Property-like items may carry a rental yield.
type BigExpense struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name"`
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	RentalYieldPct decimal.Decimal `yaml:"rental_yield_pct,omitempty" json:"rental_yield_pct,omitempty"`
	Year           int             `yaml:"year,omitempty" json:"year,omitempty"`
}

// MonthlyRentalIncome returns the rent the item would earn per month
func (b BigExpense) MonthlyRentalIncome() decimal.Decimal {
	return NonNegative(b.Amount).Mul(NonNegative(b.RentalYieldPct)).Div(hundred).Div(decimal.NewFromInt(12))
}

// ExpenseLedger holds recurring monthly and annual costs and one-off big expenses
type ExpenseLedger struct {
	MonthlyRecurring ExpenseBucket `yaml:"monthly_recurring" json:"monthly_recurring"`
	AnnualRecurring  ExpenseBucket `yaml:"annual_recurring" json:"annual_recurring"`
	BigExpenses      []BigExpense  `yaml:"big_expenses" json:"big_expenses"`
}

// NewExpenseLedger returns an empty ledger
func NewExpenseLedger() ExpenseLedger {
	return ExpenseLedger{
		MonthlyRecurring: NewExpenseBucket(),
		AnnualRecurring:  NewExpenseBucket(),
		BigExpenses:      []BigExpense{},
	}
}

// Normalize fills nil collections and clamps negative values
func (e *ExpenseLedger) Normalize() {
	e.MonthlyRecurring.Normalize()
	e.AnnualRecurring.Normalize()
	if e.BigExpenses == nil {
		e.BigExpenses = []BigExpense{}
	}
	for i := range e.BigExpenses {
		e.BigExpenses[i].Amount = NonNegative(e.BigExpenses[i].Amount)
		e.BigExpenses[i].RentalYieldPct = NonNegative(e.BigExpenses[i].RentalYieldPct)
		if e.BigExpenses[i].ID == "" {
			e.BigExpenses[i].ID = NewID()
		}
	}
}

// Clone returns a deep copy
func (e ExpenseLedger) Clone() ExpenseLedger {
	out := ExpenseLedger{
		MonthlyRecurring: e.MonthlyRecurring.Clone(),
		AnnualRecurring:  e.AnnualRecurring.Clone(),
		BigExpenses:      make([]BigExpense, len(e.BigExpenses)),
	}
	copy(out.BigExpenses, e.BigExpenses)
	return out
}

// Frequency is how often an additional income entry pays out
type Frequency string

const (
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
)

// ParseFrequency accepts the common spellings of each frequency
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month", "m":
		return Monthly, nil
	case "quarterly", "quarter", "q":
		return Quarterly, nil
	case "annually", "annual", "yearly", "year", "y":
		return Annually, nil
	default:
		return "", fmt.Errorf("unknown frequency %q", s)
	}
}

// MonthsPerPayment returns the divisor that converts one payment to a monthly amount
func (f Frequency) MonthsPerPayment() int64 {
	switch f {
	case Quarterly:
		return 3
	case Annually:
		return 12
	default:
		return 1
	}
}

// AdditionalIncome is a side income paid at some frequency
type AdditionalIncome struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
}

// MonthlyAmount normalizes the entry to a monthly figure
func (a AdditionalIncome) MonthlyAmount() decimal.Decimal {
	return NonNegative(a.Amount).Div(decimal.NewFromInt(a.Frequency.MonthsPerPayment()))
}

// IncomeLedger holds regular, passive and additional income. Yield-derived passive
// income is not stored; only custom passive entries (monthly) are.
type IncomeLedger struct {
	Regular       decimal.Decimal    `yaml:"regular" json:"regular"`
	CustomPassive []NamedAmount      `yaml:"custom_passive" json:"custom_passive"`
	Additional    []AdditionalIncome `yaml:"additional" json:"additional"`
}

// NewIncomeLedger returns an empty ledger
func NewIncomeLedger() IncomeLedger {
	return IncomeLedger{CustomPassive: []NamedAmount{}, Additional: []AdditionalIncome{}}
}

// Normalize fills nil collections and clamps negative values
func (l *IncomeLedger) Normalize() {
	l.Regular = NonNegative(l.Regular)
	if l.CustomPassive == nil {
		l.CustomPassive = []NamedAmount{}
	}
	if l.Additional == nil {
		l.Additional = []AdditionalIncome{}
	}
	for i := range l.CustomPassive {
		l.CustomPassive[i].Amount = NonNegative(l.CustomPassive[i].Amount)
		if l.CustomPassive[i].ID == "" {
			l.CustomPassive[i].ID = NewID()
		}
	}
	for i := range l.Additional {
		a := &l.Additional[i]
		a.Amount = NonNegative(a.Amount)
		if f, err := ParseFrequency(string(a.Frequency)); err == nil {
			a.Frequency = f
		} else {
			a.Frequency = Monthly
		}
		if a.ID == "" {
			a.ID = NewID()
		}
	}
}

// Clone returns a deep copy
func (l IncomeLedger) Clone() IncomeLedger {
	out := IncomeLedger{
		Regular:       l.Regular,
		CustomPassive: make([]NamedAmount, len(l.CustomPassive)),
		Additional:    make([]AdditionalIncome, len(l.Additional)),
	}
	copy(out.CustomPassive, l.CustomPassive)
	copy(out.Additional, l.Additional)
	return out
}
