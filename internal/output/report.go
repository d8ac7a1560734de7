package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a report does not name one
const DefaultCurrency = "INR"

// Report is the input every formatter renders: a state with its derived summary
type Report struct {
	State       *domain.AppState
	Summary     *domain.DerivedSummary
	Currency    string
	GeneratedAt time.Time
}

// NewReport wraps a recomputed state for rendering
func NewReport(state *domain.AppState, currency string) (*Report, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	if state.Summary == nil {
		return nil, fmt.Errorf("state has no derived summary; recompute it first")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Report{
		State:       state,
		Summary:     state.Summary,
		Currency:    strings.ToUpper(currency),
		GeneratedAt: state.Summary.ComputedAt,
	}, nil
}

// Money formats an amount in the report currency
func (r *Report) Money(amount decimal.Decimal) string {
	return FormatCurrency(amount, r.Currency)
}

// FormatCurrency formats a decimal amount using the display rules of an ISO 4217 currency.
// Unknown codes fall back to the plain amount followed by the code.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatYears renders an optional year count; nil means the target is not reachable
func FormatYears(years *int) string {
	if years == nil {
		return "not reachable"
	}
	if *years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", *years)
}
