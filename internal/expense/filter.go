package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter narrows a listing. Every set field adds one inclusive bound and
// the bounds are combined with AND.
type ListFilter struct {
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// IsZero reports whether the filter has no bound at all.
func (f ListFilter) IsZero() bool {
	return f.CategoryID == nil && f.StartDate == nil && f.EndDate == nil &&
		f.MinAmount == nil && f.MaxAmount == nil
}

// Predicates returns one closure per set field, in field order.
func (f ListFilter) Predicates() []func(*Expense) bool {
	candidates := []func(*Expense) bool{
		categoryIs(f.CategoryID),
		dateFrom(f.StartDate),
		dateUntil(f.EndDate),
		amountAtLeast(f.MinAmount),
		amountAtMost(f.MaxAmount),
	}

	preds := candidates[:0]

	for _, p := range candidates {
		if p != nil {
			preds = append(preds, p)
		}
	}

	return preds
}

// Matches reports whether e satisfies every bound of the filter.
func (f ListFilter) Matches(e *Expense) bool {
	for _, p := range f.Predicates() {
		if !p(e) {
			return false
		}
	}

	return true
}

func categoryIs(id *int64) func(*Expense) bool {
	if id == nil {
		return nil
	}

	want := *id

	return func(e *Expense) bool {
		return e.CategoryID != nil && *e.CategoryID == want
	}
}

func dateFrom(start *time.Time) func(*Expense) bool {
	if start == nil {
		return nil
	}

	from := *start

	return func(e *Expense) bool { return !e.Date.Before(from) }
}

func dateUntil(end *time.Time) func(*Expense) bool {
	if end == nil {
		return nil
	}

	until := *end

	return func(e *Expense) bool { return !e.Date.After(until) }
}

func amountAtLeast(minAmount *decimal.Decimal) func(*Expense) bool {
	if minAmount == nil {
		return nil
	}

	bound := *minAmount

	return func(e *Expense) bool { return e.Amount.GreaterThanOrEqual(bound) }
}

func amountAtMost(maxAmount *decimal.Decimal) func(*Expense) bool {
	if maxAmount == nil {
		return nil
	}

	bound := *maxAmount

	return func(e *Expense) bool { return e.Amount.LessThanOrEqual(bound) }
}
