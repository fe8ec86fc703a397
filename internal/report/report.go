// Package report aggregates expenses into monthly and per-category totals.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultMonthLimit = 12
	MaxMonthLimit     = 120

	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#6b7280"
)

// MonthlyTotal sums the expenses of one calendar month.
type MonthlyTotal struct {
	Month string // English month name
	Year  int
	Total decimal.Decimal
	Count int64
}

// CategoryTotal sums the expenses of one category within a window.
// CategoryID is nil for expenses without a category.
type CategoryTotal struct {
	CategoryID    *int64
	CategoryName  string
	CategoryColor string
	Total         decimal.Decimal
	Count         int64
	Percentage    decimal.Decimal
}

// MonthBucket is the raw aggregate of one month as read from storage.
type MonthBucket struct {
	Start time.Time // first day of the month, UTC
	Total decimal.Decimal
	Count int64
}

// CategoryBucket is the raw aggregate of one category as read from storage.
type CategoryBucket struct {
	CategoryID *int64
	Name       *string
	Color      *string
	Total      decimal.Decimal
	Count      int64
}

// Window bounds an aggregation by expense date, both ends inclusive.
type Window struct {
	Start *time.Time
	End   *time.Time
}
