package render

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/apperr"
)

// Query parsers below return nil for an absent parameter and record a field
// error for a malformed one.

func QueryID(q url.Values, name string, fields *apperr.Fields) *int64 {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		fields.Add(name, "Must be a positive integer")
		return nil
	}

	return &id
}

func QueryDate(q url.Values, name string, fields *apperr.Fields) *time.Time {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		fields.Add(name, "Must be a date in YYYY-MM-DD format")
		return nil
	}

	return &t
}

func QueryAmount(q url.Values, name string, fields *apperr.Fields) *decimal.Decimal {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		fields.Add(name, "Must be a positive number")
		return nil
	}

	return &d
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err == nil {
		return t, nil
	}

	ts, tsErr := time.Parse(time.RFC3339, s)
	if tsErr != nil {
		return time.Time{}, err
	}

	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}
