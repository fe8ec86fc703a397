package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/expense"
	"github.com/caszofficial/Expense-Control/internal/report"
)

func (s *Store) MonthlyBuckets(_ context.Context, limit int) ([]report.MonthBucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byMonth := make(map[time.Time]*report.MonthBucket)

	for _, e := range s.expenses {
		start := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)

		b, ok := byMonth[start]
		if !ok {
			b = &report.MonthBucket{Start: start}
			byMonth[start] = b
		}

		b.Total = b.Total.Add(e.Amount)
		b.Count++
	}

	buckets := make([]report.MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}

	slices.SortFunc(buckets, func(a, b report.MonthBucket) int {
		return b.Start.Compare(a.Start)
	})

	if len(buckets) > limit {
		buckets = buckets[:limit]
	}

	return buckets, nil
}

func (s *Store) CategoryBuckets(_ context.Context, window report.Window) ([]report.CategoryBucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := expense.ListFilter{StartDate: window.Start, EndDate: window.End}

	const uncategorized = int64(0)

	byCategory := make(map[int64]*report.CategoryBucket)

	for _, e := range s.expenses {
		if !filter.Matches(e) {
			continue
		}

		key := uncategorized
		if e.CategoryID != nil {
			key = *e.CategoryID
		}

		b, ok := byCategory[key]
		if !ok {
			b = &report.CategoryBucket{Total: decimal.Zero}

			if c, found := s.categories[key]; found {
				b.CategoryID = new(c.ID)
				b.Name = new(c.Name)
				b.Color = new(c.Color)
			}

			byCategory[key] = b
		}

		b.Total = b.Total.Add(e.Amount)
		b.Count++
	}

	buckets := make([]report.CategoryBucket, 0, len(byCategory))
	for _, b := range byCategory {
		buckets = append(buckets, *b)
	}

	return buckets, nil
}
