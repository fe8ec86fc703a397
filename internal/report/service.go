package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	MonthlyBuckets(ctx context.Context, limit int) ([]MonthBucket, error)
	CategoryBuckets(ctx context.Context, window Window) ([]CategoryBucket, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var hundred = decimal.NewFromInt(100)

// ValidateLimit checks a monthly limit against 1..MaxMonthLimit.
func ValidateLimit(limit int) error {
	if limit < 1 || limit > MaxMonthLimit {
		return apperr.Validation(apperr.FieldError{
			Field:   "limit",
			Message: fmt.Sprintf("Limit must be between 1 and %d", MaxMonthLimit),
		})
	}

	return nil
}

// MonthlyTotals returns at most limit months that have expenses, most recent first.
func (s *Service) MonthlyTotals(ctx context.Context, limit int) ([]MonthlyTotal, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}

	buckets, err := s.repo.MonthlyBuckets(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading monthly buckets: %w", err)
	}

	slices.SortFunc(buckets, func(a, b MonthBucket) int {
		return b.Start.Compare(a.Start)
	})

	totals := make([]MonthlyTotal, 0, min(len(buckets), limit))

	for _, b := range buckets {
		if len(totals) == limit {
			break
		}

		if b.Count == 0 {
			continue
		}

		totals = append(totals, MonthlyTotal{
			Month: b.Start.Month().String(),
			Year:  b.Start.Year(),
			Total: b.Total,
			Count: b.Count,
		})
	}

	return totals, nil
}

// CategoryTotals returns per-category totals for the window with each
// category's share of the window's grand total. An empty window yields an
// empty slice.
func (s *Service) CategoryTotals(ctx context.Context, window Window) ([]CategoryTotal, error) {
	buckets, err := s.repo.CategoryBuckets(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("loading category buckets: %w", err)
	}

	grand := decimal.Zero
	for _, b := range buckets {
		grand = grand.Add(b.Total)
	}

	if !grand.IsPositive() {
		return []CategoryTotal{}, nil
	}

	totals := make([]CategoryTotal, 0, len(buckets))

	for _, b := range buckets {
		if b.Count == 0 {
			continue
		}

		totals = append(totals, CategoryTotal{
			CategoryID:    b.CategoryID,
			CategoryName:  valueOr(b.Name, UncategorizedName),
			CategoryColor: valueOr(b.Color, UncategorizedColor),
			Total:         b.Total,
			Count:         b.Count,
			Percentage:    b.Total.Mul(hundred).Div(grand).Round(2),
		})
	}

	slices.SortFunc(totals, compareCategoryTotals)

	return totals, nil
}

// compareCategoryTotals orders by total descending, then category id
// ascending, with the uncategorized bucket after every category it ties with.
func compareCategoryTotals(a, b CategoryTotal) int {
	if c := b.Total.Cmp(a.Total); c != 0 {
		return c
	}

	switch {
	case a.CategoryID == nil && b.CategoryID == nil:
		return 0
	case a.CategoryID == nil:
		return 1
	case b.CategoryID == nil:
		return -1
	}

	return cmp.Compare(*a.CategoryID, *b.CategoryID)
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}

	return *s
}
