package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/caszofficial/Expense-Control/internal/database"
	"github.com/caszofficial/Expense-Control/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) MonthlyBuckets(ctx context.Context, limit int) ([]report.MonthBucket, error) {
	query := `
		SELECT date_trunc('month', date)::date AS month, SUM(amount), COUNT(*)
		FROM expenses
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying monthly totals: %w", err)
	}
	defer rows.Close()

	buckets := []report.MonthBucket{}

	for rows.Next() {
		var b report.MonthBucket
		if err := rows.Scan(&b.Start, &b.Total, &b.Count); err != nil {
			return nil, fmt.Errorf("scanning monthly total: %w", err)
		}

		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly totals: %w", err)
	}

	return buckets, nil
}

// CategoryBuckets aggregates the window in a single query so every bucket,
// and therefore the grand total derived from them, sees the same rows.
func (s *Store) CategoryBuckets(ctx context.Context, window report.Window) ([]report.CategoryBucket, error) {
	var args database.Args

	query := `
		SELECT c.id, c.name, c.color, SUM(e.amount), COUNT(e.id)
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id` +
		database.Where(&args,
			database.Compare("e.date", ">=", window.Start),
			database.Compare("e.date", "<=", window.End),
		) + `
		GROUP BY c.id, c.name, c.color
	`

	rows, err := s.db.QueryContext(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("querying category totals: %w", err)
	}
	defer rows.Close()

	buckets := []report.CategoryBucket{}

	for rows.Next() {
		var b report.CategoryBucket
		if err := rows.Scan(&b.CategoryID, &b.Name, &b.Color, &b.Total, &b.Count); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}

	return buckets, nil
}
