// Package seed loads the default categories and a set of sample expenses.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/database"
)

type Category struct {
	Name  string
	Color string
}

// Categories are created unless a category with the same name exists.
var Categories = []Category{
	{Name: "Food", Color: "#10b981"},
	{Name: "Transport", Color: "#3b82f6"},
	{Name: "Entertainment", Color: "#8b5cf6"},
	{Name: "Health", Color: "#ef4444"},
	{Name: "Utilities", Color: "#f59e0b"},
	{Name: "Education", Color: "#06b6d4"},
	{Name: "Shopping", Color: "#ec4899"},
	{Name: "Other", Color: "#6b7280"},
}

type Expense struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	DaysAgo     int
}

// Expenses spread over roughly the last three months.
var Expenses = []Expense{
	{"Supermarket", decimal.NewFromInt(85000), "Food", 2},
	{"Ride to meeting", decimal.NewFromInt(12000), "Transport", 3},
	{"Streaming subscription", decimal.NewFromInt(42000), "Entertainment", 5},
	{"Pharmacy", decimal.NewFromInt(35000), "Health", 7},
	{"Restaurant", decimal.NewFromInt(65000), "Food", 8},
	{"Gas", decimal.NewFromInt(120000), "Transport", 10},

	{"Grocery run", decimal.NewFromInt(150000), "Food", 35},
	{"Movies with friends", decimal.NewFromInt(45000), "Entertainment", 38},
	{"Doctor visit", decimal.NewFromInt(80000), "Health", 40},
	{"Internet and TV", decimal.NewFromInt(95000), "Utilities", 42},
	{"Online course", decimal.NewFromInt(120000), "Education", 45},
	{"New clothes", decimal.NewFromInt(180000), "Shopping", 48},
	{"Gas", decimal.NewFromInt(115000), "Transport", 50},

	{"Monthly groceries", decimal.NewFromInt(200000), "Food", 65},
	{"Music subscription", decimal.NewFromInt(18000), "Entertainment", 68},
	{"Health insurance", decimal.NewFromInt(150000), "Health", 70},
	{"Public utilities", decimal.NewFromInt(135000), "Utilities", 72},
	{"Technical books", decimal.NewFromInt(95000), "Education", 75},
}

// DateFor returns the calendar day daysAgo days before now, at UTC midnight.
func DateFor(now time.Time, daysAgo int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

type Result struct {
	Categories int // newly created
	Expenses   int
}

// Run inserts the seed data in a single transaction. Expense dates are
// relative to now.
func Run(ctx context.Context, db *sql.DB, now time.Time) (Result, error) {
	var res Result

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, c := range Categories {
			r, err := tx.ExecContext(ctx,
				`INSERT INTO categories (name, color) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				c.Name, c.Color,
			)
			if err != nil {
				return fmt.Errorf("inserting category %q: %w", c.Name, err)
			}

			if n, err := r.RowsAffected(); err == nil {
				res.Categories += int(n)
			}
		}

		ids, err := categoryIDs(ctx, tx)
		if err != nil {
			return err
		}

		for _, e := range Expenses {
			id, ok := ids[e.Category]
			if !ok {
				return fmt.Errorf("seed category %q missing", e.Category)
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO expenses (description, amount, category_id, date) VALUES ($1, $2, $3, $4)`,
				e.Description, e.Amount, id, DateFor(now, e.DaysAgo),
			); err != nil {
				return fmt.Errorf("inserting expense %q: %w", e.Description, err)
			}

			res.Expenses++
		}

		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seeding: %w", err)
	}

	return res, nil
}

func categoryIDs(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)

	for rows.Next() {
		var (
			id   int64
			name string
		)

		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		ids[name] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return ids, nil
}
