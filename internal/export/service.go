package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/caszofficial/Expense-Control/internal/expense"
)

// Header is the first row of every export. It is accepted back by the importer.
var Header = []string{"date", "description", "amount", "category"}

type Expenses interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

// Service writes filtered expense listings as CSV.
type Service struct {
	expenses Expenses
}

func NewService(expenses Expenses) *Service {
	return &Service{expenses: expenses}
}

// WriteCSV writes the expenses matching filter to w, most recent first, and
// returns how many rows were written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter expense.ListFilter) (int, error) {
	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing expenses: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, e := range expenses {
		if err := cw.Write(record(e)); err != nil {
			return 0, fmt.Errorf("writing expense %d: %w", e.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(expenses), nil
}

// Filename names an export after the moment it was taken.
func Filename(now time.Time) string {
	return fmt.Sprintf("expenses_%s.csv", now.Format("20060102_150405"))
}

func record(e *expense.Expense) []string {
	var categoryName string
	if e.Category != nil {
		categoryName = e.Category.Name
	}

	return []string{
		e.Date.Format(time.DateOnly),
		e.Description,
		e.Amount.StringFixed(2),
		categoryName,
	}
}
