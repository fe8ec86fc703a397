package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/expense"
)

type Expenses interface {
	CreateBatch(ctx context.Context, params []expense.CreateParams) ([]*expense.Expense, error)
}

type Categories interface {
	List(ctx context.Context) ([]*category.Category, error)
}

type Service struct {
	expenses   Expenses
	categories Categories
}

func NewService(expenses Expenses, categories Categories) *Service {
	return &Service{expenses: expenses, categories: categories}
}

// Import parses r as an expense CSV and stores every row in one batch.
// Category names are matched case-insensitively against existing categories.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]*expense.Expense, error) {
	decoded, charset, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	rows, err := Parse(decoded)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "parsed expense csv", "rows", len(rows), "charset", charset)

	byName, err := s.categoryIDs(ctx)
	if err != nil {
		return nil, err
	}

	var fields apperr.Fields

	params := make([]expense.CreateParams, 0, len(rows))

	for _, row := range rows {
		p := expense.CreateParams{
			Description: row.Description,
			Amount:      row.Amount,
			Date:        row.Date,
		}

		if row.Category != "" {
			id, ok := byName[strings.ToLower(row.Category)]
			if !ok {
				fields.Add(fmt.Sprintf("line %d.category", row.Line), fmt.Sprintf("Unknown category %q", row.Category))
				continue
			}

			p.CategoryID = new(id)
		}

		params = append(params, p)
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	return s.expenses.CreateBatch(ctx, params)
}

func (s *Service) categoryIDs(ctx context.Context) (map[string]int64, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	byName := make(map[string]int64, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	return byName, nil
}
