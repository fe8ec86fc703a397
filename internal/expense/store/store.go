package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/caszofficial/Expense-Control/internal/database"
	"github.com/caszofficial/Expense-Control/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpense reads a row in selectExpenseColumns order.
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var categoryName, categoryColor sql.NullString

	if err := s.Scan(
		&e.ID, &e.Description, &e.Amount, &e.CategoryID, &e.Date,
		&e.CreatedAt, &e.UpdatedAt,
		&categoryName, &categoryColor,
	); err != nil {
		return nil, err
	}

	if e.CategoryID != nil && categoryName.Valid {
		e.Category = &expense.CategoryInfo{
			Name:  categoryName.String,
			Color: categoryColor.String,
		}
	}

	return &e, nil
}

const selectExpenseColumns = `
	e.id, e.description, e.amount, e.category_id, e.date,
	e.created_at, e.updated_at, c.name AS category_name, c.color AS category_color
`

const fromExpenses = `
	FROM expenses e
	LEFT JOIN categories c ON e.category_id = c.id
`

// filterPredicates lists one optional predicate per filter field.
func filterPredicates(f expense.ListFilter) []database.Predicate {
	return []database.Predicate{
		database.Compare("e.category_id", "=", f.CategoryID),
		database.Compare("e.date", ">=", f.StartDate),
		database.Compare("e.date", "<=", f.EndDate),
		database.Compare("e.amount", ">=", f.MinAmount),
		database.Compare("e.amount", "<=", f.MaxAmount),
	}
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	var args database.Args

	query := `SELECT ` + selectExpenseColumns + fromExpenses +
		database.Where(&args, filterPredicates(filter)...) +
		` ORDER BY e.date DESC, e.created_at DESC, e.id DESC`

	rows, err := s.db.QueryContext(ctx, query, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*expense.Expense{}

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}

func (s *Store) GetExpense(ctx context.Context, id int64) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + fromExpenses + ` WHERE e.id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

const insertExpense = `
	INSERT INTO expenses (description, amount, category_id, date)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
`

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, db queryRower, e *expense.Expense) error {
	return db.QueryRowContext(ctx, insertExpense,
		e.Description,
		e.Amount,
		e.CategoryID,
		e.Date,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	if err := insert(ctx, s.db, e); err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

// UpdateExpense writes only the fields set in params. The updated_at trigger
// refreshes the timestamp.
func (s *Store) UpdateExpense(ctx context.Context, id int64, params expense.UpdateParams) error {
	var args database.Args

	set := database.NewAssignments(&args)

	if params.Description != nil {
		set.Set("description", *params.Description)
	}

	if params.Amount != nil {
		set.Set("amount", *params.Amount)
	}

	if params.Category.Set {
		set.Set("category_id", params.Category.ID)
	}

	if params.Date != nil {
		set.Set("date", *params.Date)
	}

	if set.Len() == 0 {
		return expense.ErrEmptyUpdate
	}

	query := `UPDATE expenses SET ` + set.String() + ` WHERE id = ` + args.Add(id)

	res, err := s.db.ExecContext(ctx, query, args.Values()...)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated expense: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted expense: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateExpenses(ctx context.Context, expenses []*expense.Expense) error {
	for _, e := range expenses {
		if err := insert(ctx, itx.tx, e); err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	return nil
}
