package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caszofficial/Expense-Control/internal/category"
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

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category
	if err := s.Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

// translate maps a unique violation on categories.name to the domain error.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return category.ErrDuplicateName
	}

	return err
}

func (s *Store) ListCategories(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT id, name, color, created_at FROM categories ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	query := `SELECT id, name, color, created_at FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, color)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Color).Scan(&c.ID, &c.CreatedAt); err != nil {
		if err := translate(err); errors.Is(err, category.ErrDuplicateName) {
			return err
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, color = $2
		WHERE id = $3
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Color, c.ID).Scan(&c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		if err := translate(err); errors.Is(err, category.ErrDuplicateName) {
			return err
		}

		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

// DeleteCategory removes the row; the expenses FK nulls their category_id.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted category: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}
