// Package memstore keeps categories and expenses in memory. It satisfies the
// category, expense and report repositories with the same observable
// behavior as the PostgreSQL stores and backs handler and client tests.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/expense"
)

var (
	ErrInvalidReference = apperr.Reference("Invalid reference to related resource")
	ErrCheckViolation   = apperr.Invalid("Value violates a check constraint")
)

type Option func(*Store)

// WithClock overrides the source of created_at and updated_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	nextCategoryID int64
	nextExpenseID  int64

	categories map[int64]*category.Category
	expenses   map[int64]*expense.Expense
}

func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		categories: make(map[int64]*category.Category),
		expenses:   make(map[int64]*expense.Expense),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) ListCategories(_ context.Context) ([]*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, new(*c))
	}

	slices.SortFunc(out, func(a, b *category.Category) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, category.ErrNotFound
	}

	return new(*c), nil
}

func (s *Store) CreateCategory(_ context.Context, c *category.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(c.Name, 0) {
		return category.ErrDuplicateName
	}

	s.nextCategoryID++
	c.ID = s.nextCategoryID
	c.CreatedAt = s.now()

	s.categories[c.ID] = new(*c)

	return nil
}

func (s *Store) UpdateCategory(_ context.Context, c *category.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.categories[c.ID]
	if !ok {
		return category.ErrNotFound
	}

	if s.nameTaken(c.Name, c.ID) {
		return category.ErrDuplicateName
	}

	stored.Name = c.Name
	stored.Color = c.Color
	c.CreatedAt = stored.CreatedAt

	return nil
}

// DeleteCategory removes the category and detaches it from its expenses.
func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return category.ErrNotFound
	}

	delete(s.categories, id)

	for _, e := range s.expenses {
		if e.CategoryID != nil && *e.CategoryID == id {
			e.CategoryID = nil
		}
	}

	return nil
}

// nameTaken must be called with the lock held.
func (s *Store) nameTaken(name string, except int64) bool {
	for _, c := range s.categories {
		if c.ID != except && c.Name == name {
			return true
		}
	}

	return false
}

func (s *Store) ListExpenses(_ context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*expense.Expense{}

	for _, e := range s.expenses {
		if !filter.Matches(e) {
			continue
		}

		out = append(out, s.joined(e))
	}

	slices.SortFunc(out, func(a, b *expense.Expense) int {
		return cmp.Or(
			b.Date.Compare(a.Date),
			b.CreatedAt.Compare(a.CreatedAt),
			cmp.Compare(b.ID, a.ID),
		)
	})

	return out, nil
}

func (s *Store) GetExpense(_ context.Context, id int64) (*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, expense.ErrNotFound
	}

	return s.joined(e), nil
}

func (s *Store) CreateExpense(_ context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(e)
}

// check mirrors the table constraints. It must be called with the lock held.
func (s *Store) check(e *expense.Expense) error {
	if !e.Amount.IsPositive() {
		return ErrCheckViolation
	}

	if e.CategoryID != nil {
		if _, ok := s.categories[*e.CategoryID]; !ok {
			return ErrInvalidReference
		}
	}

	return nil
}

// insert must be called with the write lock held.
func (s *Store) insert(e *expense.Expense) error {
	if err := s.check(e); err != nil {
		return err
	}

	s.nextExpenseID++

	now := s.now()
	e.ID = s.nextExpenseID
	e.CreatedAt = now
	e.UpdatedAt = now

	stored := *e
	stored.Category = nil
	stored.CategoryID = copyID(e.CategoryID)

	s.expenses[e.ID] = &stored

	return nil
}

func (s *Store) UpdateExpense(_ context.Context, id int64, params expense.UpdateParams) error {
	if params.IsEmpty() {
		return expense.ErrEmptyUpdate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return expense.ErrNotFound
	}

	if params.Category.Set && params.Category.ID != nil {
		if _, ok := s.categories[*params.Category.ID]; !ok {
			return ErrInvalidReference
		}
	}

	if params.Amount != nil && !params.Amount.IsPositive() {
		return ErrCheckViolation
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if params.Amount != nil {
		e.Amount = *params.Amount
	}

	if params.Category.Set {
		e.CategoryID = copyID(params.Category.ID)
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	e.UpdatedAt = s.now()

	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return expense.ErrNotFound
	}

	delete(s.expenses, id)

	return nil
}

// joined copies e and attaches its category, like the LEFT JOIN of the SQL store.
// It must be called with the lock held.
func (s *Store) joined(e *expense.Expense) *expense.Expense {
	out := *e
	out.CategoryID = copyID(e.CategoryID)
	out.Category = nil

	if e.CategoryID != nil {
		if c, ok := s.categories[*e.CategoryID]; ok {
			out.Category = &expense.CategoryInfo{Name: c.Name, Color: c.Color}
		}
	}

	return &out
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}

	return new(*id)
}

type importTx struct {
	store  *Store
	staged []*expense.Expense
	done   bool
}

// BeginImport stages inserts until Commit, which applies them all or none.
func (s *Store) BeginImport(_ context.Context) (expense.ImportTx, error) {
	return &importTx{store: s}, nil
}

func (itx *importTx) CreateExpenses(_ context.Context, expenses []*expense.Expense) error {
	itx.staged = append(itx.staged, expenses...)
	return nil
}

func (itx *importTx) Commit() error {
	if itx.done {
		return nil
	}

	itx.done = true

	s := itx.store

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range itx.staged {
		if err := s.check(e); err != nil {
			return err
		}
	}

	for _, e := range itx.staged {
		if err := s.insert(e); err != nil {
			return err
		}
	}

	return nil
}

func (itx *importTx) Rollback() error {
	itx.done = true
	itx.staged = nil

	return nil
}
