package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	CreateExpense(ctx context.Context, e *Expense) error
	UpdateExpense(ctx context.Context, id int64, params UpdateParams) error
	DeleteExpense(ctx context.Context, id int64) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx writes a batch of expenses atomically.
type ImportTx interface {
	CreateExpenses(ctx context.Context, expenses []*Expense) error
	Commit() error
	Rollback() error
}

// Categories resolves category references before expenses point at them.
type Categories interface {
	Get(ctx context.Context, id int64) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories Categories
}

func NewService(repo Repository, categories Categories) *Service {
	return &Service{repo: repo, categories: categories}
}

// List returns the expenses matching filter, most recent first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	info, err := s.lookupCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, err
	}

	e := paramsToExpense(params)
	e.Category = info

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// Update applies a partial update and returns the stored result.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetExpense(ctx, id); err != nil {
		return nil, err
	}

	if params.Category.Set {
		if _, err := s.lookupCategory(ctx, params.Category.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateExpense(ctx, id, params); err != nil {
		return nil, err
	}

	return s.repo.GetExpense(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteExpense(ctx, id)
}

// CreateBatch validates every entry and inserts them in one transaction.
// Nothing is written when any entry is invalid.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return []*Expense{}, nil
	}

	infos := make(map[int64]*CategoryInfo)

	expenses := make([]*Expense, len(params))
	for i := range params {
		if err := params[i].Validate(); err != nil {
			return nil, rowError(i, err)
		}

		e := paramsToExpense(params[i])

		if id := params[i].CategoryID; id != nil {
			info, ok := infos[*id]
			if !ok {
				var err error
				if info, err = s.lookupCategory(ctx, id); err != nil {
					return nil, err
				}

				infos[*id] = info
			}

			e.Category = info
		}

		expenses[i] = e
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return expenses, nil
}

// lookupCategory returns nil for a nil id and ErrCategoryNotFound for an
// id that does not exist.
func (s *Service) lookupCategory(ctx context.Context, id *int64) (*CategoryInfo, error) {
	if id == nil {
		return nil, nil
	}

	c, err := s.categories.Get(ctx, *id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}

		return nil, fmt.Errorf("looking up category: %w", err)
	}

	return &CategoryInfo{Name: c.Name, Color: c.Color}, nil
}

// rowError prefixes the field names of a validation error with the row index.
func rowError(i int, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}

	return apperr.Validation(apperr.Fields(appErr.Fields).Prefix(fmt.Sprintf("rows[%d].", i))...)
}

func paramsToExpense(p CreateParams) *Expense {
	return &Expense{
		Description: p.Description,
		Amount:      p.Amount,
		CategoryID:  p.CategoryID,
		Date:        p.Date,
	}
}
