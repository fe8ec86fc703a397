package category

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every category ordered by name.
func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) Create(ctx context.Context, params Params) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c := &Category{
		Name:  params.Name,
		Color: params.Color,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update replaces the name and color of an existing category.
func (s *Service) Update(ctx context.Context, id int64, params Params) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c := &Category{
		ID:    id,
		Name:  params.Name,
		Color: params.Color,
	}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the category. Expenses that used it keep existing without one.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}
