package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/category/store"
	"github.com/caszofficial/Expense-Control/internal/database/dbtest"
)

func TestStore_CRUD(t *testing.T) {
	db := dbtest.Open(t)
	s := store.New(db)
	ctx := context.Background()

	food := &category.Category{Name: "Food", Color: "#10b981"}
	require.NoError(t, s.CreateCategory(ctx, food))
	assert.NotZero(t, food.ID)
	assert.False(t, food.CreatedAt.IsZero())

	bills := &category.Category{Name: "Bills", Color: "#ef4444"}
	require.NoError(t, s.CreateCategory(ctx, bills))

	err := s.CreateCategory(ctx, &category.Category{Name: "Food", Color: "#000000"})
	assert.ErrorIs(t, err, category.ErrDuplicateName)

	list, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bills", list[0].Name)
	assert.Equal(t, "Food", list[1].Name)

	food.Name = "Groceries"
	require.NoError(t, s.UpdateCategory(ctx, food))

	got, err := s.GetCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)

	bills.Name = "Groceries"
	assert.ErrorIs(t, s.UpdateCategory(ctx, bills), category.ErrDuplicateName)

	assert.ErrorIs(t, s.UpdateCategory(ctx, &category.Category{ID: 999, Name: "X", Color: "#000000"}), category.ErrNotFound)

	require.NoError(t, s.DeleteCategory(ctx, food.ID))
	assert.ErrorIs(t, s.DeleteCategory(ctx, food.ID), category.ErrNotFound)

	_, err = s.GetCategory(ctx, food.ID)
	assert.ErrorIs(t, err, category.ErrNotFound)
}
