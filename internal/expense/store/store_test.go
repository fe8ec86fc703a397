package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/category"
	categoryStore "github.com/caszofficial/Expense-Control/internal/category/store"
	"github.com/caszofficial/Expense-Control/internal/database/dbtest"
	"github.com/caszofficial/Expense-Control/internal/expense"
	"github.com/caszofficial/Expense-Control/internal/expense/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_ListAndUpdate(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	cats := categoryStore.New(db)
	s := store.New(db)

	food := &category.Category{Name: "Food", Color: "#10b981"}
	require.NoError(t, cats.CreateCategory(ctx, food))

	fixtures := []*expense.Expense{
		{Description: "Lunch", Amount: decimal.RequireFromString("12.50"), CategoryID: &food.ID, Date: date(2024, 1, 10)},
		{Description: "Bus", Amount: decimal.RequireFromString("2.00"), Date: date(2024, 1, 12)},
		{Description: "Dinner", Amount: decimal.RequireFromString("40.00"), CategoryID: &food.ID, Date: date(2024, 2, 1)},
	}

	for _, e := range fixtures {
		require.NoError(t, s.CreateExpense(ctx, e))
	}

	all, err := s.ListExpenses(ctx, expense.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dinner", all[0].Description)
	assert.Equal(t, "Lunch", all[2].Description)
	require.NotNil(t, all[0].Category)
	assert.Equal(t, "Food", all[0].Category.Name)
	assert.Nil(t, all[1].Category)

	start, end := date(2024, 1, 1), date(2024, 1, 31)

	filtered, err := s.ListExpenses(ctx, expense.ListFilter{
		CategoryID: &food.ID,
		StartDate:  &start,
		EndDate:    &end,
		MinAmount:  new(decimal.RequireFromString("12.50")),
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Lunch", filtered[0].Description)

	lunch := fixtures[0]
	before, err := s.GetExpense(ctx, lunch.ID)
	require.NoError(t, err)

	require.NoError(t, s.UpdateExpense(ctx, lunch.ID, expense.UpdateParams{
		Amount: new(decimal.NewFromInt(75)),
	}))

	after, err := s.GetExpense(ctx, lunch.ID)
	require.NoError(t, err)
	assert.True(t, after.Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.CategoryID, after.CategoryID)
	assert.True(t, after.Date.Equal(before.Date))
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))

	require.NoError(t, cats.DeleteCategory(ctx, food.ID))

	orphan, err := s.GetExpense(ctx, lunch.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.CategoryID)
	assert.Nil(t, orphan.Category)

	assert.ErrorIs(t, s.UpdateExpense(ctx, 9999, expense.UpdateParams{Description: new("x")}), expense.ErrNotFound)
	assert.ErrorIs(t, s.DeleteExpense(ctx, 9999), expense.ErrNotFound)
}

func TestStore_ImportRollback(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := store.New(db)

	itx, err := s.BeginImport(ctx)
	require.NoError(t, err)

	require.NoError(t, itx.CreateExpenses(ctx, []*expense.Expense{
		{Description: "A", Amount: decimal.NewFromInt(1), Date: date(2024, 3, 1)},
	}))
	require.NoError(t, itx.Rollback())

	all, err := s.ListExpenses(ctx, expense.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
