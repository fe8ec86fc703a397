package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/expense"
	"github.com/caszofficial/Expense-Control/internal/importer"
	"github.com/caszofficial/Expense-Control/internal/memstore"
)

func newImporter(t *testing.T) (*importer.Service, *memstore.Store, *category.Category) {
	t.Helper()

	store := memstore.New()
	categories := category.NewService(store)
	expenses := expense.NewService(store, categories)

	food, err := categories.Create(context.Background(), category.Params{Name: "Food", Color: "#10b981"})
	require.NoError(t, err)

	return importer.NewService(expenses, categories), store, food
}

func TestService_Import(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, store, food := newImporter(t)

		csv := "date;description;amount;category\n2024-01-10;Groceries;-45,90;food\n2024-01-11;Gift;10;\n"

		got, err := svc.Import(context.Background(), strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, &food.ID, got[0].CategoryID)
		assert.Equal(t, "45.90", got[0].Amount.StringFixed(2))
		assert.Nil(t, got[1].CategoryID)

		all, err := store.ListExpenses(context.Background(), expense.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("UnknownCategoryRejectsFile", func(t *testing.T) {
		svc, store, _ := newImporter(t)

		csv := "date,description,amount,category\n2024-01-10,Groceries,45.90,Food\n2024-01-11,Cinema,12,Leisure\n"

		_, err := svc.Import(context.Background(), strings.NewReader(csv))
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "line 3.category", appErr.Fields[0].Field)

		all, err := store.ListExpenses(context.Background(), expense.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
