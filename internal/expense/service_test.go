package expense_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/expense"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     expense.CreateParams
		setupMock  func(repo *expense.MockRepository, cats *expense.MockCategories)
		wantKind   apperr.Kind
		wantErr    bool
		wantFields []string
		check      func(t *testing.T, got *expense.Expense)
	}

	tests := []testCase{
		{
			name: "SuccessWithCategory",
			params: expense.CreateParams{
				Description: "Groceries",
				Amount:      decimal.RequireFromString("45.555"),
				CategoryID:  new(int64(1)),
				Date:        day,
			},
			setupMock: func(repo *expense.MockRepository, cats *expense.MockCategories) {
				cats.EXPECT().
					Get(gomock.Any(), int64(1)).
					Return(&category.Category{ID: 1, Name: "Food", Color: "#10b981"}, nil)
				repo.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = 10
						return nil
					})
			},
			check: func(t *testing.T, got *expense.Expense) {
				assert.Equal(t, int64(10), got.ID)
				assert.Equal(t, "45.56", got.Amount.StringFixed(2))
				require.NotNil(t, got.Category)
				assert.Equal(t, "Food", got.Category.Name)
			},
		},
		{
			name: "SuccessWithoutCategory",
			params: expense.CreateParams{
				Description: "Cash",
				Amount:      decimal.NewFromInt(5),
				Date:        day,
			},
			setupMock: func(repo *expense.MockRepository, _ *expense.MockCategories) {
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *expense.Expense) {
				assert.Nil(t, got.CategoryID)
				assert.Nil(t, got.Category)
			},
		},
		{
			name: "MissingCategoryWritesNothing",
			params: expense.CreateParams{
				Description: "Lunch",
				Amount:      decimal.NewFromInt(12),
				CategoryID:  new(int64(99)),
				Date:        day,
			},
			setupMock: func(_ *expense.MockRepository, cats *expense.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, category.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindReference,
		},
		{
			name: "CategoryLookupFailure",
			params: expense.CreateParams{
				Description: "Lunch",
				Amount:      decimal.NewFromInt(12),
				CategoryID:  new(int64(3)),
				Date:        day,
			},
			setupMock: func(_ *expense.MockRepository, cats *expense.MockCategories) {
				cats.EXPECT().Get(gomock.Any(), int64(3)).Return(nil, errors.New("connection reset"))
			},
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
		{
			name: "InvalidFields",
			params: expense.CreateParams{
				Description: "  ",
				Amount:      decimal.RequireFromString("0.001"),
				CategoryID:  new(int64(0)),
			},
			wantErr:    true,
			wantKind:   apperr.KindValidation,
			wantFields: []string{"description", "amount", "category_id", "date"},
		},
		{
			name: "DescriptionTooLong",
			params: expense.CreateParams{
				Description: strings.Repeat("x", 256),
				Amount:      decimal.NewFromInt(1),
				Date:        day,
			},
			wantErr:    true,
			wantKind:   apperr.KindValidation,
			wantFields: []string{"description"},
		},
		{
			name: "AmountTooLarge",
			params: expense.CreateParams{
				Description: "House",
				Amount:      decimal.RequireFromString("100000000"),
				Date:        day,
			},
			wantErr:    true,
			wantKind:   apperr.KindValidation,
			wantFields: []string{"amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := expense.NewMockRepository(ctrl)
			cats := expense.NewMockCategories(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, cats)
			}

			svc := expense.NewService(repo, cats)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				if tt.wantFields != nil {
					assert.Equal(t, tt.wantFields, fieldNames(t, err))
				}

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	stored := &expense.Expense{
		ID:          5,
		Description: "Coffee",
		Amount:      decimal.NewFromInt(50),
		CategoryID:  new(int64(1)),
		Date:        day,
	}

	type testCase struct {
		name      string
		params    expense.UpdateParams
		setupMock func(repo *expense.MockRepository, cats *expense.MockCategories)
		wantKind  apperr.Kind
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "EmptyRejectedBeforeStore",
			params:   expense.UpdateParams{},
			wantKind: apperr.KindValidation,
			wantErr:  expense.ErrEmptyUpdate,
		},
		{
			name:   "AmountOnly",
			params: expense.UpdateParams{Amount: new(decimal.NewFromInt(75))},
			setupMock: func(repo *expense.MockRepository, _ *expense.MockCategories) {
				gomock.InOrder(
					repo.EXPECT().GetExpense(gomock.Any(), int64(5)).Return(stored, nil),
					repo.EXPECT().
						UpdateExpense(gomock.Any(), int64(5), gomock.Any()).
						DoAndReturn(func(_ context.Context, _ int64, p expense.UpdateParams) error {
							assert.True(t, p.Amount.Equal(decimal.NewFromInt(75)))
							assert.Nil(t, p.Description)
							assert.Nil(t, p.Date)
							assert.False(t, p.Category.Set)

							return nil
						}),
					repo.EXPECT().GetExpense(gomock.Any(), int64(5)).Return(stored, nil),
				)
			},
		},
		{
			name:   "ClearCategorySkipsLookup",
			params: expense.UpdateParams{Category: expense.CategoryChange{Set: true}},
			setupMock: func(repo *expense.MockRepository, _ *expense.MockCategories) {
				repo.EXPECT().GetExpense(gomock.Any(), int64(5)).Return(stored, nil).Times(2)
				repo.EXPECT().UpdateExpense(gomock.Any(), int64(5), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "NewCategoryMissing",
			params: expense.UpdateParams{Category: expense.CategoryChange{Set: true, ID: new(int64(42))}},
			setupMock: func(repo *expense.MockRepository, cats *expense.MockCategories) {
				repo.EXPECT().GetExpense(gomock.Any(), int64(5)).Return(stored, nil)
				cats.EXPECT().Get(gomock.Any(), int64(42)).Return(nil, category.ErrNotFound)
			},
			wantKind: apperr.KindReference,
			wantErr:  expense.ErrCategoryNotFound,
		},
		{
			name:   "UnknownExpense",
			params: expense.UpdateParams{Description: new("Tea")},
			setupMock: func(repo *expense.MockRepository, _ *expense.MockCategories) {
				repo.EXPECT().GetExpense(gomock.Any(), int64(5)).Return(nil, expense.ErrNotFound)
			},
			wantKind: apperr.KindNotFound,
			wantErr:  expense.ErrNotFound,
		},
		{
			name:     "InvalidAmount",
			params:   expense.UpdateParams{Amount: new(decimal.NewFromInt(-3))},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := expense.NewMockRepository(ctrl)
			cats := expense.NewMockCategories(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, cats)
			}

			svc := expense.NewService(repo, cats)
			got, err := svc.Update(context.Background(), 5, tt.params)

			if tt.wantKind != apperr.KindInternal {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored, got)
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	valid := []expense.CreateParams{
		{Description: "A", Amount: decimal.NewFromInt(1), Date: day},
		{Description: "B", Amount: decimal.NewFromInt(2), CategoryID: new(int64(1)), Date: day},
		{Description: "C", Amount: decimal.NewFromInt(3), CategoryID: new(int64(1)), Date: day},
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := expense.NewMockRepository(ctrl)
		cats := expense.NewMockCategories(ctrl)
		itx := expense.NewMockImportTx(ctrl)

		cats.EXPECT().
			Get(gomock.Any(), int64(1)).
			Return(&category.Category{ID: 1, Name: "Food", Color: "#10b981"}, nil).
			Times(1)

		gomock.InOrder(
			repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil),
			itx.EXPECT().
				CreateExpenses(gomock.Any(), gomock.Len(3)).
				Return(nil),
			itx.EXPECT().Commit().Return(nil),
			itx.EXPECT().Rollback().Return(nil),
		)

		svc := expense.NewService(repo, cats)
		got, err := svc.CreateBatch(context.Background(), valid)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Food", got[2].Category.Name)
	})

	t.Run("InvalidRowWritesNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := expense.NewMockRepository(ctrl)
		cats := expense.NewMockCategories(ctrl)

		params := []expense.CreateParams{
			valid[0],
			{Description: "", Amount: decimal.NewFromInt(1), Date: day},
		}

		svc := expense.NewService(repo, cats)
		got, err := svc.CreateBatch(context.Background(), params)

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, []string{"rows[1].description"}, fieldNames(t, err))
	})

	t.Run("InsertFailureRollsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := expense.NewMockRepository(ctrl)
		cats := expense.NewMockCategories(ctrl)
		itx := expense.NewMockImportTx(ctrl)

		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
		itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
		itx.EXPECT().Rollback().Return(nil)

		svc := expense.NewService(repo, cats)
		_, err := svc.CreateBatch(context.Background(), valid[:1])

		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		svc := expense.NewService(expense.NewMockRepository(ctrl), expense.NewMockCategories(ctrl))
		got, err := svc.CreateBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)

	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}

	return names
}
