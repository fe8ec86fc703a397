package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/report"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_MonthlyTotals(t *testing.T) {
	buckets := []report.MonthBucket{
		{Start: month(2024, time.January), Total: dec("150"), Count: 2},
		{Start: month(2024, time.February), Total: dec("200"), Count: 1},
		{Start: month(2023, time.November), Total: dec("10"), Count: 1},
	}

	type testCase struct {
		name      string
		limit     int
		setupMock func(m *report.MockRepository)
		want      []report.MonthlyTotal
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:  "MostRecentFirst",
			limit: 2,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().MonthlyBuckets(gomock.Any(), 2).Return(buckets, nil)
			},
			want: []report.MonthlyTotal{
				{Month: "February", Year: 2024, Total: dec("200"), Count: 1},
				{Month: "January", Year: 2024, Total: dec("150"), Count: 2},
			},
		},
		{
			name:  "LimitOne",
			limit: 1,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().MonthlyBuckets(gomock.Any(), 1).Return(buckets, nil)
			},
			want: []report.MonthlyTotal{
				{Month: "February", Year: 2024, Total: dec("200"), Count: 1},
			},
		},
		{
			name:  "NoData",
			limit: 12,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().MonthlyBuckets(gomock.Any(), 12).Return(nil, nil)
			},
			want: []report.MonthlyTotal{},
		},
		{
			name:     "LimitZero",
			limit:    0,
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name:     "LimitTooLarge",
			limit:    report.MaxMonthLimit + 1,
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name:  "RepoError",
			limit: 3,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().MonthlyBuckets(gomock.Any(), 3).Return(nil, errors.New("db error"))
			},
			wantKind: apperr.KindInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := report.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := report.NewService(repo)
			got, err := svc.MonthlyTotals(context.Background(), tt.limit)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.limit)
		})
	}
}

func TestService_CategoryTotals(t *testing.T) {
	food, transport := int64(1), int64(2)

	t.Run("WorkedExample", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		start, end := month(2024, time.January), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		window := report.Window{Start: &start, End: &end}

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().CategoryBuckets(gomock.Any(), window).Return([]report.CategoryBucket{
			{CategoryID: &transport, Name: new("Transport"), Color: new("#3b82f6"), Total: dec("50"), Count: 1},
			{CategoryID: &food, Name: new("Food"), Color: new("#10b981"), Total: dec("100"), Count: 1},
		}, nil)

		got, err := report.NewService(repo).CategoryTotals(context.Background(), window)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Food", got[0].CategoryName)
		assert.Equal(t, "100", got[0].Total.String())
		assert.Equal(t, int64(1), got[0].Count)
		assert.Equal(t, "66.67", got[0].Percentage.StringFixed(2))

		assert.Equal(t, "Transport", got[1].CategoryName)
		assert.Equal(t, "33.33", got[1].Percentage.StringFixed(2))
	})

	t.Run("EmptyWindow", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().CategoryBuckets(gomock.Any(), report.Window{}).Return([]report.CategoryBucket{}, nil)

		got, err := report.NewService(repo).CategoryTotals(context.Background(), report.Window{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("UncategorizedSentinelAndTies", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().CategoryBuckets(gomock.Any(), gomock.Any()).Return([]report.CategoryBucket{
			{Total: dec("10"), Count: 2},
			{CategoryID: &transport, Name: new("Transport"), Color: new("#3b82f6"), Total: dec("10"), Count: 1},
			{CategoryID: &food, Name: new("Food"), Color: new("#10b981"), Total: dec("10"), Count: 1},
		}, nil)

		got, err := report.NewService(repo).CategoryTotals(context.Background(), report.Window{})
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, &food, got[0].CategoryID)
		assert.Equal(t, &transport, got[1].CategoryID)
		assert.Nil(t, got[2].CategoryID)
		assert.Equal(t, report.UncategorizedName, got[2].CategoryName)
		assert.Equal(t, report.UncategorizedColor, got[2].CategoryColor)
	})

	t.Run("PercentagesSumToHundred", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		ids := []int64{1, 2, 3, 4}
		buckets := []report.CategoryBucket{
			{CategoryID: &ids[0], Name: new("A"), Color: new("#000000"), Total: dec("33.33"), Count: 1},
			{CategoryID: &ids[1], Name: new("B"), Color: new("#000000"), Total: dec("33.33"), Count: 1},
			{CategoryID: &ids[2], Name: new("C"), Color: new("#000000"), Total: dec("33.34"), Count: 1},
			{CategoryID: &ids[3], Name: new("D"), Color: new("#000000"), Total: dec("0.01"), Count: 1},
		}

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().CategoryBuckets(gomock.Any(), gomock.Any()).Return(buckets, nil)

		got, err := report.NewService(repo).CategoryTotals(context.Background(), report.Window{})
		require.NoError(t, err)

		sum := decimal.Zero
		for _, c := range got {
			sum = sum.Add(c.Percentage)
		}

		tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(len(got))))
		assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(tolerance), "sum %s", sum)

		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].Total.GreaterThanOrEqual(got[i].Total))
		}
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().CategoryBuckets(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

		_, err := report.NewService(repo).CategoryTotals(context.Background(), report.Window{})
		assert.Error(t, err)
	})
}
