package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/client"
)

func TestSummarize(t *testing.T) {
	expenses := []client.Expense{
		{Amount: decimal.NewFromInt(10)},
		{Amount: decimal.NewFromInt(20)},
	}

	type testCase struct {
		name      string
		expenses  []client.Expense
		monthly   []client.MonthlyTotal
		wantTotal string
		wantAvg   string
		wantTrend *string
	}

	tests := []testCase{
		{
			name:     "WithTrend",
			expenses: expenses,
			monthly: []client.MonthlyTotal{
				{Month: "February", Year: 2024, Total: decimal.NewFromInt(200)},
				{Month: "January", Year: 2024, Total: decimal.NewFromInt(150)},
			},
			wantTotal: "30",
			wantAvg:   "15",
			wantTrend: new("33.3"),
		},
		{
			name:     "SingleMonth",
			expenses: expenses,
			monthly: []client.MonthlyTotal{
				{Month: "February", Year: 2024, Total: decimal.NewFromInt(200)},
			},
			wantTotal: "30",
			wantAvg:   "15",
		},
		{
			name:      "Empty",
			wantTotal: "0",
			wantAvg:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.expenses, tt.monthly)

			assert.Equal(t, tt.wantTotal, s.Total.String())
			assert.Equal(t, tt.wantAvg, s.Average.String())
			assert.Equal(t, len(tt.expenses), s.Count)

			if tt.wantTrend == nil {
				assert.Nil(t, s.Trend)
				return
			}

			require.NotNil(t, s.Trend)
			assert.Equal(t, *tt.wantTrend, s.Trend.StringFixed(1))
			assert.Equal(t, "February", s.Latest.Month)
		})
	}
}

func TestMonthlyBars(t *testing.T) {
	monthly := []client.MonthlyTotal{
		{Month: "February", Year: 2024, Total: decimal.NewFromInt(200)},
		{Month: "January", Year: 2024, Total: decimal.NewFromInt(100)},
		{Month: "December", Year: 2023, Total: decimal.RequireFromString("0.5")},
	}

	bars := MonthlyBars(monthly, 10)
	require.Len(t, bars, 3)

	assert.Equal(t, "Dec 2023", bars[0].Label)
	assert.Equal(t, 1, bars[0].Width)
	assert.Equal(t, "Jan 2024", bars[1].Label)
	assert.Equal(t, 5, bars[1].Width)
	assert.Equal(t, "Feb 2024", bars[2].Label)
	assert.Equal(t, 10, bars[2].Width)
}

func TestTimeframe_Range(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	type testCase struct {
		timeframe Timeframe
		want      string
	}

	tests := []testCase{
		{timeframe: TimeframeThisMonth, want: "2024-03-01 to 2024-03-15"},
		{timeframe: TimeframeLastMonth, want: "2024-02-01 to 2024-02-29"},
		{timeframe: TimeframeLast3Months, want: "2024-01-01 to 2024-03-15"},
		{timeframe: TimeframeThisYear, want: "2024-01-01 to 2024-03-15"},
		{timeframe: TimeframeAll, want: "all time"},
	}

	for _, tt := range tests {
		t.Run(tt.timeframe.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.timeframe.Range(now).String())
		})
	}

	assert.Equal(t, TimeframeThisMonth, TimeframeAll.Next())
}

func TestParseCustomRange(t *testing.T) {
	r, err := parseCustomRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 to 2024-01-31", r.String())

	_, err = parseCustomRange("2024-02-01", "2024-01-31")
	assert.Error(t, err)

	_, err = parseCustomRange("01/02/2024", "2024-01-31")
	assert.Error(t, err)
}

func TestFilterForm_ToFilter(t *testing.T) {
	f := filterForm{CategoryID: 3, StartDate: "2024-01-01", MinAmount: " 10.5 "}.toFilter()

	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(3), *f.CategoryID)
	require.NotNil(t, f.StartDate)
	assert.Equal(t, "2024-01-01", f.StartDate.String())
	assert.Nil(t, f.EndDate)
	require.NotNil(t, f.MinAmount)
	assert.Equal(t, "10.5", f.MinAmount.String())
	assert.Nil(t, f.MaxAmount)

	assert.Equal(t, client.ExpenseFilter{}, filterForm{}.toFilter())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatAmount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "950", FormatCompact(decimal.NewFromInt(950)))
	assert.Equal(t, "1.5k", FormatCompact(decimal.NewFromInt(1500)))
	assert.Equal(t, "2.0M", FormatCompact(decimal.NewFromInt(2_000_000)))
	assert.Equal(t, "2024-03-01", FormatDate(client.NewDate(2024, 3, 1)))
}
