package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/client"
	"github.com/caszofficial/Expense-Control/internal/http/apitest"
)

type server struct {
	*httptest.Server
	gets atomic.Int64
}

func newServer(t *testing.T) *server {
	t.Helper()

	api := apitest.New(t)
	s := &server{}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			s.gets.Add(1)
		}

		api.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

func newClient(s *server, opts ...client.Option) *client.Client {
	return client.New(s.URL+"/api/", append([]client.Option{client.WithHTTPClient(s.Client())}, opts...)...)
}

func TestClient_Health(t *testing.T) {
	s := newServer(t)

	h, err := newClient(s).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.True(t, apitest.Now.Equal(h.Timestamp))
}

func TestClient_CategoriesAndExpenses(t *testing.T) {
	ctx := context.Background()
	s := newServer(t)
	c := newClient(s)

	food, err := c.CreateCategory(ctx, client.CategoryInput{Name: "Food", Color: "#10b981"})
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Name)

	e, err := c.CreateExpense(ctx, client.ExpenseInput{
		Description: "Lunch",
		Amount:      decimal.RequireFromString("12.50"),
		CategoryID:  &food.ID,
		Date:        client.NewDate(2024, time.January, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, "12.5", e.Amount.String())
	assert.Equal(t, "2024-01-10", e.Date.String())
	require.NotNil(t, e.CategoryName)
	assert.Equal(t, "Food", *e.CategoryName)

	list, err := c.Expenses(ctx, client.ExpenseFilter{CategoryID: &food.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := c.UpdateExpense(ctx, e.ID, client.ExpensePatch{ClearCategory: true})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)

	list, err = c.Expenses(ctx, client.ExpenseFilter{CategoryID: &food.ID})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, c.DeleteExpense(ctx, e.ID))

	_, err = c.Expense(ctx, e.ID)
	assert.True(t, client.IsNotFound(err))
}

func TestClient_APIError(t *testing.T) {
	s := newServer(t)

	_, err := newClient(s).CreateCategory(context.Background(), client.CategoryInput{Name: "", Color: "red"})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation error", apiErr.Message)
	assert.Len(t, apiErr.Fields, 2)
	assert.Contains(t, err.Error(), "name: ")
}

func TestClient_CacheAndInvalidation(t *testing.T) {
	ctx := context.Background()
	s := newServer(t)
	c := newClient(s)

	_, err := c.Categories(ctx)
	require.NoError(t, err)

	_, err = c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.gets.Load(), "second read served from cache")

	_, err = c.MonthlyStats(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.gets.Load())

	cat, err := c.CreateCategory(ctx, client.CategoryInput{Name: "Bills", Color: "#ef4444"})
	require.NoError(t, err)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, int64(3), s.gets.Load(), "category mutation invalidates categories")

	_, err = c.MonthlyStats(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.gets.Load(), "stats untouched by category creation")

	_, err = c.CreateExpense(ctx, client.ExpenseInput{
		Description: "Power",
		Amount:      decimal.NewFromInt(80),
		CategoryID:  &cat.ID,
		Date:        client.NewDate(2024, time.March, 3),
	})
	require.NoError(t, err)

	stats, err := c.MonthlyStats(ctx, 6)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "March", stats[0].Month)
	assert.Equal(t, int64(4), s.gets.Load(), "expense mutation invalidates stats")

	totals, err := c.CategoryStats(ctx, new(client.NewDate(2024, time.March, 1)), nil)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "100", totals[0].Percentage.String())

	c.Invalidate()

	_, err = c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), s.gets.Load())
}

func TestClient_WithoutCache(t *testing.T) {
	ctx := context.Background()
	s := newServer(t)
	c := newClient(s, client.WithCache(0, 0))

	for range 3 {
		_, err := c.Categories(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), s.gets.Load())
}

func TestClient_ImportExport(t *testing.T) {
	ctx := context.Background()
	s := newServer(t)
	c := newClient(s)

	before, err := c.Expenses(ctx, client.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, before)

	res, err := c.ImportCSV(ctx, "bank.csv", strings.NewReader("date,description,amount\n2024-01-10,Market,45.90\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	after, err := c.Expenses(ctx, client.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, after, 1, "import invalidates cached listings")

	var buf bytes.Buffer
	require.NoError(t, c.ExportCSV(ctx, client.ExpenseFilter{MinAmount: new(decimal.NewFromInt(10))}, &buf))
	assert.Equal(t, "date,description,amount,category\n2024-01-10,Market,45.90,\n", buf.String())
}

func TestExpensePatch_MarshalJSON(t *testing.T) {
	type testCase struct {
		name  string
		patch client.ExpensePatch
		want  string
	}

	tests := []testCase{
		{name: "OmitsUnset", patch: client.ExpensePatch{Description: new("Tea")}, want: `{"description":"Tea"}`},
		{name: "ExplicitNull", patch: client.ExpensePatch{ClearCategory: true}, want: `{"category_id":null}`},
		{name: "CategoryID", patch: client.ExpensePatch{CategoryID: new(int64(3))}, want: `{"category_id":3}`},
		{
			name:  "DateAndAmount",
			patch: client.ExpensePatch{Date: new(client.NewDate(2024, time.May, 2)), Amount: new(decimal.RequireFromString("7.5"))},
			want:  `{"amount":"7.5","date":"2024-05-02"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.patch)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
