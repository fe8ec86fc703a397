// Package apitest assembles the full HTTP stack on top of the in-memory store
// for handler and client tests.
package apitest

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/caszofficial/Expense-Control/internal/category"
	"github.com/caszofficial/Expense-Control/internal/expense"
	"github.com/caszofficial/Expense-Control/internal/export"
	apiHttp "github.com/caszofficial/Expense-Control/internal/http"
	categoryHandler "github.com/caszofficial/Expense-Control/internal/http/category"
	expenseHandler "github.com/caszofficial/Expense-Control/internal/http/expense"
	"github.com/caszofficial/Expense-Control/internal/http/render"
	reportHandler "github.com/caszofficial/Expense-Control/internal/http/report"
	"github.com/caszofficial/Expense-Control/internal/importer"
	"github.com/caszofficial/Expense-Control/internal/memstore"
	"github.com/caszofficial/Expense-Control/internal/report"
)

// Now is the instant reported by the health endpoint of every test API.
var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type API struct {
	Handler http.Handler
	Store   *memstore.Store
}

func New(t testing.TB, opts ...memstore.Option) *API {
	t.Helper()

	var (
		store  = memstore.New(opts...)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		rd     = render.New(logger, false)
	)

	var (
		categoryService = category.NewService(store)
		expenseService  = expense.NewService(store, categoryService)
		reportService   = report.NewService(store)
		importService   = importer.NewService(expenseService, categoryService)
		exportService   = export.NewService(expenseService)
	)

	router := apiHttp.New(
		apiHttp.Options{
			Logger:         logger,
			Renderer:       rd,
			AllowedOrigins: []string{"http://localhost:5173"},
			Now:            func() time.Time { return Now },
		},
		categoryHandler.NewHandler(categoryService, rd),
		expenseHandler.NewHandler(expenseService, importService, exportService, rd),
		reportHandler.NewHandler(reportService, rd),
	)

	return &API{Handler: router, Store: store}
}
