package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/caszofficial/Expense-Control/internal/category"
	categoryStore "github.com/caszofficial/Expense-Control/internal/category/store"
	"github.com/caszofficial/Expense-Control/internal/config"
	"github.com/caszofficial/Expense-Control/internal/database"
	"github.com/caszofficial/Expense-Control/internal/expense"
	expenseStore "github.com/caszofficial/Expense-Control/internal/expense/store"
	"github.com/caszofficial/Expense-Control/internal/export"
	apiHttp "github.com/caszofficial/Expense-Control/internal/http"
	categoryHandler "github.com/caszofficial/Expense-Control/internal/http/category"
	expenseHandler "github.com/caszofficial/Expense-Control/internal/http/expense"
	"github.com/caszofficial/Expense-Control/internal/http/render"
	reportHandler "github.com/caszofficial/Expense-Control/internal/http/report"
	"github.com/caszofficial/Expense-Control/internal/importer"
	"github.com/caszofficial/Expense-Control/internal/logging"
	"github.com/caszofficial/Expense-Control/internal/report"
	reportStore "github.com/caszofficial/Expense-Control/internal/report/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if !cfg.DB.SkipMigrations {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return err
		}

		slog.Info("migrations applied")
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		categoryService = category.NewService(categoryStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db), categoryService)
		reportService   = report.NewService(reportStore.New(db))
		importService   = importer.NewService(expenseService, categoryService)
		exportService   = export.NewService(expenseService)
	)

	rd := render.New(logger, cfg.IsDevelopment())

	var (
		categoryH = categoryHandler.NewHandler(categoryService, rd)
		expenseH  = expenseHandler.NewHandler(expenseService, importService, exportService, rd)
		reportH   = reportHandler.NewHandler(reportService, rd)
	)

	router := apiHttp.New(apiHttp.Options{
		Logger:         logger,
		Renderer:       rd,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, categoryH, expenseH, reportH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "env", cfg.App.Env)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
