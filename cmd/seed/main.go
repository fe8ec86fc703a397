package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/caszofficial/Expense-Control/internal/config"
	"github.com/caszofficial/Expense-Control/internal/database"
	"github.com/caszofficial/Expense-Control/internal/logging"
	"github.com/caszofficial/Expense-Control/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := seed.Run(ctx, db, time.Now())
	if err != nil {
		return err
	}

	slog.Info("seed data inserted", "categories", res.Categories, "expenses", res.Expenses)

	return nil
}
