package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"shareit/internal/infra/db"
	"shareit/internal/pkg/config"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to DB_MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadDBConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.MigrationsDir = *dir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := db.Migrate(ctx, cfg)
	if err != nil {
		slog.Error("migration failed", "applied", applied, "error", err)
		os.Exit(1)
	}
	slog.Info("migrations complete", "applied", len(applied))
}
