package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jihyekwon/scrapbook/internal/migrate"
	"github.com/jihyekwon/scrapbook/internal/storage/factory"
	"github.com/jihyekwon/scrapbook/internal/storage/sqlite"
	"github.com/jihyekwon/scrapbook/pkg/config/env"
)

// Copies posts from a local sqlite scrapbook into the configured remote
// store. Already-migrated rows are skipped, so re-running after a partial
// failure picks up where the previous run stopped.
func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)
	if err := env.LoadDotEnv("cmd/migrate/.env"); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := LoadMigrateConfig(os.Getenv("MIGRATE_CONFIG"))
	if err != nil {
		slog.Error("Failed to load migrate config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	source, err := sqlite.Open(cfg.Source.Path)
	if err != nil {
		slog.Error("Failed to open local store", "path", cfg.Source.Path, "error", err)
		os.Exit(1)
	}
	defer source.Close()

	storeCfg, err := cfg.StoreConfig()
	if err != nil {
		slog.Error("Invalid migration target", "error", err)
		os.Exit(1)
	}
	target, err := factory.NewStore(ctx, storeCfg)
	if err != nil {
		slog.Error("Failed to create target store", "type", storeCfg.Type, "error", err)
		os.Exit(1)
	}

	report, err := migrate.New(source, target).Run(ctx)
	if err != nil {
		slog.Error("Migration failed", "migrated", report.Migrated, "error", err)
		os.Exit(1)
	}
	slog.Info("Migration finished", "migrated", report.Migrated, "skipped", report.Skipped)
}
