package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const pgImage = "postgres:17.5"

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

type PGConfig struct {
	Database string
	Username string
	Password string
}

// NewPGContainer starts a throwaway postgres with the repo's
// db/migrations applied, for integration tests.
func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	initScript, err := collectMigrations()
	if err != nil {
		return nil, err
	}

	pgContainer, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.WithInitScripts(initScript),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
	}, nil
}

// collectMigrations concatenates db/migrations/*.up.sql in name order
// into one temp init script. Migration names are numbered, so the sort
// is the application order.
func collectMigrations() (string, error) {
	_, caller, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(caller), "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return "", fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no migrations found under %s", migrationsDir)
	}
	sort.Strings(files)

	out, err := os.CreateTemp("", "posts-migrations-*.sql")
	if err != nil {
		return "", fmt.Errorf("failed to create init script: %w", err)
	}
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			out.Close()
			return "", fmt.Errorf("failed to read migration %s: %w", f, err)
		}
		if _, err := out.Write(append(content, '\n')); err != nil {
			out.Close()
			return "", fmt.Errorf("failed to write init script: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close init script: %w", err)
	}
	return out.Name(), nil
}
