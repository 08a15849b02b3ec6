package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jihyekwon/scrapbook/internal/domain"
	"github.com/jihyekwon/scrapbook/internal/storage"
	"github.com/jihyekwon/scrapbook/internal/storage/sqlite"
)

// Report summarizes one migration run.
type Report struct {
	Migrated int64
	Skipped  int64
}

// Migrator copies posts from the legacy local store into the remote
// store exactly once. Rows already stamped migrated are skipped, so the
// run is safe to repeat after a partial failure.
type Migrator struct {
	source *sqlite.LocalStore
	target storage.Store
}

func New(source *sqlite.LocalStore, target storage.Store) *Migrator {
	return &Migrator{source: source, target: target}
}

// Run migrates every unmigrated local post, preserving the original
// creation timestamps. The first failure stops the run; everything
// migrated before it is already stamped and will not be re-sent.
func (m *Migrator) Run(ctx context.Context) (Report, error) {
	var report Report

	_, migrated, err := m.source.Counts(ctx)
	if err != nil {
		return report, err
	}
	report.Skipped = migrated

	posts, err := m.source.ListUnmigrated(ctx)
	if err != nil {
		return report, err
	}
	if len(posts) == 0 {
		slog.Info("nothing to migrate", "already_migrated", migrated)
		return report, nil
	}

	slog.Info("starting migration", "pending", len(posts), "already_migrated", migrated)

	for _, post := range posts {
		data := domain.CreatePost{
			Title:     post.Title,
			Content:   post.Content,
			Category:  post.Category,
			Keywords:  post.Keywords,
			CreatedAt: post.CreatedAt,
		}
		if urls, ok := post.VideoURLs(); ok {
			data.VideoURLs = urls
		}

		if _, err := m.target.Create(ctx, data); err != nil {
			return report, fmt.Errorf("failed to migrate post %s: %w", post.ID, err)
		}
		if err := m.source.MarkMigrated(ctx, post.ID); err != nil {
			return report, fmt.Errorf("failed to stamp post %s: %w", post.ID, err)
		}
		report.Migrated++
	}

	slog.Info("migration finished", "migrated", report.Migrated, "skipped", report.Skipped)
	return report, nil
}
