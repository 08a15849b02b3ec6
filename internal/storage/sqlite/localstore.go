package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    created_at TEXT NOT NULL,
    keywords TEXT NOT NULL DEFAULT '[]',
    video_urls TEXT,
    migrated_at TEXT
);
`

// LocalStore is the on-disk SQLite collection an earlier iteration of
// the app kept locally. It exists only as the migration source: the
// migrated_at column is the idempotency key that keeps re-runs from
// duplicating rows. It is never a second live copy of post data.
type LocalStore struct {
	db *sql.DB
}

// Open opens (or creates) the local database at path.
func Open(path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// Put inserts a local post. Used by tests and by the legacy export path.
func (s *LocalStore) Put(ctx context.Context, post domain.Post) error {
	keywords, err := json.Marshal(post.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	var urls any
	if v, ok := post.VideoURLs(); ok {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode video urls: %w", err)
		}
		urls = string(encoded)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO posts (id, title, content, category, created_at, keywords, video_urls)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.ID.String(),
		post.Title,
		post.Content,
		string(post.Category),
		post.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(keywords),
		urls,
	)
	if err != nil {
		return fmt.Errorf("failed to insert local post: %w", err)
	}
	return nil
}

// ListUnmigrated returns local posts that have not been migrated yet,
// oldest first so target timestamps land in original order.
func (s *LocalStore) ListUnmigrated(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, content, category, created_at, keywords, video_urls
        FROM posts
        WHERE migrated_at IS NULL
        ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query local posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var (
			idStr     string
			category  string
			createdAt string
			keywords  string
			urls      sql.NullString
			post      domain.Post
		)
		if err := rows.Scan(&idStr, &post.Title, &post.Content, &category, &createdAt, &keywords, &urls); err != nil {
			return nil, fmt.Errorf("failed to scan local post: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid local post id %q: %w", idStr, err)
		}
		post.ID = id
		post.Category = domain.Category(category)

		post.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at for post %s: %w", idStr, err)
		}
		if err := json.Unmarshal([]byte(keywords), &post.Keywords); err != nil {
			return nil, fmt.Errorf("invalid keywords for post %s: %w", idStr, err)
		}
		if urls.Valid {
			var videoURLs []string
			if err := json.Unmarshal([]byte(urls.String), &videoURLs); err != nil {
				return nil, fmt.Errorf("invalid video urls for post %s: %w", idStr, err)
			}
			if post.Category == domain.CategoryVideo && len(videoURLs) > 0 {
				post.Video = &domain.VideoDetails{URLs: videoURLs}
			}
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating local posts: %w", err)
	}
	return posts, nil
}

// MarkMigrated stamps a local post so later runs skip it.
func (s *LocalStore) MarkMigrated(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE posts SET migrated_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339Nano),
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark post migrated: %w", err)
	}
	return nil
}

// Counts returns total and migrated row counts for progress reporting.
func (s *LocalStore) Counts(ctx context.Context) (total, migrated int64, err error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(migrated_at) FROM posts")
	if err := row.Scan(&total, &migrated); err != nil {
		return 0, 0, fmt.Errorf("failed to count local posts: %w", err)
	}
	return total, migrated, nil
}
