package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jihyekwon/scrapbook/internal/apperr"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

const postColumns = "id, title, content, category, created_at, keywords, video_urls"

// Store is the PostgreSQL post store. Substring searches use ILIKE and
// keyword containment unnests the keywords array.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) (*Store, error) {
	return &Store{db: pool.conn}, nil
}

func (s *Store) Create(ctx context.Context, data domain.CreatePost) (domain.Post, error) {
	if err := data.Validate(); err != nil {
		return domain.Post{}, err
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var urls []string
	if data.Category == domain.CategoryVideo {
		urls = data.VideoURLs
	}

	cmd := `
        INSERT INTO posts (title, content, category, created_at, keywords, video_urls)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + postColumns

	row := s.db.QueryRow(ctx, cmd,
		data.Title,
		data.Content,
		data.Category,
		createdAt,
		keywordsParam(data.Keywords),
		urls,
	)
	post, err := scanPost(row)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, data domain.UpdatePost) (domain.Post, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to begin update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1 FOR UPDATE", id)
	existing, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, apperr.NewNotFound("post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to load post for update: %w", err)
	}

	updated, err := data.ApplyTo(existing)
	if err != nil {
		return domain.Post{}, err
	}

	var urls []string
	if v, ok := updated.VideoURLs(); ok {
		urls = v
	}
	_, err = tx.Exec(ctx, `
        UPDATE posts
        SET title = $2, content = $3, category = $4, keywords = $5, video_urls = $6
        WHERE id = $1`,
		updated.ID,
		updated.Title,
		updated.Content,
		updated.Category,
		keywordsParam(updated.Keywords),
		urls,
	)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Post{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("post not found")
	}
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.db.Exec(ctx, "DELETE FROM posts WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	row := s.db.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, apperr.NewNotFound("post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
        SELECT `+postColumns+` FROM posts
        ORDER BY created_at DESC, id DESC`)
}

func (s *Store) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
        SELECT `+postColumns+` FROM posts
        WHERE category = $1
        ORDER BY created_at DESC, id DESC`, category)
}

func (s *Store) SearchByTitle(ctx context.Context, term string) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
        SELECT `+postColumns+` FROM posts
        WHERE title ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC, id DESC`, escapeLike(term))
}

func (s *Store) SearchByContent(ctx context.Context, term string) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
        SELECT `+postColumns+` FROM posts
        WHERE content ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC, id DESC`, escapeLike(term))
}

func (s *Store) SearchByKeyword(ctx context.Context, term string) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
        SELECT `+postColumns+` FROM posts
        WHERE EXISTS (
            SELECT 1 FROM unnest(keywords) AS k
            WHERE k ILIKE '%' || $1 || '%'
        )
        ORDER BY created_at DESC, id DESC`, escapeLike(term))
}

// escapeLike makes LIKE metacharacters in a search term match literally.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

func (s *Store) queryPosts(ctx context.Context, sql string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (domain.Post, error) {
	var (
		post     domain.Post
		keywords []string
		urls     []string
	)
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Category,
		&post.CreatedAt,
		&keywords,
		&urls,
	); err != nil {
		return domain.Post{}, err
	}
	if len(keywords) > 0 {
		post.Keywords = keywords
	}
	if post.Category == domain.CategoryVideo && len(urls) > 0 {
		post.Video = &domain.VideoDetails{URLs: urls}
	}
	return post, nil
}

// keywordsParam keeps the NOT NULL keywords column happy for posts
// without keywords.
func keywordsParam(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
