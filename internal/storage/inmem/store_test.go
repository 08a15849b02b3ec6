package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/apperr"
	"github.com/jihyekwon/scrapbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, s *Store, data domain.CreatePost) domain.Post {
	t.Helper()
	post, err := s.Create(context.Background(), data)
	require.NoError(t, err)
	return post
}

func ideaPost(title, content string, keywords ...string) domain.CreatePost {
	return domain.CreatePost{
		Title:    title,
		Content:  content,
		Category: domain.CategoryIdea,
		Keywords: keywords,
	}
}

func TestStoreCreate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	t.Run("assigns id and timestamp", func(t *testing.T) {
		post := mustCreate(t, store, ideaPost("note", "body"))
		assert.NotEqual(t, uuid.Nil, post.ID)
		assert.False(t, post.CreatedAt.IsZero())

		got, err := store.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post, got)
	})

	t.Run("preserves caller timestamp", func(t *testing.T) {
		stamp := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
		data := ideaPost("old note", "body")
		data.CreatedAt = stamp
		post := mustCreate(t, store, data)
		assert.Equal(t, stamp, post.CreatedAt)
	})

	t.Run("video posts carry their urls", func(t *testing.T) {
		post := mustCreate(t, store, domain.CreatePost{
			Title:     "talk",
			Category:  domain.CategoryVideo,
			VideoURLs: []string{"https://example.com/v1"},
		})
		urls, ok := post.VideoURLs()
		require.True(t, ok)
		assert.Equal(t, []string{"https://example.com/v1"}, urls)
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		_, err := store.Create(ctx, ideaPost("", "body"))
		var vErr *apperr.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	post := mustCreate(t, store, ideaPost("before", "body"))

	t.Run("applies partial update", func(t *testing.T) {
		title := "after"
		updated, err := store.Update(ctx, post.ID, domain.UpdatePost{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, "body", updated.Content)
		assert.Equal(t, post.CreatedAt, updated.CreatedAt)

		got, err := store.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("invalid update leaves the row untouched", func(t *testing.T) {
		blank := " "
		_, err := store.Update(ctx, post.ID, domain.UpdatePost{Title: &blank})
		require.Error(t, err)

		got, err := store.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "x"
		_, err := store.Update(ctx, uuid.New(), domain.UpdatePost{Title: &title})
		var nfErr *apperr.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	post := mustCreate(t, store, ideaPost("note", "body"))

	require.NoError(t, store.Delete(ctx, post.ID))

	_, err := store.GetByID(ctx, post.ID)
	var nfErr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nfErr)

	assert.ErrorAs(t, store.Delete(ctx, post.ID), &nfErr)
}

func TestStoreDeleteMany(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a := mustCreate(t, store, ideaPost("a", "body"))
	b := mustCreate(t, store, ideaPost("b", "body"))
	c := mustCreate(t, store, ideaPost("c", "body"))

	count, err := store.DeleteMany(ctx, []uuid.UUID{a.ID, c.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	remaining, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].ID)
}

func TestStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(func() time.Time {
		current = current.Add(time.Hour)
		return current
	})

	oldest := mustCreate(t, store, ideaPost("oldest", "body"))
	middle := mustCreate(t, store, ideaPost("middle", "body"))
	newest := mustCreate(t, store, ideaPost("newest", "body"))

	posts, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, newest.ID, posts[0].ID)
	assert.Equal(t, middle.ID, posts[1].ID)
	assert.Equal(t, oldest.ID, posts[2].ID)
}

func TestStoreListByCategory(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	mustCreate(t, store, ideaPost("idea", "body"))
	quote := mustCreate(t, store, domain.CreatePost{
		Title:    "quote",
		Content:  "said someone",
		Category: domain.CategoryQuote,
	})

	posts, err := store.ListByCategory(ctx, domain.CategoryQuote)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, quote.ID, posts[0].ID)
}

func TestStoreSearch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	titleHit := mustCreate(t, store, ideaPost("Go concurrency", "about channels"))
	contentHit := mustCreate(t, store, ideaPost("untitledish", "why GO won servers"))
	keywordHit := mustCreate(t, store, ideaPost("weekly", "reading list", "golang"))
	mustCreate(t, store, ideaPost("rust", "borrow checker"))

	t.Run("title matches case-insensitively", func(t *testing.T) {
		posts, err := store.SearchByTitle(ctx, "go")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, titleHit.ID, posts[0].ID)
	})

	t.Run("content substring", func(t *testing.T) {
		posts, err := store.SearchByContent(ctx, "go won")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, contentHit.ID, posts[0].ID)
	})

	t.Run("keyword containment", func(t *testing.T) {
		posts, err := store.SearchByKeyword(ctx, "GO")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, keywordHit.ID, posts[0].ID)
	})

	t.Run("no matches", func(t *testing.T) {
		posts, err := store.SearchByTitle(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}
