package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/apperr"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

// Store is a mutex-guarded in-memory post store. It backs tests and the
// STORE_TYPE=inmem backend, and mirrors the relational backends' ordering
// and search semantics exactly.
type Store struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]domain.Post
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		posts: make(map[uuid.UUID]domain.Post),
		now:   time.Now,
	}
}

// NewStoreWithClock lets tests control CreatedAt assignment.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

func (s *Store) Create(ctx context.Context, data domain.CreatePost) (domain.Post, error) {
	if err := data.Validate(); err != nil {
		return domain.Post{}, err
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	post := domain.Post{
		ID:        uuid.New(),
		Title:     data.Title,
		Content:   data.Content,
		Category:  data.Category,
		CreatedAt: createdAt,
		Keywords:  data.Keywords,
	}
	if data.Category == domain.CategoryVideo {
		post.Video = &domain.VideoDetails{URLs: data.VideoURLs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = post
	return post, nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, data domain.UpdatePost) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[id]
	if !ok {
		return domain.Post{}, apperr.NewNotFound("post not found")
	}
	updated, err := data.ApplyTo(existing)
	if err != nil {
		return domain.Post{}, err
	}
	s.posts[id] = updated
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return apperr.NewNotFound("post not found")
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, id := range ids {
		if _, ok := s.posts[id]; ok {
			delete(s.posts, id)
			count++
		}
	}
	return count, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return domain.Post{}, apperr.NewNotFound("post not found")
	}
	return post, nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.filter(func(domain.Post) bool { return true }), nil
}

func (s *Store) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Post, error) {
	return s.filter(func(p domain.Post) bool { return p.Category == category }), nil
}

func (s *Store) SearchByTitle(ctx context.Context, term string) ([]domain.Post, error) {
	t := strings.ToLower(term)
	return s.filter(func(p domain.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), t)
	}), nil
}

func (s *Store) SearchByContent(ctx context.Context, term string) ([]domain.Post, error) {
	t := strings.ToLower(term)
	return s.filter(func(p domain.Post) bool {
		return strings.Contains(strings.ToLower(p.Content), t)
	}), nil
}

func (s *Store) SearchByKeyword(ctx context.Context, term string) ([]domain.Post, error) {
	t := strings.ToLower(term)
	return s.filter(func(p domain.Post) bool {
		for _, k := range p.Keywords {
			if strings.Contains(strings.ToLower(k), t) {
				return true
			}
		}
		return false
	}), nil
}

// filter snapshots matching posts newest-first, matching the ORDER BY of
// the relational backends. Ties fall back to ID so the order is total.
func (s *Store) filter(match func(domain.Post) bool) []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Post
	for _, p := range s.posts {
		if match(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})
	return result
}
