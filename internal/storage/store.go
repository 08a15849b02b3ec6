package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jihyekwon/scrapbook/internal/domain"
)

// Searcher is the read-side contract the search aggregator depends on.
// All three searches use case-insensitive substring semantics; keyword
// search matches when any keyword of a post contains the term.
//
// Implementations report transport failures as errors and never collapse
// them into empty result sets.
type Searcher interface {
	SearchByTitle(ctx context.Context, term string) ([]domain.Post, error)
	SearchByContent(ctx context.Context, term string) ([]domain.Post, error)
	SearchByKeyword(ctx context.Context, term string) ([]domain.Post, error)
}

// Store is the full post store contract. Lists are ordered newest-first.
// GetByID returns an apperr.NotFoundError for a missing id.
type Store interface {
	Searcher

	ListAll(ctx context.Context) ([]domain.Post, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)

	Create(ctx context.Context, data domain.CreatePost) (domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, data domain.UpdatePost) (domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type Type string

const (
	PG    Type = "pg"
	ES    Type = "es"
	InMem Type = "inmem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
