package factory

import (
	"context"
	"fmt"

	"github.com/jihyekwon/scrapbook/internal/storage"
	"github.com/jihyekwon/scrapbook/internal/storage/es"
	"github.com/jihyekwon/scrapbook/internal/storage/inmem"
	"github.com/jihyekwon/scrapbook/internal/storage/pg"
)

// NewStore creates a storage.Store for the configured backend.
func NewStore(ctx context.Context, cfg *StoreConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(pool)

	case storage.ES:
		return es.NewStore(ctx, *cfg.Es)

	case storage.InMem:
		return inmem.NewStore(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}
