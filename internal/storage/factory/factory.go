package factory

import (
	"context"
	"fmt"

	"github.com/mvasilj/content-scout/internal/storage"
	"github.com/mvasilj/content-scout/internal/storage/es"
	"github.com/mvasilj/content-scout/internal/storage/in_mem"
	"github.com/mvasilj/content-scout/internal/storage/pg"
	"github.com/mvasilj/content-scout/pkg/server"
)

// Backends bundles everything the binaries wire up from one config: the
// primary store, the optional Elasticsearch item mirror and a health check.
type Backends struct {
	Store  storage.Store
	Mirror *es.Mirror
	Health server.HealthChecker

	pool *pg.ConnectionPool
}

// NewBackends builds the backend set for a loaded config. The primary store
// is PostgreSQL or in-memory; Elasticsearch only ever runs as a mirror.
func NewBackends(ctx context.Context, cfg *StorageConfig) (*Backends, error) {
	backends := &Backends{}

	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to bootstrap PostgreSQL schema: %w", err)
		}
		backends.pool = pool
		backends.Store = pg.NewStore(pool)
		backends.Health = pg.NewHealthChecker(pool)

	case storage.InMem:
		backends.Store = in_mem.NewInMemStore()
		backends.Health = server.NewOkHealthChecker()

	case storage.ES:
		return nil, fmt.Errorf("elasticsearch runs as a search mirror, not a primary store; set ES_ADDRESSES alongside STORAGE_TYPE=%s", storage.PG)

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedBackend), cfg.Type)
	}

	if cfg.Es != nil {
		mirror, err := es.NewMirror(ctx, *cfg.Es)
		if err != nil {
			backends.Close()
			return nil, fmt.Errorf("failed to create Elasticsearch mirror: %w", err)
		}
		backends.Mirror = mirror
	}

	return backends, nil
}

// ItemSink is the item store the ingestion pipeline writes to: the primary
// store, wrapped with mirror indexing when a mirror is configured.
func (b *Backends) ItemSink() storage.ItemStore {
	if b.Mirror != nil {
		return es.NewMirroredItems(b.Store, b.Mirror)
	}
	return b.Store
}

func (b *Backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}
