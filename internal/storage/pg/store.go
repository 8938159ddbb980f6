// Package pg is the PostgreSQL storage backend: pgx connection pool,
// weighted tsvector retrieval, transactional upserts.
package pg

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvasilj/content-scout/internal/storage"
)

type Store struct {
	db *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) GetCapabilities() storage.Capabilities {
	return storage.Capabilities{NativeRanking: true}
}
