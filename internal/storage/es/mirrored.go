package es

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage"
)

// ItemIndexer writes one item document into the mirror.
type ItemIndexer interface {
	IndexItem(ctx context.Context, item domain.ExternalItem) error
}

// MirroredItems decorates an item store so every committed upsert is also
// indexed into the mirror. An indexing failure only makes the mirror lag;
// it never fails the write.
type MirroredItems struct {
	storage.ItemStore
	indexer ItemIndexer
}

var _ storage.ItemStore = (*MirroredItems)(nil)

func NewMirroredItems(primary storage.ItemStore, indexer ItemIndexer) *MirroredItems {
	return &MirroredItems{
		ItemStore: primary,
		indexer:   indexer,
	}
}

func (m *MirroredItems) UpsertFromURL(ctx context.Context, url string, sourceID *uuid.UUID, fields domain.ItemFields, defaultTagKeys []string) (*domain.ExternalItem, error) {
	item, err := m.ItemStore.UpsertFromURL(ctx, url, sourceID, fields, defaultTagKeys)
	if err != nil {
		return nil, err
	}

	if err := m.indexer.IndexItem(ctx, *item); err != nil {
		slog.Warn("mirror indexing failed, mirror will lag behind the store",
			"key", item.Key, "url", item.URL, "error", err)
	}

	return item, nil
}
