package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
)

type Type string

const (
	PG    Type = "pg"
	ES         = "es"
	InMem      = "in_mem"
)

type BackendError string

const (
	ErrUnsupportedBackend BackendError = "unsupported storage type: %s"
)

func (e BackendError) Error() string {
	return string(e)
}

// SourceStore persists the discovery source registry.
type SourceStore interface {
	UpsertSource(ctx context.Context, src domain.DiscoverySource) (uuid.UUID, error)
	ListSources(ctx context.Context) ([]domain.DiscoverySource, error)
	ListSourcesBySite(ctx context.Context, siteID uuid.UUID) ([]domain.DiscoverySource, error)
}

// ItemStore persists discovered external items. The URL is the identity:
// UpsertFromURL resolves or creates the row for it atomically, overwrites the
// given fields, refreshes LastSeenAt and attaches the default tags without
// ever duplicating an attachment.
type ItemStore interface {
	UpsertFromURL(ctx context.Context, url string, sourceID *uuid.UUID, fields domain.ItemFields, defaultTagKeys []string) (*domain.ExternalItem, error)
	// ExistingURLs returns the URLs of every stored item.
	ExistingURLs(ctx context.Context) (map[string]struct{}, error)
	// SearchItems retrieves non-hidden candidate items for a query. A non-nil
	// siteID restricts results to items from that site's sources plus items
	// with no source at all.
	SearchItems(ctx context.Context, query string, siteID *uuid.UUID) ([]domain.RankedItem, error)
}

// PageStore retrieves editorial page candidates for the search generators.
// Every method honors the shared Filters.
type PageStore interface {
	// SearchPages matches against title, SEO title, search description and
	// tag values.
	SearchPages(ctx context.Context, query string, f Filters) ([]domain.Page, error)
	// SearchHero matches against hero title and hero intro. Backends with
	// native ranking report a non-zero rank per page.
	SearchHero(ctx context.Context, query string, f Filters) ([]domain.RankedPage, error)
	// SearchSections returns section pages whose embedded card text contains
	// the raw query.
	SearchSections(ctx context.Context, query string, f Filters) ([]domain.Page, error)
	// PagesByTagSubstring returns pages with at least one tag value
	// containing the query, case-insensitively.
	PagesByTagSubstring(ctx context.Context, query string, f Filters) ([]domain.Page, error)
}

// Store is the full backend surface the API binary wires up.
type Store interface {
	SourceStore
	ItemStore
	PageStore
	CapabilityProvider
}
