// Package in_mem is the zero-dependency storage backend: maps behind a
// RWMutex, substring retrieval, no native ranking. Used by tests and local
// development.
package in_mem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage"
)

type InMemStore struct {
	mu      sync.RWMutex
	sources map[uuid.UUID]domain.DiscoverySource
	// Items keyed by the content-addressed URL hash.
	items map[string]domain.ExternalItem
	pages map[uuid.UUID]domain.Page

	now func() time.Time
}

var _ storage.Store = (*InMemStore)(nil)

func NewInMemStore() *InMemStore {
	return &InMemStore{
		sources: make(map[uuid.UUID]domain.DiscoverySource),
		items:   make(map[string]domain.ExternalItem),
		pages:   make(map[uuid.UUID]domain.Page),
		now:     time.Now,
	}
}

func (s *InMemStore) GetCapabilities() storage.Capabilities {
	return storage.Capabilities{NativeRanking: false}
}

func (s *InMemStore) UpsertSource(_ context.Context, src domain.DiscoverySource) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src.ID == uuid.Nil {
		src.ID = uuid.New()
	}
	s.sources[src.ID] = src
	return src.ID, nil
}

func (s *InMemStore) ListSources(_ context.Context) ([]domain.DiscoverySource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make([]domain.DiscoverySource, 0, len(s.sources))
	for _, src := range s.sources {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Label() < sources[j].Label() })
	return sources, nil
}

func (s *InMemStore) ListSourcesBySite(ctx context.Context, siteID uuid.UUID) ([]domain.DiscoverySource, error) {
	all, err := s.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	var scoped []domain.DiscoverySource
	for _, src := range all {
		if src.SiteID == siteID {
			scoped = append(scoped, src)
		}
	}
	return scoped, nil
}

func (s *InMemStore) UpsertFromURL(_ context.Context, url string, sourceID *uuid.UUID, fields domain.ItemFields, defaultTagKeys []string) (*domain.ExternalItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url = strings.TrimSpace(url)
	key := domain.BuildItemKey(url)
	now := s.now().UTC()

	item, ok := s.items[key]
	if !ok {
		item = domain.ExternalItem{
			ID:          uuid.New(),
			Key:         key,
			URL:         url,
			FirstSeenAt: now,
		}
	}

	item.SourceID = sourceID
	item.SourceName = s.sourceName(sourceID)
	item.Title = fields.Title
	item.Summary = fields.Summary
	item.PublishedAt = fields.PublishedAt
	item.CreatedAt = fields.CreatedAt
	item.UpdatedAt = fields.UpdatedAt
	item.Metadata = fields.Metadata
	item.LastSeenAt = now

	for _, rawKey := range defaultTagKeys {
		tagKey := domain.NormalizeTagKey(rawKey)
		if tagKey == "" {
			continue
		}
		attached := false
		for _, tag := range item.Tags {
			if tag.Key == tagKey {
				attached = true
				break
			}
		}
		if !attached {
			item.Tags = append(item.Tags, domain.Tag{Key: tagKey, Value: rawKey})
		}
	}

	s.items[key] = item
	return &item, nil
}

func (s *InMemStore) ExistingURLs(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urls := make(map[string]struct{}, len(s.items))
	for _, item := range s.items {
		urls[item.URL] = struct{}{}
	}
	return urls, nil
}

func (s *InMemStore) SearchItems(_ context.Context, query string, siteID *uuid.UUID) ([]domain.RankedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	var matches []domain.RankedItem
	for _, item := range s.items {
		if item.Hidden {
			continue
		}
		if siteID != nil && !s.itemBelongsToSite(item, *siteID) {
			continue
		}

		haystack := strings.ToLower(strings.Join([]string{
			item.Title,
			item.Summary,
			item.URL,
			s.sourceName(item.SourceID),
			domain.TagsText(item.Tags),
		}, " "))
		if containsAny(haystack, terms) {
			item.SourceName = s.sourceName(item.SourceID)
			matches = append(matches, domain.RankedItem{Item: item})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Item.URL < matches[j].Item.URL })
	return matches, nil
}

// itemBelongsToSite admits items discovered by one of the site's sources and
// items with no source at all.
func (s *InMemStore) itemBelongsToSite(item domain.ExternalItem, siteID uuid.UUID) bool {
	if item.SourceID == nil {
		return true
	}
	src, ok := s.sources[*item.SourceID]
	if !ok {
		return true
	}
	return src.SiteID == siteID
}

func (s *InMemStore) sourceName(sourceID *uuid.UUID) string {
	if sourceID == nil {
		return ""
	}
	if src, ok := s.sources[*sourceID]; ok {
		return src.Label()
	}
	return ""
}

// SavePage stores or replaces a page. The editorial surface maintaining
// pages lives outside this system; tests and fixtures load them here.
func (s *InMemStore) SavePage(_ context.Context, page domain.Page) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}
	s.pages[page.ID] = page
	return page.ID, nil
}

// SearchPages retrieves pages whose metadata contains the query as a whole
// substring, mirroring the other substring-based page lookups.
func (s *InMemStore) SearchPages(_ context.Context, query string, f storage.Filters) ([]domain.Page, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	return s.scanPages(f, func(p domain.Page) bool {
		haystack := strings.ToLower(strings.Join([]string{
			p.Title, p.SEOTitle, p.SearchDescription, domain.TagsText(p.Tags),
		}, " "))
		return strings.Contains(haystack, needle)
	})
}

func (s *InMemStore) SearchHero(_ context.Context, query string, f storage.Filters) ([]domain.RankedPage, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	pages, err := s.scanPages(f, func(p domain.Page) bool {
		if p.HeroTitle == "" && p.HeroIntro == "" {
			return false
		}
		haystack := strings.ToLower(p.HeroTitle + " " + p.HeroIntro)
		return strings.Contains(haystack, needle)
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedPage, 0, len(pages))
	for _, p := range pages {
		ranked = append(ranked, domain.RankedPage{Page: p})
	}
	return ranked, nil
}

func (s *InMemStore) SearchSections(_ context.Context, query string, f storage.Filters) ([]domain.Page, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	return s.scanPages(f, func(p domain.Page) bool {
		if len(p.Rows) == 0 {
			return false
		}
		return strings.Contains(strings.ToLower(cardText(p)), needle)
	})
}

func (s *InMemStore) PagesByTagSubstring(_ context.Context, query string, f storage.Filters) ([]domain.Page, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	return s.scanPages(f, func(p domain.Page) bool {
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag.Key), needle) ||
				strings.Contains(strings.ToLower(tag.Value), needle) {
				return true
			}
		}
		return false
	})
}

func (s *InMemStore) scanPages(f storage.Filters, match func(domain.Page) bool) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pages []domain.Page
	for _, p := range s.pages {
		if !f.Matches(p) {
			continue
		}
		if match(p) {
			pages = append(pages, p)
		}
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].TreePath < pages[j].TreePath })
	return pages, nil
}

// cardText concatenates every textual fragment of a page's embedded cards.
func cardText(p domain.Page) string {
	var b strings.Builder
	for _, row := range p.Rows {
		for _, card := range row.Cards {
			for _, fragment := range []string{card.Title, card.Text, card.LinkText, card.LinkURL} {
				if fragment != "" {
					b.WriteString(fragment)
					b.WriteString(" ")
				}
			}
			for _, tag := range card.Tags {
				b.WriteString(tag)
				b.WriteString(" ")
			}
		}
	}
	return b.String()
}

func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
