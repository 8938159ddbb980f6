package search

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage"
	"github.com/mvasilj/content-scout/internal/storage/in_mem"
)

func newTestEngine(t *testing.T) (*Engine, *in_mem.InMemStore) {
	t.Helper()
	store := in_mem.NewInMemStore()
	return NewEngine(store, store, Config{}), store
}

func timePtr(t time.Time) *time.Time { return &t }

func TestSearchBlankQueryShortCircuits(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	_, err := store.UpsertFromURL(ctx, "https://example.org/a", nil, domain.ItemFields{Title: "anything at all"}, nil)
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\t\n"} {
		result, err := engine.Search(ctx, query, storage.Filters{}, 1, 0)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Zero(t, result.Total)
		assert.False(t, result.HasNext)
		assert.False(t, result.HasPrevious)
	}
}

func TestSearchFresherItemRanksFirst(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	_, err := store.UpsertFromURL(ctx, "https://example.org/old", nil, domain.ItemFields{
		Title:     "Platform update",
		UpdatedAt: timePtr(now.AddDate(0, 0, -500)),
	}, nil)
	require.NoError(t, err)
	_, err = store.UpsertFromURL(ctx, "https://example.org/new", nil, domain.ItemFields{
		Title:     "Platform update",
		UpdatedAt: timePtr(now.AddDate(0, 0, -2)),
	}, nil)
	require.NoError(t, err)

	result, err := engine.Search(ctx, "platform update", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "https://example.org/new", result.Items[0].URL)
	assert.Equal(t, "https://example.org/old", result.Items[1].URL)
	assert.Greater(t, result.Items[0].Score, result.Items[1].Score)
}

func TestSearchTitleMatchOutranksTagOnlyMatch(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	_, err := store.UpsertFromURL(ctx, "https://example.org/title-match", nil, domain.ItemFields{
		Title:     "Kubernetes operators guide",
		UpdatedAt: timePtr(now.AddDate(0, 0, -3)),
	}, nil)
	require.NoError(t, err)
	_, err = store.UpsertFromURL(ctx, "https://example.org/tag-match", nil, domain.ItemFields{
		Title:     "Weekly platform digest",
		UpdatedAt: timePtr(now.AddDate(0, 0, -3)),
	}, []string{"kubernetes"})
	require.NoError(t, err)

	result, err := engine.Search(ctx, "kubernetes", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "https://example.org/title-match", result.Items[0].URL)
}

func TestSearchPageAndTagGeneratorsDeduplicate(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	_, err := store.SavePage(ctx, domain.Page{
		Live: true, Public: true, TreePath: "0001/0002/",
		Title:             "Accessibility guidance",
		SearchDescription: "How to meet the accessibility regulations.",
		URL:               "/guidance/accessibility",
		Tags:              []domain.Tag{{Key: "accessibility", Value: "Accessibility"}},
	})
	require.NoError(t, err)

	result, err := engine.Search(ctx, "accessibility", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1, "the page and tag generators both surface the page; the merger keeps one")
	assert.Equal(t, "Accessibility guidance", result.Items[0].Title)
	assert.Equal(t, []string{"Accessibility"}, result.Items[0].Tags)
}

func TestSearchCardResults(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	_, err := store.SavePage(ctx, domain.Page{
		Live: true, Public: true, TreePath: "0001/0005/",
		Title: "Developer tools",
		URL:   "/developer-tools",
		Tags:  []domain.Tag{{Key: "tooling", Value: "Tooling"}},
		Rows: []domain.Row{{Cards: []domain.Card{
			{
				Title:   "Terraform modules",
				Text:    "Reusable infrastructure building blocks.",
				LinkURL: "/developer-tools/terraform",
				Tags:    []string{"Infrastructure"},
			},
			{
				Title: "Unrelated card",
				Text:  "Nothing to see here.",
			},
		}}},
	})
	require.NoError(t, err)

	result, err := engine.Search(ctx, "terraform", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1, "only the card containing the query qualifies")

	card := result.Items[0]
	assert.Equal(t, "Terraform modules", card.Title)
	assert.Equal(t, "/developer-tools/terraform", card.URL, "the card's own link wins over the page URL")
	assert.Equal(t, []string{"Infrastructure", "Tooling"}, card.Tags, "card tags come first, page tags appended")
}

func TestSearchCardFallbacks(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	_, err := store.SavePage(ctx, domain.Page{
		Live: true, Public: true, TreePath: "0001/0006/",
		Title: "Data catalogue",
		URL:   "/data",
		Rows: []domain.Row{{Cards: []domain.Card{
			{LinkText: "Browse datasets"},
		}}},
	})
	require.NoError(t, err)

	result, err := engine.Search(ctx, "datasets", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	card := result.Items[0]
	assert.Equal(t, "Data catalogue", card.Title, "a titleless card borrows the page title")
	assert.Equal(t, "/data", card.URL, "a linkless card borrows the page URL")
	assert.Equal(t, "Card in Data catalogue", card.SearchDescription)
}

func TestSearchHeroUsesNativeRankWhenPresent(t *testing.T) {
	ctx := context.Background()
	store := in_mem.NewInMemStore()
	pages := &rankedHeroStore{InMemStore: store, rank: 12.5}
	engine := NewEngine(pages, store, Config{})

	_, err := store.SavePage(ctx, domain.Page{
		Live: true, Public: true, TreePath: "0001/0007/",
		Title:     "Cloud platform",
		HeroTitle: "Build on our cloud",
		URL:       "/cloud",
	})
	require.NoError(t, err)

	result, err := engine.Search(ctx, "cloud", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)

	var hero *domain.SearchResultItem
	for i := range result.Items {
		if result.Items[i].URL == "/cloud" {
			hero = &result.Items[i]
		}
	}
	require.NotNil(t, hero)
	assert.Equal(t, 12.5, hero.Score, "a non-zero native rank replaces the lexical score")
}

func TestSearchHeroDescriptionPrefersIntro(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	_, err := store.SavePage(ctx, domain.Page{
		Live: true, Public: true, TreePath: "0001/0008/",
		Title:             "Observability",
		SearchDescription: "Metrics, logs and traces guidance.",
		HeroTitle:         "Monitor everything",
		HeroIntro:         "Dashboards and alerting for every service",
		URL:               "/observability",
	})
	require.NoError(t, err)
	_, err = store.SavePage(ctx, domain.Page{
		Live: true, Public: true, TreePath: "0001/0009/",
		Title:             "Incident handling",
		SearchDescription: "How to run incidents.",
		HeroTitle:         "Incident response",
		URL:               "/incidents",
	})
	require.NoError(t, err)

	result, err := engine.Search(ctx, "monitor everything", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Dashboards and alerting for every service", result.Items[0].SearchDescription,
		"the hero intro wins over the page description")

	result, err = engine.Search(ctx, "incident response", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "How to run incidents.", result.Items[0].SearchDescription,
		"an introless hero falls back to the page description")
}

func TestSearchPagination(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	for _, url := range []string{
		"https://example.org/p1", "https://example.org/p2", "https://example.org/p3",
	} {
		_, err := store.UpsertFromURL(ctx, url, nil, domain.ItemFields{Title: "Release notes " + url}, nil)
		require.NoError(t, err)
	}

	page1, err := engine.Search(ctx, "release notes", storage.Filters{}, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 2)
	assert.Equal(t, 3, page1.Total)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrevious)

	page2, err := engine.Search(ctx, "release notes", storage.Filters{}, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrevious)
}

// rankedHeroStore overlays a fixed native hero rank on the in-memory store.
type rankedHeroStore struct {
	*in_mem.InMemStore
	rank float64
}

func (s *rankedHeroStore) SearchHero(ctx context.Context, query string, f storage.Filters) ([]domain.RankedPage, error) {
	ranked, err := s.InMemStore.SearchHero(ctx, query, f)
	if err != nil {
		return nil, err
	}
	for i := range ranked {
		ranked[i].Rank = s.rank
	}
	return ranked, nil
}

func TestSearchMirrorUsedOnlyWhenUnscoped(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	mirror := &fakeMirror{items: []domain.RankedItem{{
		Item: domain.ExternalItem{Title: "Mirrored result", URL: "https://mirror.example/hit"},
		Rank: 3.2,
	}}}
	engine.UseMirror(mirror)

	result, err := engine.Search(ctx, "mirrored", storage.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "https://mirror.example/hit", result.Items[0].URL)
	assert.True(t, mirror.called)

	mirror.called = false
	siteID := uuid.New()
	_, err = engine.Search(ctx, "mirrored", storage.Filters{SiteID: &siteID}, 1, 0)
	require.NoError(t, err)
	assert.False(t, mirror.called, "site-scoped searches stay on the primary store")
}

type fakeMirror struct {
	items  []domain.RankedItem
	called bool
}

func (m *fakeMirror) SearchItems(_ context.Context, _ string, _ int) ([]domain.RankedItem, error) {
	m.called = true
	return m.items, nil
}
