package search

import (
	"context"
	"strings"
	"time"

	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/storage"
)

func (e *Engine) pageCandidates(ctx context.Context, query string, f storage.Filters) ([]domain.SearchResultItem, error) {
	pages, err := e.pages.SearchPages(ctx, query, f)
	if err != nil {
		return nil, err
	}

	w := e.cfg.Weights.Page
	var results []domain.SearchResultItem
	for _, p := range pages {
		score := e.scorer.Score(query, []WeightedText{
			{Text: p.Title, Weight: w.Title},
			{Text: p.SEOTitle, Weight: w.SEOTitle},
			{Text: p.SearchDescription, Weight: w.Description},
			{Text: domain.TagsText(p.Tags), Weight: w.Tags},
		})
		if score <= 0 {
			continue
		}

		results = append(results, domain.SearchResultItem{
			Title:             p.Title,
			SearchDescription: p.SearchDescription,
			URL:               p.URL,
			Score:             score,
			Breadcrumbs:       p.Breadcrumbs,
			Tags:              tagValues(p.Tags),
			LastUpdated:       p.FirstPublishedAt,
		})
	}

	return results, nil
}

// heroCandidates prefers the backend's native rank when it reports one;
// substring backends fall back to the lexical scorer.
func (e *Engine) heroCandidates(ctx context.Context, query string, f storage.Filters) ([]domain.SearchResultItem, error) {
	ranked, err := e.pages.SearchHero(ctx, query, f)
	if err != nil {
		return nil, err
	}

	w := e.cfg.Weights.Hero
	var results []domain.SearchResultItem
	for _, r := range ranked {
		p := r.Page

		score := r.Rank
		if score == 0 {
			score = e.scorer.Score(query, []WeightedText{
				{Text: p.HeroTitle, Weight: w.Title},
				{Text: p.HeroIntro, Weight: w.Intro},
			})
		}
		if score <= 0 {
			continue
		}

		title := p.Title
		if title == "" {
			title = p.HeroTitle
		}
		description := p.HeroIntro
		if description == "" {
			description = p.SearchDescription
		}

		results = append(results, domain.SearchResultItem{
			Title:             title,
			SearchDescription: description,
			URL:               p.URL,
			Score:             score,
			Breadcrumbs:       p.Breadcrumbs,
			Tags:              tagValues(p.Tags),
			LastUpdated:       p.FirstPublishedAt,
		})
	}

	return results, nil
}

// cardCandidates iterates the embedded cards of section pages. A card only
// qualifies when the raw query appears somewhere in its concatenated text;
// scoring then weighs the card's individual fields.
func (e *Engine) cardCandidates(ctx context.Context, query string, f storage.Filters) ([]domain.SearchResultItem, error) {
	pages, err := e.pages.SearchSections(ctx, query, f)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	w := e.cfg.Weights.Card

	var results []domain.SearchResultItem
	for _, p := range pages {
		for _, row := range p.Rows {
			for _, card := range row.Cards {
				cardTags := strings.Join(card.Tags, " ")
				haystack := strings.ToLower(strings.Join([]string{
					card.Title, card.Text, card.LinkText, card.LinkURL, cardTags,
				}, " "))
				if !strings.Contains(haystack, needle) {
					continue
				}

				score := e.scorer.Score(query, []WeightedText{
					{Text: card.Title, Weight: w.Title},
					{Text: card.Text, Weight: w.Text},
					{Text: card.LinkText, Weight: w.LinkText},
					{Text: card.LinkURL, Weight: w.LinkURL},
					{Text: cardTags, Weight: w.Tags},
				})
				if score <= 0 {
					continue
				}

				url := card.LinkURL
				if url == "" {
					url = p.URL
				}
				title := card.Title
				if title == "" {
					title = p.Title
				}
				description := card.Text
				if description == "" {
					description = p.SearchDescription
				}
				if description == "" {
					description = "Card in " + p.Title
				}

				results = append(results, domain.SearchResultItem{
					Title:             title,
					SearchDescription: description,
					URL:               url,
					Score:             score,
					Breadcrumbs:       p.Breadcrumbs,
					Tags:              mergeTagValues(card.Tags, p.Tags),
					LastUpdated:       p.FirstPublishedAt,
				})
			}
		}
	}

	return results, nil
}

func (e *Engine) tagCandidates(ctx context.Context, query string, f storage.Filters) ([]domain.SearchResultItem, error) {
	pages, err := e.pages.PagesByTagSubstring(ctx, query, f)
	if err != nil {
		return nil, err
	}

	w := e.cfg.Weights.Tag
	var results []domain.SearchResultItem
	for _, p := range pages {
		score := e.scorer.Score(query, []WeightedText{
			{Text: domain.TagsText(p.Tags), Weight: w.Tags},
		})
		if score <= 0 {
			continue
		}

		description := p.SearchDescription
		if description == "" {
			description = "Tagged: " + strings.Join(tagValues(p.Tags), ", ")
		}

		results = append(results, domain.SearchResultItem{
			Title:             p.Title,
			SearchDescription: description,
			URL:               p.URL,
			Score:             score,
			Breadcrumbs:       p.Breadcrumbs,
			Tags:              tagValues(p.Tags),
			LastUpdated:       p.FirstPublishedAt,
		})
	}

	return results, nil
}

// externalCandidates scores discovered items, adding a recency boost so
// fresher content wins among textual ties.
func (e *Engine) externalCandidates(ctx context.Context, query string, f storage.Filters) ([]domain.SearchResultItem, error) {
	var ranked []domain.RankedItem
	var err error

	// The mirror cannot scope by site; site-scoped searches stay on the
	// primary store.
	if e.mirror != nil && f.SiteID == nil {
		ranked, err = e.mirror.SearchItems(ctx, query, mirrorCandidateLimit)
	} else {
		ranked, err = e.items.SearchItems(ctx, query, f.SiteID)
	}
	if err != nil {
		return nil, err
	}

	w := e.cfg.Weights.External
	now := e.now().UTC()

	var results []domain.SearchResultItem
	for _, r := range ranked {
		item := r.Item
		tagsText := domain.TagsText(item.Tags)

		score := e.scorer.Score(query, []WeightedText{
			{Text: item.Title, Weight: w.Title},
			{Text: item.Summary, Weight: w.Summary},
			{Text: item.URL, Weight: w.URL},
			{Text: item.SourceName, Weight: w.SourceName},
			{Text: tagsText, Weight: w.Tags},
		})
		if score <= 0 {
			continue
		}
		score += recencyBoost(itemFreshness(item), now)

		description := item.Summary
		if description == "" && item.SourceName != "" {
			description = "Source: " + item.SourceName
		}
		if description == "" && len(item.Tags) > 0 {
			description = "Tagged: " + strings.Join(tagValues(item.Tags), ", ")
		}

		results = append(results, domain.SearchResultItem{
			Title:             item.Title,
			SearchDescription: description,
			URL:               item.URL,
			Score:             score,
			Tags:              tagValues(item.Tags),
			SourceName:        item.SourceName,
			LastUpdated:       itemFreshness(item),
		})
	}

	return results, nil
}

// itemFreshness picks the timestamp recency is judged by: the update time,
// then the publication time, then when the item was last re-discovered.
func itemFreshness(item domain.ExternalItem) *time.Time {
	if item.UpdatedAt != nil {
		return item.UpdatedAt
	}
	if item.PublishedAt != nil {
		return item.PublishedAt
	}
	if !item.LastSeenAt.IsZero() {
		t := item.LastSeenAt
		return &t
	}
	return nil
}

// recencyBoost decays from 1.0 toward zero with a 30-day half-life scale:
// a fresh item gains close to a full point, a year-old one almost nothing.
func recencyBoost(t *time.Time, now time.Time) float64 {
	if t == nil {
		return 0
	}
	ageDays := now.Sub(*t).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return 1.0 / (1.0 + ageDays/30.0)
}

func tagValues(tags []domain.Tag) []string {
	var values []string
	for _, t := range tags {
		if t.Value != "" {
			values = append(values, t.Value)
		} else if t.Key != "" {
			values = append(values, t.Key)
		}
	}
	return values
}

// mergeTagValues combines a card's own tags with its hosting page's,
// de-duplicating case-insensitively with the card's order first.
func mergeTagValues(cardTags []string, pageTags []domain.Tag) []string {
	var merged []string
	seen := make(map[string]struct{})

	add := func(value string) {
		if value == "" {
			return
		}
		lowered := strings.ToLower(value)
		if _, dup := seen[lowered]; dup {
			return
		}
		seen[lowered] = struct{}{}
		merged = append(merged, value)
	}

	for _, v := range cardTags {
		add(v)
	}
	for _, v := range tagValues(pageTags) {
		add(v)
	}
	return merged
}
