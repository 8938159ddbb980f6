// Package ingest orchestrates source synchronization: fetch, parse, dedupe
// and upsert into the external-content store.
package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/feed"
	"github.com/mvasilj/content-scout/internal/fetch"
	"github.com/mvasilj/content-scout/internal/storage"
)

// SourceFetcher retrieves the raw document behind a source URL.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) ([]byte, error)
}

type Syncer struct {
	fetcher SourceFetcher
	items   storage.ItemStore
	timeout time.Duration
}

func NewSyncer(fetcher SourceFetcher, items storage.ItemStore, timeout time.Duration) *Syncer {
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}
	return &Syncer{
		fetcher: fetcher,
		items:   items,
		timeout: timeout,
	}
}

// SyncSource runs one full pass over one source. A fetch or parse failure
// aborts the pass before anything is written; a storage failure aborts it
// mid-loop. Both surface as an IngestError naming the source.
//
// Created/updated classification compares against the set of URLs that
// existed before the loop started, computed once up front. Entries with a
// blank URL, or a URL already seen earlier in the same pass, are skipped.
func (s *Syncer) SyncSource(ctx context.Context, src domain.DiscoverySource) (domain.SourceSyncResult, error) {
	result := domain.SourceSyncResult{
		SourceID:    src.ID,
		SourceLabel: src.Label(),
		SourceURL:   src.URL,
	}

	isGithub := feed.IsGithubOrgAPIURL(src.URL)

	opts := fetch.Options{
		Timeout:                s.timeout,
		DisableTLSVerification: src.DisableTLSVerification,
	}
	if isGithub {
		opts.Accept = fetch.GithubAccept
	}

	body, err := s.fetcher.Fetch(ctx, src.URL, opts)
	if err != nil {
		return result, apperr.NewIngest(src.Label(), err)
	}

	var entries []domain.FeedEntry
	if isGithub {
		entries, err = feed.ParseGithubRepos(body)
	} else {
		entries, err = feed.ParseFeed(body)
	}
	if err != nil {
		return result, apperr.NewIngest(src.Label(), err)
	}

	existing, err := s.items.ExistingURLs(ctx)
	if err != nil {
		return result, apperr.NewIngest(src.Label(), err)
	}

	var sourceID *uuid.UUID
	if src.ID != uuid.Nil {
		id := src.ID
		sourceID = &id
	}

	result.TotalEntries = len(entries)
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		url := strings.TrimSpace(entry.URL)
		if url == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[url]; dup {
			result.Skipped++
			continue
		}
		seen[url] = struct{}{}

		fields := domain.ItemFields{
			Title:       entry.Title,
			Summary:     entry.Summary,
			PublishedAt: entry.CreatedAt,
			CreatedAt:   entry.CreatedAt,
			UpdatedAt:   entry.UpdatedAt,
			Metadata:    BuildItemMetadata(entry),
		}

		if _, err := s.items.UpsertFromURL(ctx, url, sourceID, fields, src.DefaultTags); err != nil {
			return result, apperr.NewIngest(src.Label(), err)
		}

		if _, known := existing[url]; known {
			result.Updated++
		} else {
			result.Created++
		}
	}

	slog.Info("source sync finished",
		"source", result.SourceLabel,
		"total", result.TotalEntries,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)

	return result, nil
}

// SyncAll attempts every source, isolating failures: one source failing is
// recorded and never prevents the remaining sources from running.
func (s *Syncer) SyncAll(ctx context.Context, sources []domain.DiscoverySource) domain.SyncReport {
	var report domain.SyncReport

	for _, src := range sources {
		result, err := s.SyncSource(ctx, src)
		if err != nil {
			slog.Error("source sync failed", "source", src.Label(), "error", err)
			report.Failures = append(report.Failures, domain.SourceSyncFailure{
				SourceID:    src.ID,
				SourceLabel: src.Label(),
				Message:     err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, result)
	}

	return report
}
