// Command content_sync runs one ingestion pass over the configured discovery
// sources and prints a per-source summary. It exits non-zero when any source
// failed so schedulers notice broken feeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mvasilj/content-scout/internal/domain"
	"github.com/mvasilj/content-scout/internal/fetch"
	"github.com/mvasilj/content-scout/internal/ingest"
	"github.com/mvasilj/content-scout/internal/storage/factory"
)

func main() {
	sourcesPath := flag.String("sources", "", "YAML file to load sources from instead of the store")
	sourceIDs := flag.String("source-id", "", "comma-separated source IDs to sync; default all")
	siteID := flag.String("site-id", "", "only sync sources belonging to this site")
	timeout := flag.Duration("timeout", fetch.DefaultTimeout, "per-source fetch timeout")
	flag.Parse()

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *sourcesPath == "" {
		*sourcesPath = cfg.SourcesFile
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backends, err := factory.NewBackends(ctx, &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backends", "error", err)
		os.Exit(1)
	}
	defer backends.Close()

	sources, err := resolveSources(ctx, backends, *sourcesPath, *siteID)
	if err != nil {
		slog.Error("Failed to resolve sources", "error", err)
		os.Exit(1)
	}

	sources, err = filterSources(sources, *sourceIDs)
	if err != nil {
		slog.Error("Failed to select sources", "error", err)
		os.Exit(1)
	}

	if len(sources) == 0 {
		fmt.Println("No sources to sync.")
		return
	}

	syncer := ingest.NewSyncer(fetch.New(), backends.ItemSink(), *timeout)
	report := syncer.SyncAll(ctx, sources)

	printReport(report, len(sources))

	if len(report.Failures) > 0 {
		os.Exit(1)
	}
}

// resolveSources loads the source list from the YAML file when one is named,
// otherwise from the store, scoped to a site when requested.
func resolveSources(ctx context.Context, backends *factory.Backends, path, site string) ([]domain.DiscoverySource, error) {
	var siteFilter *uuid.UUID
	if site != "" {
		id, err := uuid.Parse(site)
		if err != nil {
			return nil, fmt.Errorf("invalid site id %q: %w", site, err)
		}
		siteFilter = &id
	}

	if path != "" {
		sources, err := loadSourcesFile(path)
		if err != nil {
			return nil, err
		}
		if siteFilter == nil {
			return sources, nil
		}
		var scoped []domain.DiscoverySource
		for _, src := range sources {
			if src.SiteID == *siteFilter {
				scoped = append(scoped, src)
			}
		}
		return scoped, nil
	}

	if siteFilter != nil {
		return backends.Store.ListSourcesBySite(ctx, *siteFilter)
	}
	return backends.Store.ListSources(ctx)
}

type sourcesFile struct {
	Sources []sourceSpec `yaml:"sources"`
}

type sourceSpec struct {
	ID                     string   `yaml:"id"`
	SiteID                 string   `yaml:"siteId"`
	Name                   string   `yaml:"name"`
	URL                    string   `yaml:"url"`
	DisableTLSVerification bool     `yaml:"disableTlsVerification"`
	DefaultTags            []string `yaml:"defaultTags"`
}

func loadSourcesFile(path string) ([]domain.DiscoverySource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	sources := make([]domain.DiscoverySource, 0, len(file.Sources))
	for i, spec := range file.Sources {
		if spec.URL == "" {
			return nil, fmt.Errorf("source %d in %s has no url", i+1, path)
		}
		src := domain.DiscoverySource{
			Name:                   spec.Name,
			URL:                    spec.URL,
			DisableTLSVerification: spec.DisableTLSVerification,
			DefaultTags:            spec.DefaultTags,
		}
		if spec.ID != "" {
			id, err := uuid.Parse(spec.ID)
			if err != nil {
				return nil, fmt.Errorf("source %d in %s has an invalid id: %w", i+1, path, err)
			}
			src.ID = id
		}
		if spec.SiteID != "" {
			id, err := uuid.Parse(spec.SiteID)
			if err != nil {
				return nil, fmt.Errorf("source %d in %s has an invalid siteId: %w", i+1, path, err)
			}
			src.SiteID = id
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// filterSources keeps only the sources named by the comma-separated id list.
// An empty list keeps everything; an unknown id is an error.
func filterSources(sources []domain.DiscoverySource, ids string) ([]domain.DiscoverySource, error) {
	ids = strings.TrimSpace(ids)
	if ids == "" {
		return sources, nil
	}

	byID := make(map[uuid.UUID]domain.DiscoverySource, len(sources))
	for _, src := range sources {
		byID[src.ID] = src
	}

	var selected []domain.DiscoverySource
	for _, raw := range strings.Split(ids, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid source id %q: %w", raw, err)
		}
		src, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown source id: %s", id)
		}
		selected = append(selected, src)
	}

	return selected, nil
}

func printReport(report domain.SyncReport, attempted int) {
	for _, res := range report.Results {
		fmt.Printf("%s: %d entries (%d created, %d updated, %d skipped)\n",
			res.SourceLabel, res.TotalEntries, res.Created, res.Updated, res.Skipped)
	}
	for _, failure := range report.Failures {
		fmt.Printf("FAILED %s: %s\n", failure.SourceLabel, failure.Message)
	}

	totals := report.Totals()
	fmt.Printf("Completed %d of %d sources. Processed %d entries, created %d, updated %d, skipped %d.\n",
		len(report.Results), attempted, totals.TotalEntries, totals.Created, totals.Updated, totals.Skipped)
}
