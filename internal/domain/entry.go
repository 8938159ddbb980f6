package domain

import "time"

// FeedFormat identifies the source shape a FeedEntry was decoded from.
type FeedFormat string

const (
	FormatAtom        FeedFormat = "atom"
	FormatRSS         FeedFormat = "rss"
	FormatGithubRepos FeedFormat = "github_org_repositories"
)

// FeedEntry is one normalized item discovered from a remote source, prior to
// storage. URL must be non-empty for an entry to reach the upsert stage; the
// sync orchestrator skips blank and in-pass duplicate URLs.
type FeedEntry struct {
	Format      FeedFormat
	URL         string
	Title       string
	Summary     string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	EntryID     string
	AuthorNames []string
	// Original timestamp strings, preserved for audit.
	PublishedRaw string
	UpdatedRaw   string
	// Source-specific extras (e.g. repository topics, watcher counts).
	Metadata map[string]any
}
