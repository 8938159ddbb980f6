package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchResultItem is one ranked hit, produced fresh on every search call and
// never persisted.
type SearchResultItem struct {
	Title             string     `json:"title"`
	SearchDescription string     `json:"searchDescription,omitempty"`
	URL               string     `json:"url"`
	Score             float64    `json:"score"`
	Breadcrumbs       []string   `json:"breadcrumbs,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	SourceName        string     `json:"sourceName,omitempty"`
	LastUpdated       *time.Time `json:"lastUpdated,omitempty"`
}

// SourceSyncResult summarizes one sync pass over one source.
// created + updated + skipped == total entries.
type SourceSyncResult struct {
	SourceID     uuid.UUID `json:"sourceId"`
	SourceLabel  string    `json:"sourceLabel"`
	SourceURL    string    `json:"sourceUrl"`
	TotalEntries int       `json:"totalEntries"`
	Created      int       `json:"created"`
	Updated      int       `json:"updated"`
	Skipped      int       `json:"skipped"`
}

// SourceSyncFailure records one source whose sync aborted.
type SourceSyncFailure struct {
	SourceID    uuid.UUID `json:"sourceId"`
	SourceLabel string    `json:"sourceLabel"`
	Message     string    `json:"message"`
}

// SyncReport is the outcome of a batch sync: one result or one recorded
// failure per attempted source. One source failing never prevents the rest
// from being attempted.
type SyncReport struct {
	Results  []SourceSyncResult  `json:"results"`
	Failures []SourceSyncFailure `json:"failures,omitempty"`
}

// Totals aggregates the counters of the succeeded sources.
func (r SyncReport) Totals() SourceSyncResult {
	var t SourceSyncResult
	for _, res := range r.Results {
		t.TotalEntries += res.TotalEntries
		t.Created += res.Created
		t.Updated += res.Updated
		t.Skipped += res.Skipped
	}
	return t
}
