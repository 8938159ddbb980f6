package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExternalItem is a discovered content entry, keyed by the SHA-256 hash of
// its trimmed URL so re-discovery can never create a second row. Key and URL
// are never allowed to diverge.
type ExternalItem struct {
	ID          uuid.UUID      `json:"id"`
	Key         string         `json:"key"`
	URL         string         `json:"url"`
	SourceID    *uuid.UUID     `json:"sourceId,omitempty"`
	SourceName  string         `json:"sourceName,omitempty"`
	Title       string         `json:"title,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty"`
	Tags        []Tag          `json:"tags,omitempty"`
	Hidden      bool           `json:"hidden,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	FirstSeenAt time.Time      `json:"firstSeenAt"`
	LastSeenAt  time.Time      `json:"lastSeenAt"`
}

// ItemFields carries the overwritable fields of an upsert. Metadata must
// already be merged and pruned by the caller.
type ItemFields struct {
	Title       string
	Summary     string
	PublishedAt *time.Time
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	Metadata    map[string]any
}

// BuildItemKey derives the content-addressed key for a URL. Trims surrounding
// whitespace first, so normalization-equivalent URLs map to the same key.
func BuildItemKey(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(sum[:])
}
