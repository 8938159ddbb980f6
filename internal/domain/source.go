package domain

import "github.com/google/uuid"

// DiscoverySource is one operator-configured remote endpoint to discover
// content from: a sitemap, feed or API URL. Read-only to the ingestion
// pipeline; created and edited by administrators.
type DiscoverySource struct {
	ID     uuid.UUID `json:"id"`
	SiteID uuid.UUID `json:"siteId,omitempty"`
	Name   string    `json:"name,omitempty"`
	URL    string    `json:"url"`
	// Skips certificate verification for this source only. Escape hatch for
	// self-signed internal endpoints; never a global default.
	DisableTLSVerification bool `json:"disableTlsVerification,omitempty"`
	// Tag keys applied to every item discovered from this source.
	DefaultTags []string `json:"defaultTags,omitempty"`
}

// Label returns the display name, falling back to the URL.
func (s DiscoverySource) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}
