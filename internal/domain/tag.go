package domain

import "strings"

// Tag is a dictionary entry: Key is the lowercase, trimmed slug and Value the
// display label.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NormalizeTagKey applies the persistence normalization rule for tag keys.
func NormalizeTagKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Text returns the searchable text of a tag: key and value joined, skipping
// empty parts.
func (t Tag) Text() string {
	parts := make([]string, 0, 2)
	if t.Key != "" {
		parts = append(parts, t.Key)
	}
	if t.Value != "" {
		parts = append(parts, t.Value)
	}
	return strings.Join(parts, " ")
}

// TagsText joins the searchable text of several tags.
func TagsText(tags []Tag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		if text := t.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
