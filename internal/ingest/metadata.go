package ingest

import (
	"github.com/mvasilj/content-scout/internal/domain"
)

// Bookkeeping keys recorded on every stored item alongside the
// source-specific extras.
const (
	metaFormat       = "format"
	metaEntryID      = "entry_id"
	metaAuthorNames  = "author_names"
	metaPublishedRaw = "published_raw"
	metaUpdatedRaw   = "updated_raw"
)

// BuildItemMetadata merges the entry's bookkeeping fields with its
// source-specific extras and prunes empty values (nil, blank strings,
// empty collections). Zero counts and false flags are real data and
// stay in.
func BuildItemMetadata(entry domain.FeedEntry) map[string]any {
	merged := map[string]any{
		metaFormat:       string(entry.Format),
		metaEntryID:      entry.EntryID,
		metaAuthorNames:  entry.AuthorNames,
		metaPublishedRaw: entry.PublishedRaw,
		metaUpdatedRaw:   entry.UpdatedRaw,
	}
	for key, value := range entry.Metadata {
		merged[key] = value
	}

	for key, value := range merged {
		if isEmptyValue(value) {
			delete(merged, key)
		}
	}
	return merged
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
