package feed

import (
	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
)

// ParseRSS decodes an RSS document into feed entries. The root must be <rss>
// with a <channel> child; item children are matched by local name
// case-insensitively so namespaced synonyms (content:encoded, dc:creator,
// dc:date) are picked up.
func ParseRSS(content []byte) ([]domain.FeedEntry, error) {
	root, err := parseXMLRoot(content)
	if err != nil {
		return nil, err
	}
	return parseRSSRoot(root)
}

func parseRSSRoot(root *xmlNode) ([]domain.FeedEntry, error) {
	if root.localName() != "rss" {
		return nil, apperr.NewParse("Unsupported content type: expected an RSS <rss> document.")
	}

	var channel *xmlNode
	for i := range root.Children {
		if root.Children[i].localName() == "channel" {
			channel = &root.Children[i]
			break
		}
	}
	if channel == nil {
		return nil, apperr.NewParse("Unsupported RSS document: missing required <channel> element.")
	}

	var entries []domain.FeedEntry
	for i := range channel.Children {
		itemNode := &channel.Children[i]
		if itemNode.localName() != "item" {
			continue
		}

		url := itemNode.findTextLocal("link")
		summary := itemNode.findTextLocal("description", "summary", "content", "encoded")
		publishedRaw := itemNode.findTextLocal("pubDate", "published", "created", "date")
		updatedRaw := itemNode.findTextLocal("updated", "modified")
		if updatedRaw == "" {
			updatedRaw = publishedRaw
		}

		entryID := itemNode.findTextLocal("guid", "id")
		if entryID == "" {
			entryID = url
		}

		entries = append(entries, domain.FeedEntry{
			Format:       domain.FormatRSS,
			URL:          url,
			Title:        itemNode.findTextLocal("title"),
			Summary:      summary,
			CreatedAt:    ParseTimestamp(firstNonEmpty(publishedRaw, updatedRaw)),
			UpdatedAt:    ParseTimestamp(firstNonEmpty(updatedRaw, publishedRaw)),
			EntryID:      entryID,
			AuthorNames:  itemNode.findAllTextLocal("author", "creator"),
			PublishedRaw: publishedRaw,
			UpdatedRaw:   updatedRaw,
		})
	}

	return entries, nil
}
