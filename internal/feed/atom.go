package feed

import (
	"strings"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
)

// AtomNamespace is the only XML namespace accepted for <feed> documents.
const AtomNamespace = "http://www.w3.org/2005/Atom"

// ParseAtom decodes an Atom document into feed entries. The root must be a
// <feed> element in the Atom namespace; anything else is a structural
// ParseError.
func ParseAtom(content []byte) ([]domain.FeedEntry, error) {
	root, err := parseXMLRoot(content)
	if err != nil {
		return nil, err
	}
	return parseAtomRoot(root)
}

func parseAtomRoot(root *xmlNode) ([]domain.FeedEntry, error) {
	if root.localName() != "feed" {
		return nil, apperr.NewParse("Unsupported content type: expected an Atom <feed> document.")
	}

	namespace := root.namespace()
	if namespace != "" && namespace != AtomNamespace {
		return nil, apperr.NewParse("Unsupported XML namespace. Only Atom feeds are supported currently.")
	}

	var entries []domain.FeedEntry
	for _, entryNode := range root.childrenNS("entry", namespace) {
		url := atomEntryLink(entryNode, namespace)

		summary := entryNode.findTextNS("summary", namespace)
		if summary == "" {
			summary = entryNode.findTextNS("content", namespace)
		}

		publishedRaw := entryNode.findTextNS("published", namespace)
		updatedRaw := entryNode.findTextNS("updated", namespace)
		if updatedRaw == "" {
			updatedRaw = publishedRaw
		}

		var authorNames []string
		for _, authorNode := range entryNode.childrenNS("author", namespace) {
			if name := authorNode.findTextNS("name", namespace); name != "" {
				authorNames = append(authorNames, name)
			}
		}

		entryID := entryNode.findTextNS("id", namespace)
		if entryID == "" {
			entryID = url
		}

		entries = append(entries, domain.FeedEntry{
			Format:       domain.FormatAtom,
			URL:          url,
			Title:        entryNode.findTextNS("title", namespace),
			Summary:      summary,
			CreatedAt:    ParseTimestamp(firstNonEmpty(publishedRaw, updatedRaw)),
			UpdatedAt:    ParseTimestamp(firstNonEmpty(updatedRaw, publishedRaw)),
			EntryID:      entryID,
			AuthorNames:  authorNames,
			PublishedRaw: publishedRaw,
			UpdatedRaw:   updatedRaw,
		})
	}

	return entries, nil
}

// atomEntryLink resolves an entry URL: the first rel="alternate" link wins,
// then the first link with a non-empty href.
func atomEntryLink(entryNode *xmlNode, namespace string) string {
	linkNodes := entryNode.childrenNS("link", namespace)
	for _, linkNode := range linkNodes {
		href := strings.TrimSpace(linkNode.attr("href"))
		rel := strings.ToLower(strings.TrimSpace(linkNode.attr("rel")))
		if rel == "" {
			rel = "alternate"
		}
		if href != "" && rel == "alternate" {
			return href
		}
	}
	for _, linkNode := range linkNodes {
		if href := strings.TrimSpace(linkNode.attr("href")); href != "" {
			return href
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
