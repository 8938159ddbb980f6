// Package feed normalizes heterogeneous remote documents (Atom XML, RSS XML,
// GitHub organization repository JSON) into canonical feed entries.
package feed

import (
	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
)

// ParseFeed auto-detects the XML feed shape from the root element and
// dispatches to the Atom or RSS decoder. Any other root name is a hard
// failure naming both supported shapes; the caller aborts the source's sync
// rather than ingesting a partial document.
func ParseFeed(content []byte) ([]domain.FeedEntry, error) {
	root, err := parseXMLRoot(content)
	if err != nil {
		return nil, err
	}

	switch root.localName() {
	case "feed":
		return parseAtomRoot(root)
	case "rss":
		return parseRSSRoot(root)
	}

	return nil, apperr.NewParse("Unsupported content type: expected an Atom <feed> or RSS <rss> document.")
}
