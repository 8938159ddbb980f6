package feed

import (
	"errors"
	"testing"

	"github.com/mvasilj/content-scout/internal/apperr"
	"github.com/mvasilj/content-scout/internal/domain"
)

const rssFixture = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Example blog</title>
    <item>
      <title>Accessibility regulations update</title>
      <link>https://example.org/posts/a11y</link>
      <description>Short description.</description>
      <pubDate>Mon, 05 Feb 2024 09:00:00 GMT</pubDate>
      <guid>a11y-2024</guid>
      <dc:creator>Joan</dc:creator>
      <author>editor@example.org</author>
    </item>
    <item>
      <title>Encoded body only</title>
      <link>https://example.org/posts/encoded</link>
      <content:encoded>Long body text.</content:encoded>
      <dc:date>2024-02-06T12:00:00Z</dc:date>
    </item>
  </channel>
</rss>`

func TestParseRSS(t *testing.T) {
	entries, err := ParseRSS([]byte(rssFixture))
	if err != nil {
		t.Fatalf("ParseRSS() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Format != domain.FormatRSS {
		t.Errorf("format = %s, want rss", first.Format)
	}
	if first.URL != "https://example.org/posts/a11y" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Summary != "Short description." {
		t.Errorf("summary = %q", first.Summary)
	}
	if first.EntryID != "a11y-2024" {
		t.Errorf("entry id = %q", first.EntryID)
	}
	if len(first.AuthorNames) != 2 {
		t.Errorf("author names = %v, both dc:creator and author should collect", first.AuthorNames)
	}
	if first.CreatedAt == nil {
		t.Fatal("pubDate should parse")
	}

	second := entries[1]
	if second.Summary != "Long body text." {
		t.Errorf("summary = %q, content:encoded should be matched by local name", second.Summary)
	}
	if second.PublishedRaw != "2024-02-06T12:00:00Z" {
		t.Errorf("published raw = %q, dc:date should be in the synonym set", second.PublishedRaw)
	}
	if second.EntryID != second.URL {
		t.Errorf("entry id = %q, should fall back to the URL", second.EntryID)
	}
}

func TestParseRSSMissingChannel(t *testing.T) {
	_, err := ParseRSS([]byte(`<rss version="2.0"><item><title>x</title></item></rss>`))
	if err == nil {
		t.Fatal("an <rss> document without <channel> must fail structurally")
	}
	var pe *apperr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error should be a ParseError, got %T", err)
	}
	if pe.Message != "Unsupported RSS document: missing required <channel> element." {
		t.Errorf("unexpected message: %q", pe.Message)
	}
}

func TestParseRSSWrongRoot(t *testing.T) {
	_, err := ParseRSS([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"/>`))
	var pe *apperr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error should be a ParseError, got %v", err)
	}
}
