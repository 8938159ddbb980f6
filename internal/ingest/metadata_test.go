package ingest

import (
	"testing"

	"github.com/mvasilj/content-scout/internal/domain"
)

func TestBuildItemMetadata(t *testing.T) {
	entry := domain.FeedEntry{
		Format:       domain.FormatRSS,
		EntryID:      "abc-123",
		AuthorNames:  []string{"Joan"},
		PublishedRaw: "Mon, 05 Feb 2024 09:00:00 GMT",
		UpdatedRaw:   "",
		Metadata: map[string]any{
			"language":    "Go",
			"topics":      []string{},
			"open_issues": float64(7),
			"extra":       nil,
		},
	}

	metadata := BuildItemMetadata(entry)

	for _, key := range []string{"updated_raw", "topics", "extra"} {
		if _, ok := metadata[key]; ok {
			t.Errorf("empty value %q should be pruned", key)
		}
	}

	if metadata["format"] != "rss" {
		t.Errorf("format = %v", metadata["format"])
	}
	if metadata["entry_id"] != "abc-123" {
		t.Errorf("entry_id = %v", metadata["entry_id"])
	}
	if metadata["language"] != "Go" {
		t.Errorf("language = %v", metadata["language"])
	}
	if metadata["open_issues"] != float64(7) {
		t.Errorf("open_issues = %v", metadata["open_issues"])
	}
	names, ok := metadata["author_names"].([]string)
	if !ok || len(names) != 1 {
		t.Errorf("author_names = %v", metadata["author_names"])
	}
}

func TestBuildItemMetadataKeepsZeroValues(t *testing.T) {
	entry := domain.FeedEntry{
		Format:  domain.FormatGithubRepos,
		EntryID: "org/quiet-repo",
		Metadata: map[string]any{
			"watchers":    float64(0),
			"open_issues": float64(0),
			"archived":    false,
		},
	}

	metadata := BuildItemMetadata(entry)

	if got, ok := metadata["watchers"]; !ok || got != float64(0) {
		t.Errorf("watchers = %v, want 0 to survive pruning", got)
	}
	if got, ok := metadata["open_issues"]; !ok || got != float64(0) {
		t.Errorf("open_issues = %v, want 0 to survive pruning", got)
	}
	if got, ok := metadata["archived"]; !ok || got != false {
		t.Errorf("archived = %v, want false to survive pruning", got)
	}
}

func TestBuildItemMetadataEntryExtrasWin(t *testing.T) {
	entry := domain.FeedEntry{
		Format:   domain.FormatAtom,
		EntryID:  "id-1",
		Metadata: map[string]any{"entry_id": "override"},
	}

	metadata := BuildItemMetadata(entry)
	if metadata["entry_id"] != "override" {
		t.Errorf("entry extras should win over bookkeeping keys, got %v", metadata["entry_id"])
	}
}
