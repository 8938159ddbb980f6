package search

import (
	"testing"

	"github.com/mvasilj/content-scout/internal/domain"
)

func TestMergeSortsByScoreThenTitle(t *testing.T) {
	merged := Merge([]domain.SearchResultItem{
		{Title: "zebra", URL: "/z", Score: 2.0},
		{Title: "Apple", URL: "/a", Score: 2.0},
		{Title: "middle", URL: "/m", Score: 5.0},
	})

	if len(merged) != 3 {
		t.Fatalf("got %d items", len(merged))
	}
	if merged[0].Title != "middle" {
		t.Errorf("highest score should come first, got %q", merged[0].Title)
	}
	if merged[1].Title != "Apple" || merged[2].Title != "zebra" {
		t.Errorf("ties should break on case-insensitive title: %q, %q", merged[1].Title, merged[2].Title)
	}
}

func TestMergeDropsLaterDuplicates(t *testing.T) {
	merged := Merge([]domain.SearchResultItem{
		{Title: "Guidance", URL: "/g", Score: 1.0, SourceName: "low"},
		{Title: "guidance", URL: "/g", Score: 4.0, SourceName: "high"},
		{Title: "Guidance", URL: "/other", Score: 0.5},
	})

	if len(merged) != 2 {
		t.Fatalf("got %d items, want 2", len(merged))
	}
	if merged[0].SourceName != "high" {
		t.Errorf("the higher-scored duplicate must survive, got %q", merged[0].SourceName)
	}
	if merged[1].URL != "/other" {
		t.Errorf("same title with a different URL is not a duplicate")
	}
}
