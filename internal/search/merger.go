package search

import (
	"sort"
	"strings"

	"github.com/mvasilj/content-scout/internal/domain"
)

// Merge sorts candidates by score descending (case-insensitive title as the
// tiebreak) and drops later duplicates sharing the same lowercased title and
// URL. The first occurrence in sorted order wins, so the higher-scored
// duplicate survives.
func Merge(candidates []domain.SearchResultItem) []domain.SearchResultItem {
	sorted := make([]domain.SearchResultItem, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})

	type identity struct {
		title string
		url   string
	}

	seen := make(map[identity]struct{}, len(sorted))
	merged := sorted[:0]
	for _, item := range sorted {
		id := identity{title: strings.ToLower(item.Title), url: item.URL}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, item)
	}

	return merged
}
