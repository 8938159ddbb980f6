package pg

import (
	"strings"
	"testing"
)

func TestBuildWeightsArray(t *testing.T) {
	tests := []struct {
		name   string
		labels map[string]string
		boosts []FieldWeight
		want   string
	}{
		{
			name:   "item boosts in reverse label order",
			labels: itemFieldToLabel,
			boosts: []FieldWeight{{"title", 3.5}, {"summary", 2.0}, {"tags", 2.5}, {"url", 1.0}},
			want:   "{1.00, 2.50, 2.00, 3.50}",
		},
		{
			name:   "shared label keeps the larger boost",
			labels: itemFieldToLabel,
			boosts: itemSearchBoosts,
			want:   "{1.50, 2.50, 2.00, 3.50}",
		},
		{
			name:   "unknown fields ignored",
			labels: pageFieldToLabel,
			boosts: []FieldWeight{{"title", 3.0}, {"content", 9.9}},
			want:   "{0.00, 0.00, 0.00, 3.00}",
		},
		{
			name:   "hero fields",
			labels: heroFieldToLabel,
			boosts: []FieldWeight{{"hero_title", 3.0}, {"hero_intro", 2.0}},
			want:   "{0.00, 0.00, 2.00, 3.00}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildWeightsArray(tt.labels, tt.boosts); got != tt.want {
				t.Errorf("buildWeightsArray() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRankExpression(t *testing.T) {
	expr := buildRankExpression("search_vector", itemFieldToLabel, []FieldWeight{{"title", 3.5}}, 1)
	if !strings.HasPrefix(expr, "ts_rank('{") {
		t.Errorf("boosted rank should carry a weights literal, got %q", expr)
	}
	if !strings.Contains(expr, "plainto_tsquery('english'::regconfig, $1)") {
		t.Errorf("rank should bind the query at $1, got %q", expr)
	}

	plain := buildRankExpression("hero_vector", heroFieldToLabel, nil, 2)
	if plain != "ts_rank(hero_vector, plainto_tsquery('english'::regconfig, $2))" {
		t.Errorf("unboosted rank = %q", plain)
	}
}

func TestBuildMatchClause(t *testing.T) {
	got := buildMatchClause("page_vector", 1)
	want := "page_vector @@ plainto_tsquery('english'::regconfig, $1)"
	if got != want {
		t.Errorf("buildMatchClause() = %q, want %q", got, want)
	}
}
