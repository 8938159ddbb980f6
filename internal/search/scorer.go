// Package search implements the federated search engine: five candidate
// generators over one content store, a deterministic lexical scorer, and a
// score-ordered merger.
package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mvasilj/content-scout/pkg/stringsutil"
)

const (
	phraseBonus = 2.0
	termBonus   = 0.5
)

// WeightedText is one scorable field with its role weight.
type WeightedText struct {
	Text   string
	Weight float64
}

// Scorer computes lexical relevance. Deterministic: the same query and
// fields always produce the same score.
type Scorer struct {
	policy *bluemonday.Policy
}

func NewScorer() *Scorer {
	return &Scorer{policy: bluemonday.StrictPolicy()}
}

// Clean strips markup, decodes entities and collapses whitespace, so scoring
// compares rendered text rather than raw editorial markup.
func (s *Scorer) Clean(text string) string {
	return stringsutil.CollapseWhitespace(html.UnescapeString(s.policy.Sanitize(text)))
}

// Score produces a non-negative relevance for a query against weighted
// fields. A case-insensitive substring match of the whole query contributes
// 2.0 x weight; each query term found in the field contributes a further
// 0.5 x weight. Contributions are additive across fields and bonuses.
func (s *Scorer) Score(query string, fields []WeightedText) float64 {
	cleanedQuery := strings.ToLower(stringsutil.CollapseWhitespace(query))
	if cleanedQuery == "" {
		return 0
	}
	terms := strings.Fields(cleanedQuery)

	var score float64
	for _, field := range fields {
		if field.Text == "" || field.Weight == 0 {
			continue
		}
		cleaned := strings.ToLower(s.Clean(field.Text))
		if cleaned == "" {
			continue
		}

		if strings.Contains(cleaned, cleanedQuery) {
			score += phraseBonus * field.Weight
		}
		for _, term := range terms {
			if strings.Contains(cleaned, term) {
				score += termBonus * field.Weight
			}
		}
	}

	return score
}
