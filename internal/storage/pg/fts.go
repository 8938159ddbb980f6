package pg

import (
	"fmt"
	"math"
)

// FieldWeight pairs a vector field with its boost for ranking.
type FieldWeight struct {
	Field  string
	Weight float64
}

// Weight label assignment of the external_items search vector. Labels
// determine which document sections are searched; the ts_rank weights array
// is ordered {D, C, B, A}. Only four labels exist, so the url and
// source_name fields share D.
var itemFieldToLabel = map[string]string{
	"title":       "A",
	"summary":     "B",
	"tags":        "C",
	"url":         "D",
	"source_name": "D",
}

// Weight label assignment of the pages search vector.
var pageFieldToLabel = map[string]string{
	"title":              "A",
	"seo_title":          "B",
	"search_description": "C",
	"tags":               "D",
}

// Weight label assignment of the pages hero vector.
var heroFieldToLabel = map[string]string{
	"hero_title": "A",
	"hero_intro": "B",
}

var labelToPosition = map[string]int{
	"A": 3,
	"B": 2,
	"C": 1,
	"D": 0,
}

// buildWeightsArray renders a ts_rank weights literal from field boosts.
// PostgreSQL expects reverse order: {D-weight, C-weight, B-weight, A-weight}.
// When two fields share a label, the larger boost wins.
func buildWeightsArray(fieldToLabel map[string]string, boosts []FieldWeight) string {
	weights := [4]float64{}

	for _, fb := range boosts {
		label, ok := fieldToLabel[fb.Field]
		if !ok {
			continue
		}
		position := labelToPosition[label]
		weights[position] = math.Max(weights[position], fb.Weight)
	}

	return fmt.Sprintf("{%.2f, %.2f, %.2f, %.2f}",
		weights[0], weights[1], weights[2], weights[3])
}

// buildRankExpression constructs a weighted ts_rank over a stored vector
// column, with the query text bound at the given parameter position.
func buildRankExpression(vectorColumn string, fieldToLabel map[string]string, boosts []FieldWeight, paramNum int) string {
	queryExpr := fmt.Sprintf("plainto_tsquery('english'::regconfig, $%d)", paramNum)

	if len(boosts) > 0 {
		return fmt.Sprintf("ts_rank('%s', %s, %s)",
			buildWeightsArray(fieldToLabel, boosts), vectorColumn, queryExpr)
	}
	return fmt.Sprintf("ts_rank(%s, %s)", vectorColumn, queryExpr)
}

// buildMatchClause constructs the @@ predicate for a stored vector column.
func buildMatchClause(vectorColumn string, paramNum int) string {
	return fmt.Sprintf("%s @@ plainto_tsquery('english'::regconfig, $%d)", vectorColumn, paramNum)
}
