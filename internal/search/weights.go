package search

// Weights is the per-role weight table of the candidate generators. Only the
// table differs per generator; the scoring rule is shared.
type Weights struct {
	Page     PageWeights
	Hero     HeroWeights
	Card     CardWeights
	Tag      TagWeights
	External ExternalWeights
}

type PageWeights struct {
	Title       float64
	SEOTitle    float64
	Description float64
	Tags        float64
}

type HeroWeights struct {
	Title float64
	Intro float64
}

type CardWeights struct {
	Title    float64
	Text     float64
	LinkText float64
	LinkURL  float64
	Tags     float64
}

type TagWeights struct {
	Tags float64
}

type ExternalWeights struct {
	Title      float64
	Summary    float64
	URL        float64
	SourceName float64
	Tags       float64
}

func DefaultWeights() Weights {
	return Weights{
		Page:     PageWeights{Title: 3.0, SEOTitle: 2.0, Description: 1.0, Tags: 1.5},
		Hero:     HeroWeights{Title: 3.0, Intro: 2.0},
		Card:     CardWeights{Title: 3.5, Text: 2.0, LinkText: 1.5, LinkURL: 1.0, Tags: 2.0},
		Tag:      TagWeights{Tags: 3.0},
		External: ExternalWeights{Title: 3.0, Summary: 2.0, URL: 1.0, SourceName: 1.5, Tags: 2.5},
	}
}
