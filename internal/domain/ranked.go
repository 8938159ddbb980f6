package domain

// RankedPage pairs a page with the backend's native relevance rank. A zero
// rank means the backend retrieved without ranking.
type RankedPage struct {
	Page Page
	Rank float64
}

// RankedItem pairs an external item with the backend's native rank.
type RankedItem struct {
	Item ExternalItem
	Rank float64
}
