package model

// Recommendation pairs a catalog item with a deterministic score and the
// human-readable reasons that contributed to it. Recommendations are derived
// per request and never persisted.
type Recommendation struct {
	Item    Item     `json:"item"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// RankedItem is one advisory justification keyed by item id.
type RankedItem struct {
	ID  string `json:"id"`
	Why string `json:"why"`
}

// AdvisoryResult is the parsed, validated output of one advisory call.
// Ranked references a subset (or all) of the item ids that were sent to the
// advisory service; Alternatives are stylistic directions, not catalog items.
type AdvisoryResult struct {
	Summary      string       `json:"summary"`
	Tips         []string     `json:"tips"`
	Ranked       []RankedItem `json:"ranked"`
	Alternatives []string     `json:"alternatives,omitempty"`
}
