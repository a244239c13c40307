package domain

import "time"

// GradeStats summarizes the listing prices observed for a single grade
// within one aggregation cycle. Recomputed from scratch every cycle and
// owned exclusively by that cycle's SearchResult.
type GradeStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int     `json:"count"`
}

// SearchResult is the response envelope for one aggregation cycle: the
// resolved card, the ranked listings, per-grade market statistics, and the
// raw per-source reference quotes. Comparisons entries are nil for sources
// that returned nothing, which is an expected outcome rather than an error.
type SearchResult struct {
	Query        string                  `json:"query"`
	Card         CardMetadata            `json:"card"`
	Listings     []Listing               `json:"listings"`
	MarketStats  map[string]GradeStats   `json:"market_stats"`
	Comparisons  map[string]*SourceQuote `json:"comparison_data"`
	TotalResults int                     `json:"total_results"`
}

// SearchSnapshot is a persisted copy of a completed SearchResult. Snapshots
// are retained for a bounded TTL to serve the recent-searches endpoint and
// are archived to cold storage before expiry.
type SearchSnapshot struct {
	ID        string       `json:"id"`
	Query     string       `json:"query"`
	CardName  string       `json:"card_name"`
	SetName   string       `json:"set_name,omitempty"`
	Result    SearchResult `json:"result"`
	Arbitrage bool         `json:"arbitrage"` // at least one listing was flagged
	TotalHits int          `json:"total_hits"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}
