package domain

// SourceQuote is a best-effort reference-price snapshot from one specialized
// marketplace. Scraped sources are sparse and unreliable, so every price
// point is optional: a nil pointer means the source had nothing to say for
// that field. Quotes are created fresh per query, never cached, and
// discarded at the end of the aggregation cycle.
type SourceQuote struct {
	Source       string   `json:"source"`
	LowestAsk    *float64 `json:"lowest_ask,omitempty"`
	LastSale     *float64 `json:"last_sale,omitempty"`
	HighestBid   *float64 `json:"highest_bid,omitempty"`
	MarketPrice  *float64 `json:"market_price,omitempty"`
	ListedMedian *float64 `json:"listed_median,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Float is a convenience for building optional price points.
func Float(v float64) *float64 { return &v }
