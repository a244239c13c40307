package ebay

// APIItemSummary mirrors an item summary from the eBay Browse API search
// response. Only the fields the aggregator consumes are decoded.
type APIItemSummary struct {
	ItemID string `json:"itemId"`
	Title  string `json:"title"`
	Price  struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"price"`
	ItemWebURL string `json:"itemWebUrl"`
	Image      struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image"`
	Condition    string `json:"condition"`
	ItemLocation struct {
		Country string `json:"country"`
	} `json:"itemLocation"`
}

// searchResponse is the envelope around a Browse API search result page.
type searchResponse struct {
	Total         int              `json:"total"`
	ItemSummaries []APIItemSummary `json:"itemSummaries"`
}

// apiErrorResponse is the Browse API error envelope.
type apiErrorResponse struct {
	Errors []struct {
		ErrorID int    `json:"errorId"`
		Message string `json:"message"`
	} `json:"errors"`
}
