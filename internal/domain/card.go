package domain

// CardMetadata is the canonical identity of a card as resolved from the
// card database. The canonical name and set name are what the
// reference-price sources are targeted with, never the raw user query.
type CardMetadata struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	SetName     string `json:"set_name"`
	SetSeries   string `json:"set_series"`
	Number      string `json:"number"`
	Rarity      string `json:"rarity"`
	ReleaseDate string `json:"release_date,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// FeaturedCard is a curated card shown on the homepage.
type FeaturedCard struct {
	Name     string `json:"name"`
	Set      string `json:"set"`
	ImageURL string `json:"image"`
}
