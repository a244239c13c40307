package pokemontcg

import "github.com/gradehawk/gradehawk/internal/domain"

// APICard mirrors the card object returned by the Pokémon TCG API v2.
// Only the fields the aggregator consumes are decoded.
type APICard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Rarity string `json:"rarity"`
	Set    APISet `json:"set"`
	Images struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
}

// APISet mirrors the nested set object on a card.
type APISet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"`
}

// cardsResponse is the envelope the API wraps card lists in.
type cardsResponse struct {
	Data []APICard `json:"data"`
}

// ToDomainCard converts an APICard into the domain representation. The large
// image is preferred; listings fall back to the small one when absent.
func (c *APICard) ToDomainCard() domain.CardMetadata {
	img := c.Images.Large
	if img == "" {
		img = c.Images.Small
	}
	return domain.CardMetadata{
		Name:        c.Name,
		ID:          c.ID,
		SetName:     c.Set.Name,
		SetSeries:   c.Set.Series,
		Number:      c.Number,
		Rarity:      c.Rarity,
		ReleaseDate: c.Set.ReleaseDate,
		ImageURL:    img,
	}
}
