package service

import "github.com/gradehawk/gradehawk/internal/domain"

// featuredCards is the curated homepage set. Static for now; sourced from
// the highest-traffic searches.
var featuredCards = []domain.FeaturedCard{
	{Name: "Charizard", Set: "Base Set", ImageURL: "https://images.pokemontcg.io/base1/4_hires.png"},
	{Name: "Pikachu", Set: "Jungle", ImageURL: "https://images.pokemontcg.io/base2/60_hires.png"},
	{Name: "Blastoise", Set: "Base Set", ImageURL: "https://images.pokemontcg.io/base1/2_hires.png"},
	{Name: "Venusaur", Set: "Base Set", ImageURL: "https://images.pokemontcg.io/base1/15_hires.png"},
	{Name: "Mewtwo", Set: "Base Set", ImageURL: "https://images.pokemontcg.io/base1/10_hires.png"},
	{Name: "Umbreon VMAX", Set: "Evolving Skies", ImageURL: "https://images.pokemontcg.io/swsh7/215_hires.png"},
	{Name: "Lugia", Set: "Neo Genesis", ImageURL: "https://images.pokemontcg.io/neo1/9_hires.png"},
	{Name: "Rayquaza", Set: "EX Deoxys", ImageURL: "https://images.pokemontcg.io/ex8/97_hires.png"},
}

// FeaturedCards returns the curated cards shown on the homepage. The slice
// is copied so callers cannot mutate the curated set.
func FeaturedCards() []domain.FeaturedCard {
	out := make([]domain.FeaturedCard, len(featuredCards))
	copy(out, featuredCards)
	return out
}
