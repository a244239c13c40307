package aggregate

import (
	"sort"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// Rank orders listings in place by deal score descending, then price
// ascending. The sort is stable so listings tied on both keys keep their
// input order.
func Rank(listings []domain.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].DealScore != listings[j].DealScore {
			return listings[i].DealScore > listings[j].DealScore
		}
		return listings[i].Price < listings[j].Price
	})
}
