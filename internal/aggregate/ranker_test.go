package aggregate

import (
	"testing"

	"github.com/gradehawk/gradehawk/internal/domain"
)

func TestRank(t *testing.T) {
	listings := []domain.Listing{
		{Title: "c", Price: 300, DealScore: 50},
		{Title: "a", Price: 100, DealScore: 110},
		{Title: "d", Price: 200, DealScore: 50},
		{Title: "b", Price: 500, DealScore: 90},
	}

	Rank(listings)

	want := []string{"a", "b", "d", "c"}
	for i, title := range want {
		if listings[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, listings[i].Title, title)
		}
	}
}

// Listings tied on score and price keep their input order.
func TestRankStableOnTies(t *testing.T) {
	listings := []domain.Listing{
		{Title: "first", Price: 100, DealScore: 50},
		{Title: "second", Price: 100, DealScore: 50},
		{Title: "third", Price: 100, DealScore: 50},
	}

	Rank(listings)

	want := []string{"first", "second", "third"}
	for i, title := range want {
		if listings[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, listings[i].Title, title)
		}
	}
}
