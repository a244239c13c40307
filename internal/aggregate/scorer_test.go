package aggregate

import (
	"testing"

	"github.com/gradehawk/gradehawk/internal/domain"
)

func quoteWithAsk(ask float64) map[string]*domain.SourceQuote {
	return map[string]*domain.SourceQuote{
		"stockx": {Source: "stockx", LowestAsk: domain.Float(ask)},
	}
}

func TestScoreArbitrage(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		lowestAsk float64
		arbitrage bool
		score     int
	}{
		{"well below ask", 80, 100, true, 90},
		{"just below threshold", 84.99, 100, true, 90},
		{"at threshold", 85, 100, false, 50},
		{"above threshold", 90, 100, false, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings := []domain.Listing{listing(10, tt.price)}
			Score(listings, nil, quoteWithAsk(tt.lowestAsk))

			l := listings[0]
			if l.IsArbitrage != tt.arbitrage {
				t.Errorf("IsArbitrage = %v, want %v", l.IsArbitrage, tt.arbitrage)
			}
			if l.DealScore != tt.score {
				t.Errorf("DealScore = %d, want %d", l.DealScore, tt.score)
			}
		})
	}
}

func TestScoreSteal(t *testing.T) {
	// Average for grade 10 is (100+200+300)/3 = 200; steal threshold 160.
	listings := []domain.Listing{
		listing(10, 100),
		listing(10, 200),
		listing(10, 300),
	}
	stats := ComputeStats(listings)
	Score(listings, stats, nil)

	if !listings[0].IsSteal {
		t.Error("100 vs avg 200 should be a steal")
	}
	if listings[0].DealScore != 70 {
		t.Errorf("steal-only DealScore = %d, want 70", listings[0].DealScore)
	}
	for i := 1; i < 3; i++ {
		if listings[i].IsSteal {
			t.Errorf("listing %d should not be a steal", i)
		}
		if listings[i].DealScore != domain.DefaultDealScore {
			t.Errorf("listing %d DealScore = %d, want %d", i, listings[i].DealScore, domain.DefaultDealScore)
		}
	}
}

// An arbitrage that is also a steal stacks to 110: the absolute 90 from the
// ask comparison plus the 20 steal bonus.
func TestScoreArbitrageStealStacks(t *testing.T) {
	listings := []domain.Listing{
		listing(10, 100),
		listing(10, 500),
		listing(10, 600),
	}
	stats := ComputeStats(listings) // avg 400, steal threshold 320
	Score(listings, stats, quoteWithAsk(200))

	l := listings[0]
	if !l.IsArbitrage || !l.IsSteal {
		t.Fatalf("expected arbitrage steal, got arbitrage=%v steal=%v", l.IsArbitrage, l.IsSteal)
	}
	if l.DealScore != 110 {
		t.Errorf("DealScore = %d, want 110", l.DealScore)
	}
}

func TestScoreNoReference(t *testing.T) {
	listings := []domain.Listing{listing(10, 1)}
	Score(listings, nil, nil)

	l := listings[0]
	if l.IsArbitrage || l.IsSteal {
		t.Error("no reference data should flag nothing")
	}
	if l.DealScore != domain.DefaultDealScore {
		t.Errorf("DealScore = %d, want %d", l.DealScore, domain.DefaultDealScore)
	}
}

// A nil quote entry or a quote without a lowest ask contributes nothing.
func TestScoreSkipsAbsentQuotes(t *testing.T) {
	comparisons := map[string]*domain.SourceQuote{
		"pwcc":   nil,
		"stockx": {Source: "stockx", LastSale: domain.Float(500)},
	}
	listings := []domain.Listing{listing(10, 10)}
	Score(listings, nil, comparisons)

	if listings[0].IsArbitrage {
		t.Error("no lowest ask present, arbitrage must not trigger")
	}
}

// Scoring twice over the same inputs yields the same result; the score and
// flags are reset on every pass.
func TestScoreIdempotent(t *testing.T) {
	listings := []domain.Listing{
		listing(10, 100),
		listing(10, 500),
		listing(10, 600),
	}
	stats := ComputeStats(listings)
	comparisons := quoteWithAsk(200)

	Score(listings, stats, comparisons)
	first := make([]domain.Listing, len(listings))
	copy(first, listings)

	Score(listings, stats, comparisons)
	for i := range listings {
		if listings[i] != first[i] {
			t.Errorf("listing %d changed on re-score: %+v vs %+v", i, listings[i], first[i])
		}
	}
}
