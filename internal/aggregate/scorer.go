package aggregate

import (
	"sort"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// Scoring policy constants. These are fixed product policy, not tunables.
const (
	arbitrageRatio = 0.85 // listing price vs. reference lowest ask
	stealRatio     = 0.80 // listing price vs. same-grade average
	arbitrageScore = 90
	stealBonus     = 20
)

// Score annotates every listing in place with its deal score and the
// arbitrage/steal flags.
//
// A listing priced below 85% of the reference lowest ask is an arbitrage
// opportunity and its score becomes 90 outright. Independently, a listing
// priced below 80% of its own grade's average is a steal and earns +20 on
// top of whatever score it has, so an arbitrage steal reaches 110. The
// lowest-ask comparison is against the reference product as a whole; it does
// not check that the reference grade matches the listing's grade.
//
// Scoring is deterministic and idempotent over the reset-then-score cycle:
// every call starts each listing back at the default score with both flags
// cleared.
func Score(listings []domain.Listing, stats map[string]domain.GradeStats, comparisons map[string]*domain.SourceQuote) {
	lowestAsk := referenceLowestAsk(comparisons)

	for i := range listings {
		l := &listings[i]
		l.DealScore = domain.DefaultDealScore
		l.IsArbitrage = false
		l.IsSteal = false

		if lowestAsk > 0 && l.Price < lowestAsk*arbitrageRatio {
			l.IsArbitrage = true
			l.DealScore = arbitrageScore
		}

		if s, ok := stats[gradeKey(l.Grade)]; ok && s.Average > 0 && l.Price < s.Average*stealRatio {
			l.IsSteal = true
			l.DealScore += stealBonus
		}
	}
}

// referenceLowestAsk extracts the first present lowest-ask value from the
// comparison quotes, scanning sources in sorted name order so the choice is
// deterministic. Zero means no reference is available and arbitrage
// detection is skipped.
func referenceLowestAsk(comparisons map[string]*domain.SourceQuote) float64 {
	names := make([]string, 0, len(comparisons))
	for name := range comparisons {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		q := comparisons[name]
		if q != nil && q.LowestAsk != nil && *q.LowestAsk > 0 {
			return *q.LowestAsk
		}
	}
	return 0
}
