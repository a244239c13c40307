package notify

import (
	"fmt"
	"strings"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// FormatDealAlert renders a title and message for an arbitrage alert on a
// completed search. Only flagged listings appear in the body, capped to the
// top five since they are already ranked best-first.
func FormatDealAlert(result *domain.SearchResult) (title, message string) {
	title = fmt.Sprintf("Arbitrage: %s", result.Card.Name)

	var b strings.Builder
	count := 0
	for i := range result.Listings {
		l := &result.Listings[i]
		if !l.IsArbitrage {
			continue
		}
		if count < 5 {
			fmt.Fprintf(&b, "%s %g at $%.2f (score %d)\n%s\n",
				l.Company, l.Grade, l.Price, l.DealScore, l.URL)
		}
		count++
	}
	if count > 5 {
		fmt.Fprintf(&b, "...and %d more", count-5)
	}

	return title, strings.TrimSpace(b.String())
}
