package notify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gradehawk/gradehawk/internal/domain"
)

func dealResult(flagged ...int) *domain.SearchResult {
	r := &domain.SearchResult{
		Card: domain.CardMetadata{Name: "Charizard", SetName: "Base Set"},
	}
	for i, score := range flagged {
		r.Listings = append(r.Listings, domain.Listing{
			Company:     "PSA",
			Grade:       10,
			Price:       100 + float64(i),
			DealScore:   score,
			IsArbitrage: score >= 90,
			URL:         fmt.Sprintf("https://example.com/%d", i),
		})
	}
	return r
}

func TestFormatDealAlertTitle(t *testing.T) {
	title, _ := FormatDealAlert(dealResult(90))
	if title != "Arbitrage: Charizard" {
		t.Fatalf("title = %q", title)
	}
}

func TestFormatDealAlertSkipsUnflagged(t *testing.T) {
	_, msg := FormatDealAlert(dealResult(90, 50, 110))
	if strings.Contains(msg, "$101.00") {
		t.Fatalf("unflagged listing leaked into message: %q", msg)
	}
	if !strings.Contains(msg, "$100.00") || !strings.Contains(msg, "$102.00") {
		t.Fatalf("flagged listings missing from message: %q", msg)
	}
}

func TestFormatDealAlertCapsAtFive(t *testing.T) {
	_, msg := FormatDealAlert(dealResult(90, 90, 90, 90, 90, 90, 90))
	if !strings.Contains(msg, "...and 2 more") {
		t.Fatalf("expected overflow line, got %q", msg)
	}
	if got := strings.Count(msg, "https://example.com/"); got != 5 {
		t.Fatalf("expected 5 listing lines, got %d", got)
	}
}
