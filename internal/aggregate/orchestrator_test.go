package aggregate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gradehawk/gradehawk/internal/domain"
)

type stubCards struct {
	card domain.CardMetadata
	err  error
}

func (s *stubCards) FindCard(ctx context.Context, name, setName string) (domain.CardMetadata, error) {
	return s.card, s.err
}

type stubListings struct {
	listings []domain.Listing
	err      error
}

func (s *stubListings) SearchGraded(ctx context.Context, query string) ([]domain.Listing, error) {
	return s.listings, s.err
}

type stubComps struct {
	name  string
	quote domain.SourceQuote
	ok    bool
	delay time.Duration
}

func (s *stubComps) Name() string { return s.name }

func (s *stubComps) FetchComps(ctx context.Context, cardName, setName, targetGrade string) (domain.SourceQuote, bool) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return domain.SourceQuote{}, false
		}
	}
	return s.quote, s.ok
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchNotFound(t *testing.T) {
	o := NewOrchestrator(
		&stubCards{err: domain.ErrNotFound},
		&stubListings{},
		nil,
		time.Second, "PSA 10", testLogger(),
	)

	_, err := o.Search(context.Background(), "no such card")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// A query with metadata but zero listings still succeeds with an empty
// result set.
func TestSearchEmptyListings(t *testing.T) {
	o := NewOrchestrator(
		&stubCards{card: domain.CardMetadata{Name: "Charizard"}},
		&stubListings{listings: nil},
		[]CompsFetcher{&stubComps{name: "stockx", ok: false}},
		time.Second, "PSA 10", testLogger(),
	)

	res, err := o.Search(context.Background(), "charizard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalResults != 0 || len(res.Listings) != 0 {
		t.Errorf("expected empty result, got %d listings", len(res.Listings))
	}
	if len(res.MarketStats) != 0 {
		t.Errorf("expected no stats entries, got %d", len(res.MarketStats))
	}
	if q, present := res.Comparisons["stockx"]; !present || q != nil {
		t.Errorf("absent source should map to an explicit nil entry, got %v (present=%v)", q, present)
	}
}

// One failing or absent source never removes the quotes of its siblings.
func TestSearchSourceFailureIsolation(t *testing.T) {
	good := domain.SourceQuote{Source: "stockx", LowestAsk: domain.Float(100)}
	o := NewOrchestrator(
		&stubCards{card: domain.CardMetadata{Name: "Charizard"}},
		&stubListings{listings: []domain.Listing{listing(10, 50)}},
		[]CompsFetcher{
			&stubComps{name: "stockx", quote: good, ok: true},
			&stubComps{name: "pwcc", ok: false},
		},
		time.Second, "PSA 10", testLogger(),
	)

	res, err := o.Search(context.Background(), "charizard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Comparisons["stockx"] == nil {
		t.Error("healthy source lost its quote")
	}
	if res.Comparisons["pwcc"] != nil {
		t.Error("absent source should be nil")
	}
	if !res.Listings[0].IsArbitrage {
		t.Error("listing at 50 vs ask 100 should be flagged as arbitrage")
	}
}

// A source that exceeds the per-source timeout degrades to absent without
// delaying the overall search unreasonably or failing it.
func TestSearchSlowSourceTimesOut(t *testing.T) {
	o := NewOrchestrator(
		&stubCards{card: domain.CardMetadata{Name: "Charizard"}},
		&stubListings{},
		[]CompsFetcher{
			&stubComps{name: "slow", quote: domain.SourceQuote{Source: "slow"}, ok: true, delay: time.Minute},
			&stubComps{name: "fast", quote: domain.SourceQuote{Source: "fast"}, ok: true},
		},
		50*time.Millisecond, "PSA 10", testLogger(),
	)

	start := time.Now()
	res, err := o.Search(context.Background(), "charizard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("search took %v, slow source was not cut off", elapsed)
	}
	if res.Comparisons["slow"] != nil {
		t.Error("timed-out source should be absent")
	}
	if res.Comparisons["fast"] == nil {
		t.Error("fast source should have its quote")
	}
}

// A listing-search failure degrades to an empty listing set, not an error.
func TestSearchListingFailureDegrades(t *testing.T) {
	o := NewOrchestrator(
		&stubCards{card: domain.CardMetadata{Name: "Charizard"}},
		&stubListings{err: errors.New("upstream 500")},
		nil,
		time.Second, "PSA 10", testLogger(),
	)

	res, err := o.Search(context.Background(), "charizard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalResults != 0 {
		t.Errorf("expected 0 results, got %d", res.TotalResults)
	}
}
