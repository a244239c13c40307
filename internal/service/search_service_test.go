package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gradehawk/gradehawk/internal/domain"
)

type stubSearcher struct {
	result *domain.SearchResult
	err    error
}

func (s *stubSearcher) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	return s.result, s.err
}

type recordingStore struct {
	domain.SearchStore
	inserted []domain.SearchSnapshot
}

func (r *recordingStore) Insert(ctx context.Context, snap domain.SearchSnapshot) error {
	r.inserted = append(r.inserted, snap)
	return nil
}

type recordingBus struct {
	published [][]byte
}

func (r *recordingBus) Publish(ctx context.Context, channel string, payload []byte) error {
	r.published = append(r.published, payload)
	return nil
}

func (r *recordingBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func arbitrageResult() *domain.SearchResult {
	return &domain.SearchResult{
		Query: "charizard",
		Card:  domain.CardMetadata{Name: "Charizard", SetName: "Base Set"},
		Listings: []domain.Listing{
			{Title: "Charizard PSA 10", Price: 100, Company: domain.GradingPSA, Grade: 10, DealScore: 90, IsArbitrage: true},
		},
		TotalResults: 1,
	}
}

func TestSearchPersistsSnapshot(t *testing.T) {
	store := &recordingStore{}
	svc := NewSearchService(&stubSearcher{result: arbitrageResult()}, store, nil, nil, time.Hour, testLogger())

	if _, err := svc.Search(context.Background(), "charizard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(store.inserted))
	}
	snap := store.inserted[0]
	if snap.ID == "" {
		t.Error("snapshot ID should be set")
	}
	if !snap.Arbitrage {
		t.Error("snapshot should be flagged as arbitrage")
	}
	if got := snap.ExpiresAt.Sub(snap.CreatedAt); got != time.Hour {
		t.Errorf("TTL = %v, want 1h", got)
	}
}

func TestSearchBroadcastsDealsOnlyOnArbitrage(t *testing.T) {
	bus := &recordingBus{}
	svc := NewSearchService(&stubSearcher{result: arbitrageResult()}, nil, bus, nil, time.Hour, testLogger())

	if _, err := svc.Search(context.Background(), "charizard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(bus.published))
	}

	// A result with nothing flagged stays off the bus.
	quiet := arbitrageResult()
	quiet.Listings[0].IsArbitrage = false
	svc = NewSearchService(&stubSearcher{result: quiet}, nil, bus, nil, time.Hour, testLogger())
	if _, err := svc.Search(context.Background(), "charizard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bus.published) != 1 {
		t.Errorf("quiet result should not broadcast, got %d total", len(bus.published))
	}
}

func TestSearchPropagatesNotFound(t *testing.T) {
	store := &recordingStore{}
	svc := NewSearchService(&stubSearcher{err: domain.ErrNotFound}, store, nil, nil, time.Hour, testLogger())

	if _, err := svc.Search(context.Background(), "nope"); err == nil {
		t.Fatal("expected error")
	}
	if len(store.inserted) != 0 {
		t.Error("failed search must not persist a snapshot")
	}
}

func TestFeaturedCardsCopy(t *testing.T) {
	a := FeaturedCards()
	if len(a) == 0 {
		t.Fatal("expected curated cards")
	}
	a[0].Name = "mutated"
	if b := FeaturedCards(); b[0].Name == "mutated" {
		t.Error("callers must not be able to mutate the curated set")
	}
}
