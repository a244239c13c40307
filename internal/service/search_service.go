// Package service contains the application services that sit between the
// HTTP layer and the aggregation, storage, and messaging infrastructure.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gradehawk/gradehawk/internal/domain"
	"github.com/gradehawk/gradehawk/internal/notify"
)

// DealAlertChannel is the signal bus channel deal alerts are published on.
const DealAlertChannel = "deals.arbitrage"

// Searcher runs one aggregation cycle for a query.
type Searcher interface {
	Search(ctx context.Context, query string) (*domain.SearchResult, error)
}

// AlertNotifier delivers filtered operator notifications.
type AlertNotifier interface {
	Notify(ctx context.Context, event, title, message string) error
}

// SearchService runs searches and handles their side effects: persisting a
// snapshot, broadcasting deal alerts on the signal bus, and notifying
// operators when arbitrage shows up. The aggregation result itself is never
// cached; every call hits the sources fresh.
type SearchService struct {
	searcher Searcher
	store    domain.SearchStore // nil disables persistence
	bus      domain.SignalBus   // nil disables broadcasts
	notifier AlertNotifier      // nil disables operator alerts
	ttl      time.Duration
	logger   *slog.Logger
}

// NewSearchService creates a SearchService. store, bus, and notifier are
// each optional; a nil value simply disables that side effect. ttl bounds
// how long persisted snapshots are retained.
func NewSearchService(searcher Searcher, store domain.SearchStore, bus domain.SignalBus, notifier AlertNotifier, ttl time.Duration, logger *slog.Logger) *SearchService {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &SearchService{
		searcher: searcher,
		store:    store,
		bus:      bus,
		notifier: notifier,
		ttl:      ttl,
		logger:   logger.With(slog.String("component", "search_service")),
	}
}

// Search runs one aggregation cycle and fires the side effects. Side-effect
// failures are logged and never fail the search; the caller always gets the
// full result when aggregation itself succeeded.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	result, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	hasArbitrage := false
	for i := range result.Listings {
		if result.Listings[i].IsArbitrage {
			hasArbitrage = true
			break
		}
	}

	s.persistSnapshot(ctx, result, hasArbitrage)

	if hasArbitrage {
		s.broadcastDeal(ctx, result)
		s.alertOperators(ctx, result)
	}

	return result, nil
}

// RecentSearches returns persisted snapshots newest first.
func (s *SearchService) RecentSearches(ctx context.Context, limit, offset int) ([]domain.SearchSnapshot, error) {
	if s.store == nil {
		return nil, nil
	}
	snaps, err := s.store.ListRecent(ctx, domain.ListOpts{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("search_service: list recent: %w", err)
	}
	return snaps, nil
}

// SnapshotCount reports how many snapshots are currently retained.
func (s *SearchService) SnapshotCount(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	return s.store.Count(ctx)
}

// persistSnapshot stores the completed result with a fresh ID and the
// configured TTL.
func (s *SearchService) persistSnapshot(ctx context.Context, result *domain.SearchResult, hasArbitrage bool) {
	if s.store == nil {
		return
	}

	now := time.Now().UTC()
	snap := domain.SearchSnapshot{
		ID:        uuid.New().String(),
		Query:     result.Query,
		CardName:  result.Card.Name,
		SetName:   result.Card.SetName,
		Result:    *result,
		Arbitrage: hasArbitrage,
		TotalHits: result.TotalResults,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Insert(ctx, snap); err != nil {
		s.logger.WarnContext(ctx, "snapshot insert failed",
			slog.String("query", result.Query),
			slog.String("error", err.Error()),
		)
	}
}

// broadcastDeal publishes the flagged result on the signal bus so the
// WebSocket hub can fan it out to connected clients.
func (s *SearchService) broadcastDeal(ctx context.Context, result *domain.SearchResult) {
	if s.bus == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.WarnContext(ctx, "deal alert marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := s.bus.Publish(ctx, DealAlertChannel, payload); err != nil {
		s.logger.WarnContext(ctx, "deal alert publish failed",
			slog.String("query", result.Query),
			slog.String("error", err.Error()),
		)
	}
}

// alertOperators sends the arbitrage notification through the configured
// channels.
func (s *SearchService) alertOperators(ctx context.Context, result *domain.SearchResult) {
	if s.notifier == nil {
		return
	}

	title, message := notify.FormatDealAlert(result)
	if err := s.notifier.Notify(ctx, notify.EventArbitrageFound, title, message); err != nil {
		s.logger.WarnContext(ctx, "operator alert failed",
			slog.String("query", result.Query),
			slog.String("error", err.Error()),
		)
	}
}
