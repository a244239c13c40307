// Package aggregate turns one search query into a single annotated market
// view by fanning out to every configured price source and running the
// stats, scoring, and ranking pipeline over whatever came back.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// CardFinder resolves a free-text query to canonical card metadata.
type CardFinder interface {
	FindCard(ctx context.Context, name, setName string) (domain.CardMetadata, error)
}

// ListingSearcher returns live graded listings for a query.
type ListingSearcher interface {
	SearchGraded(ctx context.Context, query string) ([]domain.Listing, error)
}

// CompsFetcher is a reference-price source. A fetch that cannot produce a
// quote reports absence, never an error.
type CompsFetcher interface {
	Name() string
	FetchComps(ctx context.Context, cardName, setName, targetGrade string) (domain.SourceQuote, bool)
}

// Orchestrator coordinates the per-query fan-out and the pure pipeline that
// follows it. It holds no per-query state; every Search call owns all of its
// intermediate values.
type Orchestrator struct {
	cards         CardFinder
	listings      ListingSearcher
	comps         []CompsFetcher
	sourceTimeout time.Duration
	targetGrade   string
	logger        *slog.Logger
}

// NewOrchestrator builds an orchestrator over the given sources.
// sourceTimeout bounds each reference-price fetch; targetGrade steers
// grade-specific sources, e.g. "PSA 10".
func NewOrchestrator(cards CardFinder, listings ListingSearcher, comps []CompsFetcher, sourceTimeout time.Duration, targetGrade string, logger *slog.Logger) *Orchestrator {
	if sourceTimeout <= 0 {
		sourceTimeout = 30 * time.Second
	}
	return &Orchestrator{
		cards:         cards,
		listings:      listings,
		comps:         comps,
		sourceTimeout: sourceTimeout,
		targetGrade:   targetGrade,
		logger:        logger.With("component", "aggregate"),
	}
}

// Search resolves the query against every source and returns the annotated
// result. An unresolvable card yields domain.ErrNotFound; any other source
// failure only thins out the result.
func (o *Orchestrator) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	start := time.Now()

	// Group 1: card metadata and live listings. Both must settle before the
	// reference fetches because those are targeted by canonical name/set.
	var (
		card     domain.CardMetadata
		listings []domain.Listing
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := o.cards.FindCard(gctx, query, "")
		if err != nil {
			return fmt.Errorf("aggregate: resolve card: %w", err)
		}
		card = c
		return nil
	})
	g.Go(func() error {
		ls, err := o.listings.SearchGraded(gctx, query)
		if err != nil {
			// Listings are richness, not availability.
			o.logger.Warn("listing search failed", "query", query, "err", err)
			return nil
		}
		listings = ls
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Group 2: all reference-price sources concurrently, each under its own
	// timeout. Absence is the only failure mode; the group always joins.
	comparisons := o.fetchComparisons(ctx, card)

	// Pure pipeline over request-scoped values.
	stats := ComputeStats(listings)
	Score(listings, stats, comparisons)
	Rank(listings)

	o.logger.Info("search complete",
		"query", query,
		"card", card.Name,
		"listings", len(listings),
		"sources", len(comparisons),
		"elapsed", time.Since(start))

	return &domain.SearchResult{
		Query:        query,
		Card:         card,
		Listings:     listings,
		MarketStats:  stats,
		Comparisons:  comparisons,
		TotalResults: len(listings),
	}, nil
}

// fetchComparisons runs every reference source concurrently and returns a
// map with one entry per source; absent quotes map to nil so callers can
// tell "asked and got nothing" from "never asked".
func (o *Orchestrator) fetchComparisons(ctx context.Context, card domain.CardMetadata) map[string]*domain.SourceQuote {
	results := make([]*domain.SourceQuote, len(o.comps))

	var wg errgroup.Group
	for i, fetcher := range o.comps {
		wg.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, o.sourceTimeout)
			defer cancel()

			quote, ok := fetcher.FetchComps(fctx, card.Name, card.SetName, o.targetGrade)
			if !ok {
				o.logger.Debug("source returned no quote", "source", fetcher.Name())
				return nil
			}
			results[i] = &quote
			return nil
		})
	}
	_ = wg.Wait() // fetchers never return errors

	comparisons := make(map[string]*domain.SourceQuote, len(o.comps))
	for i, fetcher := range o.comps {
		comparisons[fetcher.Name()] = results[i]
	}
	return comparisons
}
