package app

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gradehawk/gradehawk/internal/aggregate"
	"github.com/gradehawk/gradehawk/internal/pipeline"
	"github.com/gradehawk/gradehawk/internal/platform/ebay"
	"github.com/gradehawk/gradehawk/internal/platform/pokemontcg"
	"github.com/gradehawk/gradehawk/internal/scrape"
	"github.com/gradehawk/gradehawk/internal/server"
	"github.com/gradehawk/gradehawk/internal/server/handler"
	"github.com/gradehawk/gradehawk/internal/server/ws"
	"github.com/gradehawk/gradehawk/internal/service"
)

// ServerMode starts the HTTP API, the WebSocket hub, and the search stack
// behind them. Snapshot cleanup does not run in this mode.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting server mode")

	g, ctx := errgroup.WithContext(ctx)

	svc := a.buildSearchService(deps)
	a.startHTTPServer(ctx, g, deps, svc)

	return g.Wait()
}

// PipelineMode runs only the snapshot retention loop: expired search
// snapshots are archived to blob storage and deleted. No HTTP server and no
// browser are started.
func (a *App) PipelineMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting pipeline mode")

	if !a.cfg.Pipeline.Enabled {
		a.logger.WarnContext(ctx, "pipeline.enabled is false, but pipeline mode always runs the cleanup loop")
	}

	g, ctx := errgroup.WithContext(ctx)
	a.startCleanup(ctx, g, deps)

	return g.Wait()
}

// FullMode starts all subsystems: the HTTP API, the WebSocket hub, and the
// snapshot retention loop.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	g, ctx := errgroup.WithContext(ctx)

	svc := a.buildSearchService(deps)
	a.startHTTPServer(ctx, g, deps, svc)

	if a.cfg.Pipeline.Enabled {
		a.startCleanup(ctx, g, deps)
	}

	return g.Wait()
}

// buildSearchService assembles the platform clients, the browser-backed
// reference-price scrapers, and the aggregation orchestrator, then wraps them
// in a SearchService. The browser is registered for shutdown with the app.
func (a *App) buildSearchService(deps *Dependencies) *service.SearchService {
	cardClient := pokemontcg.NewClient(
		a.cfg.Cards.BaseURL,
		a.cfg.Cards.APIKey,
		a.cfg.Cards.Timeout.Duration,
	)
	ebayClient := ebay.NewClient(
		a.cfg.Ebay.BaseURL,
		a.cfg.Ebay.OAuthToken,
		a.cfg.Ebay.Marketplace,
		a.cfg.Ebay.PageSize,
		a.cfg.Ebay.Timeout.Duration,
	)

	browser := scrape.NewBrowser(a.cfg.Scrape.Headless, a.cfg.Scrape.ChromePath, a.logger)
	a.closers = append(a.closers, browser.Close)

	fetchers := a.buildFetchers(browser)

	orch := aggregate.NewOrchestrator(
		cardClient,
		ebayClient,
		fetchers,
		a.cfg.Scrape.SourceTimeout.Duration,
		a.cfg.Scrape.TargetGrade,
		a.logger,
	)

	return service.NewSearchService(
		orch,
		deps.SearchStore,
		deps.SignalBus,
		deps.Notifier,
		a.cfg.Pipeline.SnapshotTTL.Duration,
		a.logger,
	)
}

// buildFetchers returns the reference-price scrapers selected by
// scrape.sources. An empty list enables all of them.
func (a *App) buildFetchers(browser *scrape.Browser) []aggregate.CompsFetcher {
	enabled := func(name string) bool {
		if len(a.cfg.Scrape.Sources) == 0 {
			return true
		}
		for _, s := range a.cfg.Scrape.Sources {
			if strings.EqualFold(strings.TrimSpace(s), name) {
				return true
			}
		}
		return false
	}

	var fetchers []aggregate.CompsFetcher
	if enabled("stockx") {
		fetchers = append(fetchers, scrape.NewStockX(browser, a.cfg.Scrape.TargetGrade, a.logger))
	}
	if enabled("tcgplayer") {
		fetchers = append(fetchers, scrape.NewTCGplayer(browser, a.logger))
	}
	if enabled("pwcc") {
		fetchers = append(fetchers, scrape.NewPWCC(browser, a.logger))
	}
	return fetchers
}

// startHTTPServer adds the HTTP server and WebSocket hub goroutines to the
// given errgroup. The server is shut down gracefully when the context is
// cancelled.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies, svc *service.SearchService) {
	hub := ws.NewHub(deps.SignalBus, service.DealAlertChannel, a.logger)
	g.Go(func() error {
		return hub.Run(ctx)
	})

	sources := a.cfg.Scrape.Sources
	if len(sources) == 0 {
		sources = []string{"stockx", "tcgplayer", "pwcc"}
	}

	handlers := server.Handlers{
		Health:   handler.NewHealthHandler(a.logger),
		Status:   handler.NewStatusHandler(a.cfg.Mode, sources, svc, time.Now().UTC()),
		Search:   handler.NewSearchHandler(svc, a.logger),
		Featured: handler.NewFeaturedHandler(service.FeaturedCards),
		History:  handler.NewHistoryHandler(svc, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:            a.cfg.Server.Port,
		CORSOrigins:     a.cfg.Server.CORSOrigins,
		APIKey:          a.cfg.Server.APIKey,
		RateLimit:       a.cfg.Server.RateLimit,
		RateLimitWindow: a.cfg.Server.RateLimitWindow.Duration,
	}, handlers, hub, deps.RateLimiter, a.logger)

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
}

// startCleanup adds the snapshot retention loop to the given errgroup.
func (a *App) startCleanup(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	cleanup := pipeline.NewCleanup(
		deps.SearchStore,
		deps.Archiver,
		a.cfg.Pipeline.CleanupInterval.Duration,
		a.logger,
	)
	g.Go(func() error {
		return cleanup.RunLoop(ctx)
	})
}
