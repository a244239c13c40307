// Package scrape contains the headless-browser adapters that pull reference
// prices for a card from marketplaces without a public API. Every adapter
// reports absence instead of an error: a source that cannot produce a quote
// for any reason simply contributes nothing to the comparison.
package scrape

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// userAgents is rotated per navigation so repeated lookups do not present a
// single browser fingerprint.
var userAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Browser owns a shared chromedp exec allocator that the marketplace
// adapters create per-lookup tab contexts from.
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
}

// NewBrowser starts a headless browser allocator. chromePath overrides
// binary discovery when non-empty. Close must be called on shutdown.
func NewBrowser(headless bool, chromePath string, logger *slog.Logger) *Browser {
	bin := chromePath
	if bin == "" {
		bin = findChromeBinary()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgents[rand.Intn(len(userAgents))]),
	)
	if bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise; failures surface through the adapters.
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Browser{
		allocCtx: silentCtx,
		cancel: func() {
			cancelSilent()
			cancel()
		},
		logger: logger.With("component", "scrape"),
	}
}

// Close tears down the browser allocator and any open tabs.
func (b *Browser) Close() {
	b.cancel()
}

// run executes tasks in a fresh tab with the given timeout.
func (b *Browser) run(ctx context.Context, timeout time.Duration, tasks ...chromedp.Action) error {
	tabCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	// Honor cancellation of the caller's context as well.
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(tabCtx, tasks...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
