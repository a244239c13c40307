package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// TCGplayer exposes the raw-card market price and listed median, which serve
// as the ungraded baseline in comparison output.
type TCGplayer struct {
	browser *Browser
	logger  *slog.Logger
}

// NewTCGplayer creates a TCGplayer adapter.
func NewTCGplayer(browser *Browser, logger *slog.Logger) *TCGplayer {
	return &TCGplayer{
		browser: browser,
		logger:  logger.With("component", "scrape.tcgplayer"),
	}
}

// Name identifies the source in comparison output.
func (t *TCGplayer) Name() string { return "tcgplayer" }

// FetchComps searches TCGplayer for the card and extracts the market price
// and listed median from the first matching product. The target grade is
// ignored; TCGplayer quotes ungraded singles.
func (t *TCGplayer) FetchComps(ctx context.Context, cardName, setName, targetGrade string) (domain.SourceQuote, bool) {
	query := strings.TrimSpace(fmt.Sprintf("%s %s", cardName, setName))
	searchURL := "https://www.tcgplayer.com/search/pokemon/product?q=" + url.QueryEscape(query)

	type pageData struct {
		ProductURL   string `json:"productUrl"`
		MarketPrice  string `json:"marketPrice"`
		ListedMedian string `json:"listedMedian"`
	}
	var data pageData

	err := t.browser.run(ctx, 45*time.Second,
		chromedp.Navigate(searchURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`
			(function() {
				var out = {productUrl: '', marketPrice: '', listedMedian: ''};
				var card = document.querySelector('.search-result a') ||
				           document.querySelector('a[data-testid^="product-card"]') ||
				           document.querySelector('a[href*="/product/"]');
				if (card) out.productUrl = card.href;

				// The search tile already carries a market price row.
				var tile = card ? card.closest('.search-result') || card : null;
				if (tile) {
					var spans = tile.querySelectorAll('span, div');
					for (var i = 0; i < spans.length; i++) {
						var txt = (spans[i].textContent || '');
						var lower = txt.toLowerCase();
						if (lower.indexOf('market price') >= 0 && !out.marketPrice) out.marketPrice = txt;
					}
				}
				return out;
			})()
		`, &data),
	)
	if err != nil || data.ProductURL == "" {
		t.logger.Debug("no product match", "query", query, "err", err)
		return domain.SourceQuote{}, false
	}

	// Visit the product page for the price-points table when the tile did
	// not already expose a market price, and for the listed median.
	detail := pageData{}
	err = t.browser.run(ctx, 45*time.Second,
		chromedp.Navigate(data.ProductURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`
			(function() {
				var out = {productUrl: location.href, marketPrice: '', listedMedian: ''};
				var rows = document.querySelectorAll('tr, li, .price-points__row, [class*="price-point"]');
				for (var i = 0; i < rows.length; i++) {
					var txt = rows[i].textContent || '';
					var lower = txt.toLowerCase();
					if (lower.indexOf('market price') >= 0 && !out.marketPrice) out.marketPrice = txt;
					if (lower.indexOf('listed median') >= 0 && !out.listedMedian) out.listedMedian = txt;
				}
				return out;
			})()
		`, &detail),
	)
	if err != nil {
		t.logger.Debug("product page failed", "url", data.ProductURL, "err", err)
		return domain.SourceQuote{}, false
	}

	quote := domain.SourceQuote{Source: t.Name(), URL: detail.ProductURL}
	found := false
	if v, ok := parseMoney(detail.MarketPrice); ok {
		quote.MarketPrice = domain.Float(v)
		found = true
	} else if v, ok := parseMoney(data.MarketPrice); ok {
		quote.MarketPrice = domain.Float(v)
		found = true
	}
	if v, ok := parseMoney(detail.ListedMedian); ok {
		quote.ListedMedian = domain.Float(v)
		found = true
	}
	if !found {
		t.logger.Debug("no prices on product page", "url", detail.ProductURL)
		return domain.SourceQuote{}, false
	}

	return quote, true
}
