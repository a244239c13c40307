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

// StockX exposes lowest ask, last sale, and highest bid for graded slabs.
type StockX struct {
	browser     *Browser
	targetGrade string
	logger      *slog.Logger
}

// NewStockX creates a StockX adapter. targetGrade names the slab variant the
// search is steered toward, e.g. "PSA 10".
func NewStockX(browser *Browser, targetGrade string, logger *slog.Logger) *StockX {
	if targetGrade == "" {
		targetGrade = "PSA 10"
	}
	return &StockX{
		browser:     browser,
		targetGrade: targetGrade,
		logger:      logger.With("component", "scrape.stockx"),
	}
}

// Name identifies the source in comparison output.
func (s *StockX) Name() string { return "stockx" }

// FetchComps looks up the card's StockX product page and extracts its price
// summary. ok is false whenever the page cannot be reached, no product
// matches, or no usable number is present.
func (s *StockX) FetchComps(ctx context.Context, cardName, setName, targetGrade string) (domain.SourceQuote, bool) {
	grade := targetGrade
	if grade == "" {
		grade = s.targetGrade
	}
	query := strings.TrimSpace(fmt.Sprintf("%s %s %s", cardName, setName, grade))
	searchURL := "https://stockx.com/search?s=" + url.QueryEscape(query)

	type pageData struct {
		ProductURL string `json:"productUrl"`
		LowestAsk  string `json:"lowestAsk"`
		LastSale   string `json:"lastSale"`
		HighestBid string `json:"highestBid"`
	}
	var data pageData

	err := s.browser.run(ctx, 45*time.Second,
		chromedp.Navigate(searchURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`
			(function() {
				var link = document.querySelector('a[data-testid="productTile-ProductSwitcherLink"]') ||
				           document.querySelector('a[href^="/"] div[data-testid="product-tile"]')?.closest('a') ||
				           document.querySelector('a[data-testid="RouterSwitcherLink"]');
				return link ? link.href : '';
			})()
		`, &data.ProductURL),
	)
	if err != nil || data.ProductURL == "" {
		s.logger.Debug("no product match", "query", query, "err", err)
		return domain.SourceQuote{}, false
	}

	err = s.browser.run(ctx, 45*time.Second,
		chromedp.Navigate(data.ProductURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`
			(function() {
				var out = {productUrl: location.href, lowestAsk: '', lastSale: '', highestBid: ''};
				var labels = document.querySelectorAll('p, span, dt, button');
				for (var i = 0; i < labels.length; i++) {
					var t = (labels[i].textContent || '').toLowerCase();
					var next = labels[i].nextElementSibling;
					var scope = next ? next.textContent : labels[i].parentElement.textContent;
					if (t.indexOf('lowest ask') >= 0 && !out.lowestAsk) out.lowestAsk = scope;
					if (t.indexOf('last sale') >= 0 && !out.lastSale) out.lastSale = scope;
					if (t.indexOf('highest bid') >= 0 && !out.highestBid) out.highestBid = scope;
				}
				return out;
			})()
		`, &data),
	)
	if err != nil {
		s.logger.Debug("product page failed", "url", data.ProductURL, "err", err)
		return domain.SourceQuote{}, false
	}

	quote := domain.SourceQuote{Source: s.Name(), URL: data.ProductURL}
	found := false
	if v, ok := parseMoney(data.LowestAsk); ok {
		quote.LowestAsk = domain.Float(v)
		found = true
	}
	if v, ok := parseMoney(data.LastSale); ok {
		quote.LastSale = domain.Float(v)
		found = true
	}
	if v, ok := parseMoney(data.HighestBid); ok {
		quote.HighestBid = domain.Float(v)
		found = true
	}
	if !found {
		s.logger.Debug("no prices on product page", "url", data.ProductURL)
		return domain.SourceQuote{}, false
	}

	return quote, true
}
