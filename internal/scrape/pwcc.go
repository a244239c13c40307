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

// PWCC exposes the most recent auction sale price for graded slabs.
type PWCC struct {
	browser *Browser
	logger  *slog.Logger
}

// NewPWCC creates a PWCC marketplace adapter.
func NewPWCC(browser *Browser, logger *slog.Logger) *PWCC {
	return &PWCC{
		browser: browser,
		logger:  logger.With("component", "scrape.pwcc"),
	}
}

// Name identifies the source in comparison output.
func (p *PWCC) Name() string { return "pwcc" }

// FetchComps searches completed PWCC auctions for the card at the target
// grade and extracts the most recent sale price.
func (p *PWCC) FetchComps(ctx context.Context, cardName, setName, targetGrade string) (domain.SourceQuote, bool) {
	query := strings.TrimSpace(fmt.Sprintf("%s %s %s", cardName, setName, targetGrade))
	searchURL := "https://www.pwccmarketplace.com/market-price-research?q=" + url.QueryEscape(query)

	type pageData struct {
		ItemURL  string `json:"itemUrl"`
		LastSale string `json:"lastSale"`
	}
	var data pageData

	err := p.browser.run(ctx, 45*time.Second,
		chromedp.Navigate(searchURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`
			(function() {
				var out = {itemUrl: '', lastSale: ''};
				var rows = document.querySelectorAll('[class*="sales-history"] tr, [data-testid="sold-item"], .auction-item--sold, table tbody tr');
				if (rows.length > 0) {
					var row = rows[0];
					var txt = row.textContent || '';
					var m = txt.match(/\$\s*[\d,]+(?:\.\d{1,2})?/);
					if (m) out.lastSale = m[0];
					var link = row.querySelector('a');
					if (link) out.itemUrl = link.href;
				}
				if (!out.itemUrl) out.itemUrl = location.href;
				return out;
			})()
		`, &data),
	)
	if err != nil {
		p.logger.Debug("search failed", "query", query, "err", err)
		return domain.SourceQuote{}, false
	}

	v, ok := parseMoney(data.LastSale)
	if !ok {
		p.logger.Debug("no completed sales", "query", query)
		return domain.SourceQuote{}, false
	}

	return domain.SourceQuote{
		Source:   p.Name(),
		LastSale: domain.Float(v),
		URL:      data.ItemURL,
	}, true
}
