// Package ebay is the REST client for the eBay Browse API, which supplies
// live graded-card listings for the aggregator.
package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gradehawk/gradehawk/internal/domain"
	"github.com/gradehawk/gradehawk/internal/grade"
)

// Client is the REST client for the eBay Browse API.
type Client struct {
	baseURL     string
	oauthToken  string
	marketplace string
	pageSize    int
	httpClient  *http.Client
}

// NewClient creates a new Browse API client.
//
// baseURL is the API root, e.g. "https://api.ebay.com/buy/browse/v1".
// oauthToken is an application OAuth token for the buy.browse scope.
func NewClient(baseURL, oauthToken, marketplace string, pageSize int, timeout time.Duration) *Client {
	if marketplace == "" {
		marketplace = "EBAY_US"
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		oauthToken:  oauthToken,
		marketplace: marketplace,
		pageSize:    pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// gradedSuffix steers the single price-sorted result page toward graded
// items. Without it a plain card-name query fills the page with cheap raw
// cards that grade extraction then drops.
const gradedSuffix = " graded pokemon card"

// SearchGraded searches fixed-price listings for the query and returns only
// those whose titles carry a parsable grading signal. The query is augmented
// with grading-context keywords before sending. Results keep the API's
// ascending price order. Listings with an unparsable price or no grade are
// dropped silently; they cannot participate in grade-grouped comparison.
func (c *Client) SearchGraded(ctx context.Context, query string) ([]domain.Listing, error) {
	params := url.Values{}
	params.Set("q", buildQuery(query))
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("sort", "price")
	params.Set("filter", "buyingOptions:{FIXED_PRICE},conditionIds:{1000}")

	path := "/item_summary/search?" + params.Encode()

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("ebay: search %q: %w", query, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ebay: decode search results: %w", err)
	}

	listings := make([]domain.Listing, 0, len(resp.ItemSummaries))
	for i := range resp.ItemSummaries {
		if l, ok := toListing(&resp.ItemSummaries[i]); ok {
			listings = append(listings, l)
		}
	}

	return listings, nil
}

// buildQuery appends the grading-context keywords to the user's query.
func buildQuery(query string) string {
	return strings.TrimSpace(query) + gradedSuffix
}

// toListing converts an API item summary into a domain listing. ok is false
// when the item lacks a parsable price or grading signal.
func toListing(item *APIItemSummary) (domain.Listing, bool) {
	price, err := strconv.ParseFloat(item.Price.Value, 64)
	if err != nil || price <= 0 {
		return domain.Listing{}, false
	}

	company, g, ok := grade.Parse(item.Title)
	if !ok {
		return domain.Listing{}, false
	}

	currency := item.Price.Currency
	if currency == "" {
		currency = "USD"
	}

	return domain.Listing{
		Title:     item.Title,
		Price:     price,
		Currency:  currency,
		Company:   company,
		Grade:     g,
		URL:       item.ItemWebURL,
		ImageURL:  item.Image.ImageURL,
		Condition: item.Condition,
		Location:  item.ItemLocation.Country,
		Source:    "ebay",
		DealScore: domain.DefaultDealScore,
	}, true
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doGet sends an authenticated GET request to the Browse API.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.oauthToken)
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplace)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkStatus maps non-2xx HTTP status codes to appropriate errors.
func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiErr apiErrorResponse
	_ = json.Unmarshal(body, &apiErr)
	msg := ""
	if len(apiErr.Errors) > 0 {
		msg = apiErr.Errors[0].Message
	}

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, msg)
	default:
		return fmt.Errorf("HTTP %d: %s", statusCode, msg)
	}
}
