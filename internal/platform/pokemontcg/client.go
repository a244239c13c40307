// Package pokemontcg is the REST client for the Pokémon TCG API, which
// provides card metadata lookup by fuzzy name match.
package pokemontcg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// Client is the REST client for the Pokémon TCG API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new card metadata client.
//
// baseURL is the API root, e.g. "https://api.pokemontcg.io/v2". apiKey is
// optional; the API serves unauthenticated requests at a lower rate limit.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FindCard looks up metadata for a card by fuzzy name match, optionally
// narrowed by set name. The first result of the API's relevance ordering is
// returned. A query that matches nothing yields domain.ErrNotFound.
func (c *Client) FindCard(ctx context.Context, name, setName string) (domain.CardMetadata, error) {
	q := fmt.Sprintf("name:%q", name)
	if setName != "" {
		q += fmt.Sprintf(" set.name:%q", setName)
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("pageSize", "1")

	path := "/cards?" + params.Encode()

	body, err := c.doGet(ctx, path)
	if err != nil {
		return domain.CardMetadata{}, fmt.Errorf("pokemontcg: find card %q: %w", name, err)
	}

	var resp cardsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.CardMetadata{}, fmt.Errorf("pokemontcg: decode cards: %w", err)
	}

	if len(resp.Data) == 0 {
		return domain.CardMetadata{}, fmt.Errorf("pokemontcg: %w: name=%s", domain.ErrNotFound, name)
	}

	return resp.Data[0].ToDomainCard(), nil
}

// GetCard returns a single card by its API ID.
func (c *Client) GetCard(ctx context.Context, id string) (domain.CardMetadata, error) {
	path := fmt.Sprintf("/cards/%s", url.PathEscape(id))

	body, err := c.doGet(ctx, path)
	if err != nil {
		return domain.CardMetadata{}, fmt.Errorf("pokemontcg: get card %s: %w", id, err)
	}

	var resp struct {
		Data APICard `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.CardMetadata{}, fmt.Errorf("pokemontcg: decode card: %w", err)
	}

	return resp.Data.ToDomainCard(), nil
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doGet sends a GET request to the card API, attaching the API key header
// when one is configured.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

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

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Error.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, apiErr.Error.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Error.Message)
	default:
		return fmt.Errorf("HTTP %d: %s", statusCode, apiErr.Error.Message)
	}
}
