package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

var (
	// ErrEmptyQuery is returned before any upstream call is made.
	ErrEmptyQuery = errors.New("search query is required")
	// ErrUpstream covers transport failures and non-200 upstream responses.
	ErrUpstream = errors.New("book catalog unavailable")
)

// Client searches the Google Books volumes API. It does not retry, cache or
// rate-limit; each Search is a single upstream request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	logger     *slog.Logger
}

// NewClient creates a catalog client. apiKey may be empty; the volumes
// endpoint accepts unauthenticated queries at a lower quota.
func NewClient(baseURL, apiKey string, maxResults int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if maxResults <= 0 {
		maxResults = 20
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Search runs a free-text query against the volumes endpoint.
func (c *Client) Search(ctx context.Context, query string) (*VolumeList, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	searchURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("searching book catalog", "query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var volumes VolumeList
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}

	c.logger.Debug("catalog search results", "query", query, "total", volumes.TotalItems)

	return &volumes, nil
}
