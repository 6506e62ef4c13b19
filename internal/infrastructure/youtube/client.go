// Package youtube talks to the YouTube Data API v3: listing playlists and
// their items, enriching videos with statistics and finding the latest upload.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ChannelSnapshot/internal/domain"
)

const (
	// DefaultBaseURL is the public Data API v3 endpoint.
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	defaultPageSize = 50
	maxErrorBody    = 4096
)

// Options tunes a Client. Zero values pick the defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// MaxPages caps every paginated listing; 0 leaves it unbounded.
	MaxPages int
	PageSize int
	Logger   *slog.Logger
}

// Client is a Data API client bound to a single API key.
type Client struct {
	apiKey   string
	baseURL  string
	http     *http.Client
	maxPages int
	pageSize int
	logger   *slog.Logger
}

// New builds a client; an empty key is a configuration error.
func New(apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &domain.ConfigurationError{Field: "youtube.apiKey", Reason: "a YouTube Data API v3 key is required"}
	}

	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}

	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		http:     httpClient,
		maxPages: opts.MaxPages,
		pageSize: pageSize,
		logger:   opts.Logger,
	}, nil
}

// request performs one GET against endpoint and decodes the JSON body into v.
func (c *Client) request(ctx context.Context, endpoint string, params url.Values, v any) error {
	query := make(url.Values, len(params)+1)
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("request %s: %s: %w", endpoint, urlErr.Op, urlErr.Err)
		}
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
