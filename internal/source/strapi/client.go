package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Endpoint is one collection endpoint: its path under the CMS base URL and
// the nested-resource expansion query sent with every request.
type Endpoint struct {
	Path     string
	Populate string
}

// Config holds Strapi client configuration.
type Config struct {
	BaseURL  string
	Token    string
	PageSize int
	Timeout  time.Duration
}

// Client reads collections from a Strapi CMS with bearer-token auth.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	pageSize   int
	logger     *slog.Logger
}

// NewClient creates a new Strapi client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		logger:   logger.With("component", "strapi"),
	}
}

// FetchCollection retrieves every page of a collection, starting at page 1.
// It continues while the pagination metadata reports more pages, or, when no
// metadata is present, while the last page was non-empty. A failed page
// aborts pagination for the collection: the entries accumulated so far are
// returned together with the error so the caller can continue with the
// partial set.
func (c *Client) FetchCollection(ctx context.Context, endpoint Endpoint) ([]Entry, error) {
	var all []Entry

	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, endpoint, page)
		if err != nil {
			return all, fmt.Errorf("fetch page %d of %s: %w", page, endpoint.Path, err)
		}

		all = append(all, resp.Data...)

		c.logger.Debug("fetched page",
			"path", endpoint.Path,
			"page", page,
			"entries", len(resp.Data),
			"total", len(all),
		)

		if resp.Meta != nil && resp.Meta.Pagination != nil {
			if page >= resp.Meta.Pagination.PageCount {
				break
			}
		} else if len(resp.Data) == 0 {
			break
		}
	}

	return all, nil
}

// FetchHomeBanners reads the banner list nested in the singleton home
// resource. The home endpoint is not paginated.
func (c *Client) FetchHomeBanners(ctx context.Context, endpoint Endpoint) ([]BannerComponent, error) {
	url := c.baseURL + endpoint.Path
	if endpoint.Populate != "" {
		url += "?" + endpoint.Populate
	}

	var resp homeResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint.Path, err)
	}

	if resp.Data == nil {
		return nil, nil
	}

	return resp.Data.Attributes.Banner, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint Endpoint, page int) (*collectionResponse, error) {
	query := fmt.Sprintf("pagination[page]=%d&pagination[pageSize]=%d", page, c.pageSize)
	if endpoint.Populate != "" {
		query = endpoint.Populate + "&" + query
	}
	url := c.baseURL + endpoint.Path + "?" + query

	var resp collectionResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
