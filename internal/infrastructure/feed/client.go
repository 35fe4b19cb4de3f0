package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/clerkio/backend/internal/domain/catalog"
	"github.com/clerkio/backend/internal/infrastructure/config"
	"golang.org/x/sync/errgroup"
)

// maxFeedResponseSize limits the response body size to prevent memory exhaustion
const maxFeedResponseSize = 10 * 1024 * 1024 // 10MB max response

// Client fetches product listings from a DummyJSON-style catalog API
type Client struct {
	baseURL    string
	pageSize   int
	pages      int
	httpClient *http.Client
}

// NewClient creates a new feed client
func NewClient(cfg config.FeedConfig) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		pages:    cfg.Pages,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchPage fetches a single page of the listing
func (c *Client) FetchPage(ctx context.Context, skip, limit int) (*catalog.FeedPage, error) {
	url := fmt.Sprintf("%s/products?skip=%d&limit=%d", c.baseURL, skip, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedResponseSize))
	if err != nil {
		return nil, fmt.Errorf("feed: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", catalog.ErrFeedRequestFailed, resp.StatusCode)
	}

	var page catalog.FeedPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrFeedInvalidResponse, err)
	}

	return &page, nil
}

// FetchAll fetches the configured page set concurrently and merges the
// results. Pages are merged in skip order regardless of arrival order.
// Any page failure fails the whole aggregate.
func (c *Client) FetchAll(ctx context.Context) (*catalog.FeedAggregate, error) {
	g, ctx := errgroup.WithContext(ctx)

	// Each goroutine writes its own slot, so the merge below is in skip
	// order no matter which page arrives first.
	pages := make([]*catalog.FeedPage, c.pages)

	for i := 0; i < c.pages; i++ {
		i := i
		g.Go(func() error {
			page, err := c.FetchPage(ctx, i*c.pageSize, c.pageSize)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggregate := &catalog.FeedAggregate{}
	for _, page := range pages {
		aggregate.Products = append(aggregate.Products, page.Products...)
		aggregate.Total += page.Total
	}

	return aggregate, nil
}

// Ensure Client implements ExternalCatalog
var _ catalog.ExternalCatalog = (*Client)(nil)
