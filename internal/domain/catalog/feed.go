package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Feed errors
var (
	ErrFeedUnavailable     = errors.New("external catalog feed unavailable")
	ErrFeedRequestFailed   = errors.New("external catalog request failed")
	ErrFeedInvalidResponse = errors.New("external catalog returned an invalid response")
)

// FeedProduct is a product as reported by the external catalog feed.
// Feed data is read-only and never persisted.
type FeedProduct struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
	Images      []string        `json:"images"`
}

// FeedPage is one page of the external catalog listing
type FeedPage struct {
	Products []FeedProduct `json:"products"`
	Total    int64         `json:"total"`
	Skip     int           `json:"skip"`
	Limit    int           `json:"limit"`
}

// FeedAggregate is the merged result of all fetched pages. Total is the
// sum of the per-page totals, mirroring what the pages report rather
// than deduplicating.
type FeedAggregate struct {
	Products []FeedProduct `json:"products"`
	Total    int64         `json:"total"`
}

// ExternalCatalog fetches product listings from a third-party catalog API
type ExternalCatalog interface {
	// FetchPage fetches a single page of the listing
	FetchPage(ctx context.Context, skip, limit int) (*FeedPage, error)

	// FetchAll fetches the configured page set and merges the results.
	// Any page failure fails the whole aggregate.
	FetchAll(ctx context.Context) (*FeedAggregate, error)
}
