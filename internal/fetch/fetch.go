// Package fetch retrieves search result pages from the classifieds
// site, reading through the local hour-bucketed cache.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gocolly/colly/v2"

	"github.com/rmcnab/motorsales/internal/cache"
	"github.com/rmcnab/motorsales/internal/logger"
)

// DefaultBaseURL is the fixed search endpoint.
const DefaultBaseURL = "https://www.autotrader.co.uk/car-search"

// Browser-identifying headers; the endpoint rejects obvious bots.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)" +
	" AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"

// Query identifies one search results page.
type Query struct {
	Make     string
	Model    string
	Postcode string
	Page     string // empty for the first, unpaginated request
}

// FetchFailureError is a non-success response from the search endpoint.
// It is fatal: the run aborts, there is no retry.
type FetchFailureError struct {
	Status int
}

func (e *FetchFailureError) Error() string {
	return fmt.Sprintf("search request failed with status %d", e.Status)
}

// Config holds fetcher configuration.
type Config struct {
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // defaults to 30s
}

// Client fetches pages through the disk cache. The run timestamp is
// captured once at construction and used for every cache key, so all
// fetches of one run land in the same hour bucket.
type Client struct {
	cache   *cache.Store
	now     time.Time
	baseURL string
	timeout time.Duration
}

// New creates a client over store using now for cache keys.
func New(store *cache.Store, now time.Time, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{cache: store, now: now, baseURL: cfg.BaseURL, timeout: cfg.Timeout}
}

// Page returns the raw markup for q, from cache when possible. Fresh
// responses are written through to the cache before returning.
func (c *Client) Page(ctx context.Context, q Query) (string, error) {
	key := cache.Key{Time: c.now, Make: q.Make, Model: q.Model, Postcode: q.Postcode, Page: q.Page}

	html, ok, err := c.cache.Get(key)
	if err != nil {
		return "", err
	}
	if ok {
		logger.Debug("cache hit",
			"make", q.Make, "model", q.Model, "page", q.Page,
			"size", humanize.Bytes(uint64(len(html))))
		return html, nil
	}

	html, err = c.get(ctx, q)
	if err != nil {
		return "", err
	}
	if err := c.cache.Put(key, html); err != nil {
		return "", err
	}

	logger.Debug("fetched page",
		"make", q.Make, "model", q.Model, "page", q.Page,
		"size", humanize.Bytes(uint64(len(html))))
	return html, nil
}

func (c *Client) get(_ context.Context, q Query) (string, error) {
	// New collector per request, same as a plain GET but with colly's
	// header and timeout plumbing. The search endpoint disallows
	// crawlers wholesale, so robots.txt is skipped like any browser
	// would.
	col := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.IgnoreRobotsTxt(),
	)
	col.SetRequestTimeout(c.timeout)

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html")
		r.Headers.Set("Accept-Language", "en-GB,en;q=0.7")
		r.Headers.Set("Cache-Control", "no-cache")
	})

	var (
		body     string
		status   int
		fetchErr error
	)

	col.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	params := url.Values{}
	params.Set("postcode", q.Postcode)
	params.Set("make", q.Make)
	params.Set("model", q.Model)
	if q.Page != "" {
		params.Set("page", q.Page)
	}

	// Visit also surfaces HTTP-level failures as its return value;
	// classify those through the recorded status first.
	err := col.Visit(c.baseURL + "?" + params.Encode())
	if fetchErr != nil || (status != 0 && (status < 200 || status >= 300)) {
		return "", &FetchFailureError{Status: status}
	}
	if err != nil {
		return "", fmt.Errorf("failed to request search page: %w", err)
	}
	return body, nil
}
