// Package catalog fetches and parses book metadata pages from the public
// catalog site. It is the only component that understands the site's markup;
// everything downstream consumes model.Book records.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/pkg/logger"
	"github.com/praticodes/litloom/pkg/metrics"
)

// Client defaults. The catalog is a third party; requests are throttled and
// identified so the harvest stays polite.
const (
	defaultBaseURL   = "https://www.goodreads.com"
	defaultRPS       = 1.0
	defaultBurst     = 3
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "LitLoom/1.0"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the catalog site root used to resolve relative links.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimit sets the outbound request rate and burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithUserAgent sets the User-Agent header on outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// Source fetches one book record per catalog link.
type Source interface {
	// Fetch returns the record behind link, or ErrUnavailable with a
	// sentinel record when the page cannot be parsed.
	Fetch(ctx context.Context, link string) (model.Book, error)
}

// Client is a rate-limited catalog scraping client.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	logger    logger.Logger
}

// NewClient creates a catalog client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		logger:    logger.Get().Named("catalog"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch downloads and parses a single book page.
func (c *Client) Fetch(ctx context.Context, link string) (model.Book, error) {
	start := time.Now()
	doc, err := c.get(ctx, link)
	if err != nil {
		metrics.RecordScrapeError()
		return model.Book{Title: model.UnavailableTitle}, err
	}

	book, err := parseBook(doc)
	if err != nil {
		metrics.RecordScrapeError()
		return book, err
	}

	metrics.RecordBookScraped(float64(time.Since(start).Milliseconds()))
	c.logger.Debug(ctx, "fetched book",
		logger.String("title", book.Title),
		logger.String("author", book.Author),
	)
	return book, nil
}

// DiscoverLinks fetches a listing page and returns the distinct book-page
// links found on it, resolved against the catalog root.
func (c *Client) DiscoverLinks(ctx context.Context, listURL string) ([]string, error) {
	doc, err := c.get(ctx, listURL)
	if err != nil {
		return nil, err
	}
	return bookLinks(doc, c.baseURL), nil
}

// get performs a throttled GET and parses the response body as HTML.
func (c *Client) get(ctx context.Context, link string) (*html.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	target, err := c.resolve(link)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parsing
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUnavailable
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// resolve turns a possibly relative catalog link into an absolute URL.
func (c *Client) resolve(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", link, err)
	}
	if u.IsAbs() {
		return link, nil
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return base.ResolveReference(u).String(), nil
}
