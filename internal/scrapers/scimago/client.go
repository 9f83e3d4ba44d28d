package scimago

import (
	"fmt"
	"net/url"
	"time"

	"journalrank/internal/components/assert"
	"journalrank/internal/components/telemetry"
)

const (
	DefaultBaseUrl   = "https://www.scimagojr.com/"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	searchPath  = "journalsearch.php"
	listingPath = "journalrank.php"
)

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	// Timeout bounds every single request.
	Timeout time.Duration
	// PageDelay is the minimum time between two successive listing page fetches.
	PageDelay time.Duration
	// MaxPages is the last listing page that will be fetched before giving up.
	MaxPages int
	// PageSize is the number of rows per listing page, used to estimate category totals.
	PageSize int
	Match    MatchStrategy
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseUrl:   DefaultBaseUrl,
		UserAgent: DefaultUserAgent,
		Timeout:   30 * time.Second,
		PageDelay: time.Second,
		MaxPages:  100,
		PageSize:  50,
		Match:     MatchSubstring,
	}
}

type Client struct {
	baseUrl *url.URL
	fetcher Fetcher
	opts    ClientOptions
	tel     telemetry.API
}

// NewClient creates a client that fetches pages over http.
func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("scimago", tel)
	baseUrl, err := parseBaseUrl(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}
	return newClient(baseUrl, newHttpFetcher(baseUrl, opts, tel), opts, tel)
}

// NewClientWithFetcher creates a client that reads pages from the given fetcher.
func NewClientWithFetcher(opts ClientOptions, fetcher Fetcher, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	assert.NotNil(fetcher)

	tel = telemetry.NewScopedAPI("scimago", tel)
	baseUrl, err := parseBaseUrl(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}
	return newClient(baseUrl, fetcher, opts, tel)
}

func parseBaseUrl(raw string) (*url.URL, error) {
	baseUrl, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", raw)
	}
	return baseUrl, nil
}

func newClient(baseUrl *url.URL, fetcher Fetcher, opts ClientOptions, tel telemetry.API) (Client, error) {
	if opts.MaxPages <= 0 {
		return Client{}, fmt.Errorf("max pages must be positive, got %d", opts.MaxPages)
	}
	if opts.PageSize <= 0 {
		return Client{}, fmt.Errorf("page size must be positive, got %d", opts.PageSize)
	}
	if opts.PageDelay < 0 {
		return Client{}, fmt.Errorf("page delay must not be negative, got %s", opts.PageDelay)
	}
	if opts.Match == "" {
		opts.Match = MatchSubstring
	}
	match, err := ParseMatchStrategy(string(opts.Match))
	if err != nil {
		return Client{}, err
	}
	opts.Match = match

	return Client{
		baseUrl: baseUrl,
		fetcher: fetcher,
		opts:    opts,
		tel:     tel,
	}, nil
}

func (c Client) resolve(path string) *url.URL {
	return c.baseUrl.ResolveReference(&url.URL{Path: path})
}

// listingUrl builds the ranking listing url, the parameters are always in
// category, page, year order.
func (c Client) listingUrl(categoryId string, page int, year string) string {
	query := url.Values{}
	query.Set("category", categoryId)
	query.Set("page", fmt.Sprint(page))
	if year != "" {
		query.Set("year", year)
	}
	link := c.resolve(listingPath)
	link.RawQuery = query.Encode()
	return link.String()
}
