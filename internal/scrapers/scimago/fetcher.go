package scimago

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"journalrank/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type Page struct {
	StatusCode int
	Body       []byte
	// Url is the final url of the page after redirects.
	Url *url.URL
}

// Fetcher issues GET requests, a non-200 status is not an error.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, link string, query url.Values) (Page, error)
}

type httpFetcher struct {
	http    *resty.Client
	timeout time.Duration
}

func newHttpFetcher(baseUrl *url.URL, opts ClientOptions, tel telemetry.API) httpFetcher {
	httpClient := resty.New()
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(httpClient, tel)

	return httpFetcher{
		http:    httpClient,
		timeout: opts.Timeout,
	}
}

func (f httpFetcher) Fetch(ctx context.Context, link string, query url.Values) (Page, error) {
	req := f.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	res, err := req.Get(link)
	if err != nil {
		if isTimeout(err) {
			return Page{}, &TimeoutError{Url: link, Timeout: f.timeout, Err: err}
		}
		return Page{}, &FetchError{Url: link, Err: err}
	}

	page := Page{
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		page.Url = res.RawResponse.Request.URL
	}
	return page, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
