package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// ErrNeedsBrowser indicates a render option that requires JavaScript
// execution was requested from the browserless renderer.
var ErrNeedsBrowser = errors.New("wait_for_selector and js_code require the chromedp renderer")

// Colly renders pages with a plain HTTP GET, for deployments without a
// Chrome binary. Pages that require JavaScript will come back unrendered.
type Colly struct {
	cfg           Config
	transport     http.RoundTripper
	baseCollector *colly.Collector
}

// NewColly builds the browserless renderer.
func NewColly(cfg Config) *Colly {
	c := colly.NewCollector(colly.Async(false))
	// The service fetches exactly the URLs a user asked for; this is not a
	// crawl frontier, so robots.txt and visit dedup do not apply.
	c.IgnoreRobotsTxt = true
	c.AllowURLRevisit = true
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	transport := newHTTPTransport()
	c.WithTransport(transport)
	return &Colly{
		cfg:           cfg,
		transport:     transport,
		baseCollector: c,
	}
}

// Render fetches the URL and reduces the response body to markdown.
func (r *Colly) Render(ctx context.Context, rawURL string, opts Options) (Result, error) {
	if opts.WaitForSelector != "" || opts.InjectedScript != "" {
		return Result{}, ErrNeedsBrowser
	}

	collector := r.baseCollector.Clone()
	collector.WithTransport(r.transport)
	timeout := r.cfg.NavTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(resp *colly.Response) {
		body = append([]byte(nil), resp.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := r.visit(ctx, collector, rawURL, &fetchErr); err != nil {
		return Result{}, err
	}
	return extract(string(body), opts.FilterThreshold)
}

func (r *Colly) visit(ctx context.Context, collector *colly.Collector, url string, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("fetch response failed: %w", *fetchErr)
		}
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
