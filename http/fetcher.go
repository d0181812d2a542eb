// Package http provides an HTTP-based implementation of pagetext.Fetcher
// for pages whose served markup already carries the content.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves markup with a single HTTP GET.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
// Ignored when WithClient is used.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the underlying http.Client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the markup at url. Any transport failure or a 4xx/5xx
// status is returned as ENETWORK; nothing is retried.
//
// The settle delay is applied after the body has been read even though no
// scripts run here, so both fetch strategies honour the same request.
func (f *Fetcher) Fetch(ctx context.Context, url string, settle time.Duration) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagetext.Errorf(pagetext.ENETWORK, "invalid request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", pagetext.Errorf(pagetext.ENETWORK, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", pagetext.Errorf(pagetext.ENETWORK, "HTTP %d %s for %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), url)
	}

	// Decode to UTF-8 using the declared charset, or by sniffing the markup.
	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", pagetext.Errorf(pagetext.ENETWORK, "decoding body of %s: %v", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", pagetext.Errorf(pagetext.ENETWORK, "reading body of %s: %v", url, err)
	}

	if err := pagetext.Settle(ctx, settle); err != nil {
		return "", err
	}

	return string(body), nil
}
