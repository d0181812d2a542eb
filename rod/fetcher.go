// Package rod provides a headless-browser implementation of pagetext.Fetcher
// for pages that build their content with client-side scripts.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/pagetext"
)

// DefaultFetchTimeout bounds browser startup, navigation and capture.
// The settle delay is not counted against it.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Every call runs in its own browser process which is terminated before
// Fetch returns, whatever the outcome.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	launcher Launcher
	timeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for browser operations.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLauncher replaces the browser launcher.
// Defaults to a ChromeLauncher with no options.
func WithLauncher(l Launcher) Option {
	return func(f *Fetcher) {
		f.launcher = l
	}
}

// NewFetcher creates a new Fetcher. No browser is started until Fetch.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.launcher == nil {
		f.launcher = NewChromeLauncher()
	}
	return f
}

// Fetch starts a browser, navigates to url, waits for settle and returns
// the rendered HTML. Startup, navigation and capture failures are returned
// as ERENDER.
func (f *Fetcher) Fetch(ctx context.Context, url string, settle time.Duration) (html string, err error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	navCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	session, err := f.launcher.Launch(navCtx)
	if err != nil {
		return "", pagetext.Errorf(pagetext.ERENDER, "starting browser: %v", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			html, err = "", pagetext.Errorf(pagetext.ERENDER, "closing browser: %v", closeErr)
		}
	}()

	if err := session.Navigate(navCtx, url); err != nil {
		return "", pagetext.Errorf(pagetext.ERENDER, "navigating to %s: %v", url, err)
	}

	if err := pagetext.Settle(ctx, settle); err != nil {
		return "", err
	}

	captureCtx, cancelCapture := context.WithTimeout(ctx, f.timeout)
	defer cancelCapture()

	html, err = session.HTML(captureCtx)
	if err != nil {
		return "", pagetext.Errorf(pagetext.ERENDER, "capturing DOM of %s: %v", url, err)
	}

	return html, nil
}
