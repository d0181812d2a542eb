// Package slog provides log/slog decorators for the pagetext pipeline stages.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetext"
)

// Ensure LoggingFetcher implements pagetext.Fetcher.
var _ pagetext.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   pagetext.Fetcher
	mode   pagetext.RenderMode
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher. mode labels the log
// entries with the strategy being wrapped.
func NewLoggingFetcher(next pagetext.Fetcher, mode pagetext.RenderMode, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, mode: mode, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, settle time.Duration) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"mode", string(f.mode),
			"settle", settle,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, settle)
}
