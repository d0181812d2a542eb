package mock

import (
	"context"
	"time"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagetext.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, settle time.Duration) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string, settle time.Duration) (string, error) {
	return f.FetchFn(ctx, url, settle)
}
