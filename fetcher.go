package pagetext

import (
	"context"
	"time"
)

// Fetcher retrieves raw markup for a URL.
// Implementations differ in whether client-side scripts are executed.
type Fetcher interface {
	// Fetch retrieves the markup at url. If settle is positive the
	// implementation waits that long before returning, giving asynchronous
	// page behavior time to complete.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, settle time.Duration) (html string, err error)
}

// Settle blocks for d, or until ctx is done. A non-positive d returns
// immediately.
func Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
