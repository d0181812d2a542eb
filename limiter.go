package pagetext

import "context"

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// PageExtractor produces a Result for a single request.
type PageExtractor interface {
	Extract(ctx context.Context, req FetchRequest) *Result
}
