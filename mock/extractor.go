package mock

import (
	"context"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of pagetext.PageExtractor.
type PageExtractor struct {
	ExtractFn func(ctx context.Context, req pagetext.FetchRequest) *pagetext.Result
}

func (e *PageExtractor) Extract(ctx context.Context, req pagetext.FetchRequest) *pagetext.Result {
	return e.ExtractFn(ctx, req)
}
