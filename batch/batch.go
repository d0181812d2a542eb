// Package batch extracts text from many pages. Each page is an independent
// extraction; pages are processed concurrently with per-domain rate limiting
// and the successful ones are optionally persisted to a RecordStore.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/pagetext"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 3

// Item is the outcome of one page in a batch.
type Item struct {
	Request pagetext.FetchRequest
	Result  *pagetext.Result

	// Hash is the content hash of Result.Text, empty on failure.
	Hash string
}

// Progress reports progress during a batch.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Result    *pagetext.Result
}

// ProgressFunc is called as pages complete. Calls are serialized.
type ProgressFunc func(Progress)

// Runner extracts a list of pages.
type Runner struct {
	Extractor   pagetext.PageExtractor
	RateLimiter pagetext.DomainLimiter // optional
	Store       pagetext.RecordStore   // optional
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Run extracts every request and returns one Item per request, in input
// order. A failed page does not stop the batch; it is reported in its
// Item. Run only returns an error when the context is canceled or the
// store fails, in which case pending store writes are aborted.
func (r *Runner) Run(ctx context.Context, reqs []pagetext.FetchRequest, progress ProgressFunc) ([]*Item, error) {
	items := make([]*Item, len(reqs))

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	completed := 0

	for i, req := range reqs {
		g.Go(func() error {
			if r.RateLimiter != nil {
				if err := r.RateLimiter.Wait(gctx, hostOf(req.URL)); err != nil {
					return err
				}
			}

			result := r.Extractor.Extract(gctx, req)
			item := &Item{Request: req, Result: result}
			if result.OK() {
				item.Hash = ComputeHash(result.Text)
			}
			items[i] = item

			mu.Lock()
			defer mu.Unlock()
			completed++
			if progress != nil {
				progress(Progress{
					URL:       req.URL,
					Completed: completed,
					Total:     len(reqs),
					Result:    result,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}

	if r.Store == nil {
		return items, nil
	}
	saved, err := r.save(ctx, items)
	if err != nil {
		_ = r.Store.Abort()
		return items, err
	}
	// Nothing to publish; the previous output stays in place.
	if saved == 0 {
		return items, r.Store.Abort()
	}
	return items, r.Store.Commit()
}

// save writes every successful item to the store and returns how many
// records were written.
func (r *Runner) save(ctx context.Context, items []*Item) (int, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	saved := 0
	for _, item := range items {
		if !item.Result.OK() {
			continue
		}
		rec := &pagetext.Record{
			URL:         item.Request.URL,
			Mode:        item.Request.Mode,
			Text:        item.Result.Text,
			Hash:        item.Hash,
			ExtractedAt: now(),
		}
		if err := r.Store.Save(ctx, rec); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// Summary counts successful and failed items.
func Summary(items []*Item) (succeeded, failed int) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.Result.OK() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
