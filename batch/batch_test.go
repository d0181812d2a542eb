package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/batch"
	"github.com/fwojciec/pagetext/fs"
	"github.com/fwojciec/pagetext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Batch Extraction
// Many pages are extracted independently and stored together

func requests(urls ...string) []pagetext.FetchRequest {
	reqs := make([]pagetext.FetchRequest, len(urls))
	for i, u := range urls {
		reqs[i] = pagetext.NewFetchRequest(u, 0, pagetext.RenderStatic)
	}
	return reqs
}

func echoExtractor() *mock.PageExtractor {
	return &mock.PageExtractor{
		ExtractFn: func(_ context.Context, req pagetext.FetchRequest) *pagetext.Result {
			if strings.Contains(req.URL, "broken") {
				return &pagetext.Result{ErrorMessage: "Error: HTTP 500"}
			}
			return &pagetext.Result{Text: "text of " + req.URL}
		},
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns items in input order", func(t *testing.T) {
		t.Parallel()

		// Given an extractor whose first page is the slowest
		extractor := &mock.PageExtractor{
			ExtractFn: func(_ context.Context, req pagetext.FetchRequest) *pagetext.Result {
				if strings.HasSuffix(req.URL, "/a") {
					time.Sleep(50 * time.Millisecond)
				}
				return &pagetext.Result{Text: req.URL}
			},
		}
		r := &batch.Runner{Extractor: extractor, Concurrency: 3}

		// When I run a batch
		items, err := r.Run(context.Background(), requests("https://x.com/a", "https://x.com/b", "https://x.com/c"), nil)

		// Then results follow the request order
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "https://x.com/a", items[0].Result.Text)
		assert.Equal(t, "https://x.com/b", items[1].Result.Text)
		assert.Equal(t, "https://x.com/c", items[2].Result.Text)
	})

	t.Run("failed pages do not stop the batch", func(t *testing.T) {
		t.Parallel()

		r := &batch.Runner{Extractor: echoExtractor()}

		items, err := r.Run(context.Background(), requests("https://x.com/broken", "https://x.com/ok"), nil)

		require.NoError(t, err)
		assert.False(t, items[0].Result.OK())
		assert.Empty(t, items[0].Hash)
		assert.True(t, items[1].Result.OK())
		assert.Equal(t, batch.ComputeHash("text of https://x.com/ok"), items[1].Hash)

		ok, failed := batch.Summary(items)
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, failed)
	})

	t.Run("limits concurrency", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		extractor := &mock.PageExtractor{
			ExtractFn: func(_ context.Context, req pagetext.FetchRequest) *pagetext.Result {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				inFlight.Add(-1)
				return &pagetext.Result{Text: "x"}
			},
		}
		r := &batch.Runner{Extractor: extractor, Concurrency: 2}

		_, err := r.Run(context.Background(), requests("a", "b", "c", "d", "e", "f"), nil)

		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("reports progress for every page", func(t *testing.T) {
		t.Parallel()

		var events []batch.Progress
		r := &batch.Runner{Extractor: echoExtractor()}

		_, err := r.Run(context.Background(), requests("https://x.com/1", "https://x.com/2"), func(p batch.Progress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, 1, events[0].Completed)
		assert.Equal(t, 2, events[1].Completed)
		assert.Equal(t, 2, events[1].Total)
	})

	t.Run("waits on rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				hosts = append(hosts, domain)
				return nil
			},
		}
		r := &batch.Runner{Extractor: echoExtractor(), RateLimiter: limiter, Concurrency: 1}

		_, err := r.Run(context.Background(), requests("https://a.com/x", "https://b.com/y"), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.com", "b.com"}, hosts)
	})

	t.Run("returns rate limiter error", func(t *testing.T) {
		t.Parallel()

		limiter := &mock.DomainLimiter{
			WaitFn: func(context.Context, string) error { return context.Canceled },
		}
		r := &batch.Runner{Extractor: echoExtractor(), RateLimiter: limiter}

		_, err := r.Run(context.Background(), requests("https://a.com/x"), nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("saves successful pages and commits", func(t *testing.T) {
		t.Parallel()

		fixed := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
		var saved []*pagetext.Record
		committed := false
		store := &mock.RecordStore{
			SaveFn: func(_ context.Context, rec *pagetext.Record) error {
				saved = append(saved, rec)
				return nil
			},
			CommitFn: func() error { committed = true; return nil },
			AbortFn:  func() error { t.Fatal("unexpected abort"); return nil },
		}
		r := &batch.Runner{Extractor: echoExtractor(), Store: store, Now: func() time.Time { return fixed }}

		_, err := r.Run(context.Background(), requests("https://x.com/ok", "https://x.com/broken"), nil)

		require.NoError(t, err)
		assert.True(t, committed)
		require.Len(t, saved, 1)
		assert.Equal(t, "https://x.com/ok", saved[0].URL)
		assert.Equal(t, pagetext.RenderStatic, saved[0].Mode)
		assert.Equal(t, fixed, saved[0].ExtractedAt)
		assert.NotEmpty(t, saved[0].Hash)
	})

	t.Run("aborts store when save fails", func(t *testing.T) {
		t.Parallel()

		aborted := false
		store := &mock.RecordStore{
			SaveFn:   func(context.Context, *pagetext.Record) error { return errors.New("disk full") },
			CommitFn: func() error { t.Fatal("unexpected commit"); return nil },
			AbortFn:  func() error { aborted = true; return nil },
		}
		r := &batch.Runner{Extractor: echoExtractor(), Store: store}

		_, err := r.Run(context.Background(), requests("https://x.com/ok"), nil)

		assert.EqualError(t, err, "disk full")
		assert.True(t, aborted)
	})
}

func TestRunner_Run_AllPagesFail(t *testing.T) {
	t.Parallel()

	t.Run("aborts store instead of committing", func(t *testing.T) {
		t.Parallel()

		aborted := false
		store := &mock.RecordStore{
			SaveFn:   func(context.Context, *pagetext.Record) error { t.Fatal("unexpected save"); return nil },
			CommitFn: func() error { t.Fatal("unexpected commit"); return nil },
			AbortFn:  func() error { aborted = true; return nil },
		}
		r := &batch.Runner{Extractor: echoExtractor(), Store: store}

		items, err := r.Run(context.Background(), requests("https://x.com/broken", "https://y.com/broken"), nil)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, aborted)
	})

	t.Run("keeps previous output directory", func(t *testing.T) {
		t.Parallel()

		// Given output from an earlier run
		base := t.TempDir()
		previous := filepath.Join(base, "pages", "previous.txt")
		require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0755))
		require.NoError(t, os.WriteFile(previous, []byte("old"), 0644))
		r := &batch.Runner{Extractor: echoExtractor(), Store: fs.NewFileStore(base, "pages")}

		// When every page of the next run fails
		_, err := r.Run(context.Background(), requests("https://x.com/broken"), nil)

		// Then the earlier output is untouched
		require.NoError(t, err)
		content, err := os.ReadFile(previous)
		require.NoError(t, err)
		assert.Equal(t, "old", string(content))
		_, err = os.Stat(filepath.Join(base, "pages.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	h := batch.ComputeHash("hello")

	assert.Len(t, h, 16)
	assert.Equal(t, h, batch.ComputeHash("hello"))
	assert.NotEqual(t, h, batch.ComputeHash("hello "))
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		url  string
		max  int
		want string
	}{
		{"https://x.com", 50, "https://x.com"},
		{"https://example.com/very/long/path/to/documentation", 20, ".../to/documentation"},
		{"https://example.com", 3, "htt"},
		{"https://example.com", 0, ""},
	} {
		got := batch.TruncateURL(tc.url, tc.max)
		assert.Equal(t, tc.want, got)
		assert.LessOrEqual(t, len(got), max(tc.max, 0))
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", batch.FormatBytes(0))
	assert.Equal(t, "1023 B", batch.FormatBytes(1023))
	assert.Equal(t, "1.5 KB", batch.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", batch.FormatBytes(2*1024*1024))
}
