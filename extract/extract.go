// Package extract runs the fetch, sanitize and flatten stages for a single
// page and reports the outcome as a pagetext.Result.
package extract

import (
	"context"

	"github.com/fwojciec/pagetext"
)

// ErrorPrefix starts every error message reported in a Result.
const ErrorPrefix = "Error: "

// Extractor turns a FetchRequest into text.
//
// Fetchers maps each render mode to the strategy that serves it; adding a
// mode only requires registering another Fetcher.
type Extractor struct {
	Fetchers  map[pagetext.RenderMode]pagetext.Fetcher
	Sanitizer pagetext.Sanitizer
	Flattener pagetext.Flattener
}

// NewExtractor creates an Extractor with no fetchers registered.
func NewExtractor(sanitizer pagetext.Sanitizer, flattener pagetext.Flattener) *Extractor {
	return &Extractor{
		Fetchers:  make(map[pagetext.RenderMode]pagetext.Fetcher),
		Sanitizer: sanitizer,
		Flattener: flattener,
	}
}

// Register sets the Fetcher used for mode.
func (e *Extractor) Register(mode pagetext.RenderMode, f pagetext.Fetcher) {
	e.Fetchers[mode] = f
}

// ExtractURL is a convenience wrapper around Extract taking the settle
// delay in whole seconds and the mode by name.
func (e *Extractor) ExtractURL(ctx context.Context, url string, waitSeconds int, mode string) *pagetext.Result {
	m, err := pagetext.ParseRenderMode(mode)
	if err != nil {
		return failure(err)
	}
	return e.Extract(ctx, pagetext.NewFetchRequest(url, waitSeconds, m))
}

// Extract fetches, sanitizes and flattens the page described by req.
// It never returns an error or panics: any failure, including a panic in a
// stage, is reported through Result.ErrorMessage and no partial text is
// returned.
func (e *Extractor) Extract(ctx context.Context, req pagetext.FetchRequest) (result *pagetext.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(pagetext.Errorf(pagetext.EINTERNAL, "unexpected failure: %v", r))
		}
	}()

	text, err := e.run(ctx, req)
	if err != nil {
		return failure(err)
	}
	return &pagetext.Result{Text: text}
}

func (e *Extractor) run(ctx context.Context, req pagetext.FetchRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	fetcher, ok := e.Fetchers[req.Mode]
	if !ok || fetcher == nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "no fetcher for render mode %q", req.Mode)
	}

	markup, err := fetcher.Fetch(ctx, req.URL, req.Wait)
	if err != nil {
		return "", err
	}

	doc, err := e.Sanitizer.Sanitize(markup)
	if err != nil {
		return "", err
	}

	return e.Flattener.Flatten(doc)
}

func failure(err error) *pagetext.Result {
	return &pagetext.Result{ErrorMessage: ErrorPrefix + pagetext.ErrorMessage(err)}
}
