package main

import (
	"fmt"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/batch"
)

// maxURLDisplay bounds the URL width in progress lines.
const maxURLDisplay = 60

// runSingle extracts one page and prints its text, or the error message,
// under a WEBSITE CONTENT header.
func runSingle(deps *Dependencies, cfg *Config) error {
	req := pagetext.NewFetchRequest(cfg.URLs[0], cfg.Wait, cfg.Mode)
	result := deps.Extractor.Extract(deps.Ctx, req)

	fmt.Fprintln(deps.Stdout, "WEBSITE CONTENT:")
	if !result.OK() {
		fmt.Fprintln(deps.Stdout, result.ErrorMessage)
		return ErrExtractionFailed
	}
	fmt.Fprintln(deps.Stdout, result.Text)
	return nil
}

// runBatch extracts every URL, reporting progress on stderr. Without an
// output directory the texts are printed to stdout, each under its URL.
func runBatch(deps *Dependencies, cfg *Config) error {
	reqs := make([]pagetext.FetchRequest, len(cfg.URLs))
	for i, u := range cfg.URLs {
		reqs[i] = pagetext.NewFetchRequest(u, cfg.Wait, cfg.Mode)
	}

	items, err := deps.Runner.Run(deps.Ctx, reqs, func(p batch.Progress) {
		url := batch.TruncateURL(p.URL, maxURLDisplay)
		if p.Result.OK() {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s (%s)\n", p.Completed, p.Total, url, batch.FormatBytes(len(p.Result.Text)))
		} else {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", p.Completed, p.Total, url, p.Result.ErrorMessage)
		}
	})
	if err != nil {
		return err
	}

	if cfg.OutDir == "" {
		for _, item := range items {
			fmt.Fprintf(deps.Stdout, "WEBSITE CONTENT: %s\n", item.Request.URL)
			if item.Result.OK() {
				fmt.Fprintln(deps.Stdout, item.Result.Text)
			} else {
				fmt.Fprintln(deps.Stdout, item.Result.ErrorMessage)
			}
			fmt.Fprintln(deps.Stdout)
		}
	}

	succeeded, failed := batch.Summary(items)
	fmt.Fprintf(deps.Stderr, "%d succeeded, %d failed\n", succeeded, failed)
	if cfg.OutDir != "" && succeeded > 0 {
		fmt.Fprintf(deps.Stderr, "Saved to %s\n", cfg.OutDir)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d pages", ErrExtractionFailed, failed, len(items))
	}
	return nil
}
