package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/batch"
	"github.com/fwojciec/pagetext/extract"
	"github.com/fwojciec/pagetext/fs"
	"github.com/fwojciec/pagetext/goquery"
	"github.com/fwojciec/pagetext/html"
	"github.com/fwojciec/pagetext/htmltomarkdown"
	pthttp "github.com/fwojciec/pagetext/http"
	"github.com/fwojciec/pagetext/rod"
	ptslog "github.com/fwojciec/pagetext/slog"
	"github.com/fwojciec/pagetext/trafilatura"
)

// DefaultURL is extracted when no URL is given.
const DefaultURL = "https://example.com"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"Page URLs to extract (default: https://example.com)"`
	Wait        int           `short:"w" default:"0" help:"Seconds to let the page settle before capturing it"`
	Render      bool          `short:"r" help:"Render the page in headless Chrome (same as --mode=rendered)"`
	Mode        string        `short:"m" default:"static" enum:"static,rendered" help:"Fetch strategy: static or rendered"`
	Format      string        `short:"f" default:"text" enum:"text,markdown" help:"Output format: text or markdown"`
	Main        bool          `help:"Keep only the main content of the page"`
	Timeout     time.Duration `short:"t" default:"10s" env:"PAGETEXT_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent   string        `env:"PAGETEXT_USER_AGENT" help:"User-Agent header for static fetches"`
	BrowserBin  string        `env:"PAGETEXT_BROWSER_BIN" help:"Path to the Chrome/Chromium binary"`
	NoSandbox   bool          `env:"PAGETEXT_NO_SANDBOX" help:"Disable the Chrome sandbox (needed as root in containers)"`
	Out         string        `short:"o" help:"Write results as text files into this directory"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent extractions when several URLs are given"`
	RPS         float64       `default:"1" help:"Requests per second per domain when several URLs are given (0 disables)"`
	Verbose     bool          `short:"v" help:"Log pipeline stages to stderr"`
}

// Config is the validated configuration derived from the CLI.
type Config struct {
	URLs        []string
	Wait        int
	Mode        pagetext.RenderMode
	Markdown    bool
	MainContent bool
	Timeout     time.Duration
	UserAgent   string
	BrowserBin  string
	NoSandbox   bool
	OutDir      string
	Concurrency int
	RPS         float64
	Verbose     bool
}

// Config validates the parsed flags.
func (c *CLI) Config() (*Config, error) {
	mode, err := pagetext.ParseRenderMode(c.Mode)
	if err != nil {
		return nil, err
	}
	if c.Render {
		mode = pagetext.RenderRendered
	}
	if c.Wait < 0 {
		return nil, pagetext.Errorf(pagetext.EINVALID, "--wait must not be negative")
	}

	urls := c.URLs
	if len(urls) == 0 {
		urls = []string{DefaultURL}
	}

	return &Config{
		URLs:        urls,
		Wait:        c.Wait,
		Mode:        mode,
		Markdown:    c.Format == "markdown",
		MainContent: c.Main,
		Timeout:     c.Timeout,
		UserAgent:   c.UserAgent,
		BrowserBin:  c.BrowserBin,
		NoSandbox:   c.NoSandbox,
		OutDir:      c.Out,
		Concurrency: c.Concurrency,
		RPS:         c.RPS,
		Verbose:     c.Verbose,
	}, nil
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Extractor *extract.Extractor
	Runner    *batch.Runner
}

// newLogger returns a debug logger writing to w, or nil when logging is off.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newExtractor wires the pipeline stages selected by cfg.
func (m *Main) newExtractor(cfg *Config, logger *slog.Logger) *extract.Extractor {
	var sanitizer pagetext.Sanitizer = goquery.NewSanitizer()
	if cfg.MainContent {
		sanitizer = trafilatura.NewSanitizer(sanitizer)
	}

	var flattener pagetext.Flattener = html.NewFlattener()
	if cfg.Markdown {
		flattener = htmltomarkdown.NewFlattener()
	}

	fetchers := m.Fetchers
	if fetchers == nil {
		fetchers = map[pagetext.RenderMode]pagetext.Fetcher{
			pagetext.RenderStatic: pthttp.NewFetcher(
				pthttp.WithTimeout(cfg.Timeout),
				pthttp.WithUserAgent(cfg.UserAgent),
			),
			pagetext.RenderRendered: rod.NewFetcher(
				rod.WithFetchTimeout(cfg.Timeout),
				rod.WithLauncher(rod.NewChromeLauncher(
					rod.WithBrowserBin(cfg.BrowserBin),
					rod.WithNoSandbox(cfg.NoSandbox),
				)),
			),
		}
	}

	if logger != nil {
		sanitizer = ptslog.NewLoggingSanitizer(sanitizer, logger)
		flattener = ptslog.NewLoggingFlattener(flattener, logger)
	}

	e := extract.NewExtractor(sanitizer, flattener)
	for mode, f := range fetchers {
		if logger != nil {
			f = ptslog.NewLoggingFetcher(f, mode, logger)
		}
		e.Register(mode, f)
	}
	return e
}

// newRunner creates the batch runner, with a file store when an output
// directory is configured.
func newRunner(e *extract.Extractor, cfg *Config) *batch.Runner {
	r := &batch.Runner{
		Extractor:   e,
		RateLimiter: batch.NewDomainLimiter(cfg.RPS),
		Concurrency: cfg.Concurrency,
	}
	if cfg.OutDir != "" {
		r.Store = fs.NewFileStore(filepath.Dir(cfg.OutDir), filepath.Base(cfg.OutDir))
	}
	return r
}
