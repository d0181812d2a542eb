package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagetext"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// The failure has already been written to stdout.
		if !errors.Is(err, ErrExtractionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// ErrExtractionFailed is returned by Run when at least one page could not be
// extracted. The error text has already been written to stdout.
var ErrExtractionFailed = errors.New("extraction failed")

// Main represents the program.
type Main struct {
	// Fetchers replaces the HTTP and browser fetchers, for end-to-end testing.
	Fetchers map[pagetext.RenderMode]pagetext.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagetext"),
		kong.Description("Extract the visible text of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	for _, arg := range args {
		if arg == "--help" || arg == "-h" || (len(args) == 1 && arg == "help") {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := cli.Config()
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}
	deps.Extractor = m.newExtractor(cfg, newLogger(stderr, cfg.Verbose))

	if len(cfg.URLs) == 1 && cfg.OutDir == "" {
		return runSingle(deps, cfg)
	}

	deps.Runner = newRunner(deps.Extractor, cfg)
	return runBatch(deps, cfg)
}
