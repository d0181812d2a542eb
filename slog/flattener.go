package slog

import (
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/pagetext"
)

// Ensure LoggingFlattener implements pagetext.Flattener.
var _ pagetext.Flattener = (*LoggingFlattener)(nil)

// LoggingFlattener wraps a Flattener with debug logging.
type LoggingFlattener struct {
	next   pagetext.Flattener
	logger *slog.Logger
}

// NewLoggingFlattener creates a new LoggingFlattener.
func NewLoggingFlattener(next pagetext.Flattener, logger *slog.Logger) *LoggingFlattener {
	return &LoggingFlattener{next: next, logger: logger}
}

// Flatten delegates to the wrapped flattener and logs the output size.
func (f *LoggingFlattener) Flatten(doc *pagetext.Document) (text string, err error) {
	defer func(begin time.Time) {
		lines := 0
		if text != "" {
			lines = strings.Count(text, "\n") + 1
		}
		f.logger.Debug("flatten",
			"chars", len(text),
			"lines", lines,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Flatten(doc)
}
