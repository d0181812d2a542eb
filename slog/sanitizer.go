package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagetext"
)

// Ensure LoggingSanitizer implements pagetext.Sanitizer.
var _ pagetext.Sanitizer = (*LoggingSanitizer)(nil)

// LoggingSanitizer wraps a Sanitizer with debug logging.
type LoggingSanitizer struct {
	next   pagetext.Sanitizer
	logger *slog.Logger
}

// NewLoggingSanitizer creates a new LoggingSanitizer.
func NewLoggingSanitizer(next pagetext.Sanitizer, logger *slog.Logger) *LoggingSanitizer {
	return &LoggingSanitizer{next: next, logger: logger}
}

// Sanitize delegates to the wrapped sanitizer and logs the input size.
func (s *LoggingSanitizer) Sanitize(markup string) (doc *pagetext.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("sanitize",
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sanitize(markup)
}
