package mock

import "github.com/fwojciec/pagetext"

var _ pagetext.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of pagetext.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(markup string) (*pagetext.Document, error)
}

func (s *Sanitizer) Sanitize(markup string) (*pagetext.Document, error) {
	return s.SanitizeFn(markup)
}
