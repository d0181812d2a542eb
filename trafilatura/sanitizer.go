package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagetext"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements pagetext.Sanitizer at compile time.
var _ pagetext.Sanitizer = (*Sanitizer)(nil)

// Sanitizer narrows markup to the page's main content with go-trafilatura
// before handing it to the wrapped Sanitizer. Navigation, footers and other
// boilerplate are dropped. When no main content can be identified the full
// markup is passed through unchanged.
type Sanitizer struct {
	next pagetext.Sanitizer
}

// NewSanitizer creates a new Sanitizer wrapping next.
func NewSanitizer(next pagetext.Sanitizer) *Sanitizer {
	return &Sanitizer{next: next}
}

// Sanitize extracts the main content of markup and sanitizes it.
func (s *Sanitizer) Sanitize(markup string) (*pagetext.Document, error) {
	content, ok := mainContent(markup)
	if !ok {
		return s.next.Sanitize(markup)
	}
	return s.next.Sanitize(content)
}

// mainContent returns the main content of markup as HTML.
func mainContent(markup string) (string, bool) {
	if strings.TrimSpace(markup) == "" {
		return "", false
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(markup), opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return "", false
	}

	content, err := renderNode(result.ContentNode)
	if err != nil {
		return "", false
	}
	return content, true
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
