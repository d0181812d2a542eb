// Package goquery parses and cleans raw markup with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagetext"
)

// Ensure Sanitizer implements pagetext.Sanitizer at compile time.
var _ pagetext.Sanitizer = (*Sanitizer)(nil)

// denySelector matches every element in pagetext.Denylist.
var denySelector = strings.Join(pagetext.Denylist, ", ")

// Sanitizer removes non-content elements from parsed markup.
// Parsing follows the HTML5 algorithm, so malformed markup is repaired
// rather than rejected.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize parses markup into a fresh tree and detaches every denylisted
// element together with its descendants.
func (s *Sanitizer) Sanitize(markup string) (*pagetext.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EPARSE, "failed to parse HTML: %v", err)
	}

	doc.Find(denySelector).Remove()

	return &pagetext.Document{Root: doc.Get(0)}, nil
}
