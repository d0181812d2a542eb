package pagetext

import "golang.org/x/net/html"

// Denylist holds the element names removed, with their descendants, before
// text extraction.
var Denylist = []string{"style", "script", "link", "meta", "noscript", "svg"}

// Document is a parsed markup tree with non-content nodes removed.
// A Document belongs to a single extraction and is never shared.
type Document struct {
	Root *html.Node
}

// Sanitizer parses raw markup and removes non-content nodes.
type Sanitizer interface {
	// Sanitize parses markup into a new Document without the nodes named
	// in Denylist. The input is never modified.
	Sanitize(markup string) (*Document, error)
}
