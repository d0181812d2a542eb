// Package html flattens sanitized documents into plain text by walking the
// golang.org/x/net/html node tree.
package html

import (
	"strings"

	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
)

// Ensure Flattener implements pagetext.Flattener at compile time.
var _ pagetext.Flattener = (*Flattener)(nil)

// Separator is placed between text fragments.
const Separator = "\n"

// Flattener emits the text of a document, one fragment per text node.
//
// Each text node is its own fragment, so text interrupted by an element is
// split: <div>Hello<b>big</b>World</div> becomes "Hello\nbig\nWorld".
type Flattener struct{}

// NewFlattener creates a new Flattener.
func NewFlattener() *Flattener {
	return &Flattener{}
}

// Flatten walks the tree depth-first in document order, trims every text
// node, drops the empty ones and joins the rest with Separator.
func (f *Flattener) Flatten(doc *pagetext.Document) (string, error) {
	if doc == nil || doc.Root == nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "nil document")
	}

	var fragments []string
	collect(doc.Root, &fragments)
	return strings.Join(fragments, Separator), nil
}

func collect(n *html.Node, fragments *[]string) {
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			*fragments = append(*fragments, text)
		}
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		// Denylisted text must never be emitted, sanitized or not.
		if denied(n.Data) {
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, fragments)
	}
}

func denied(tag string) bool {
	for _, d := range pagetext.Denylist {
		if strings.EqualFold(tag, d) {
			return true
		}
	}
	return false
}
