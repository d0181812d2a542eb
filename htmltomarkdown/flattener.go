package htmltomarkdown

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
)

// Ensure Flattener implements pagetext.Flattener at compile time.
var _ pagetext.Flattener = (*Flattener)(nil)

// Flattener renders a sanitized document as Markdown, keeping headings,
// lists, links and tables that plain text flattening discards.
type Flattener struct {
	conv *converter.Converter
}

// NewFlattener creates a new Flattener.
func NewFlattener() *Flattener {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Flattener{conv: conv}
}

// Flatten transforms the document into Markdown.
func (f *Flattener) Flatten(doc *pagetext.Document) (string, error) {
	if doc == nil || doc.Root == nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "nil document")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Root); err != nil {
		return "", pagetext.Errorf(pagetext.EINTERNAL, "rendering document: %v", err)
	}

	result, err := f.conv.ConvertString(buf.String())
	if err != nil {
		return "", pagetext.Errorf(pagetext.EPARSE, "converting to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}
