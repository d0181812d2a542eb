package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/goquery"
	pthtml "github.com/fwojciec/pagetext/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func flatten(t *testing.T, markup string) string {
	t.Helper()

	doc, err := goquery.NewSanitizer().Sanitize(markup)
	require.NoError(t, err)

	text, err := pthtml.NewFlattener().Flatten(doc)
	require.NoError(t, err)
	return text
}

func TestFlattener_Flatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "splits text around removed script",
			markup: `<div>Hello<script>evil()</script>World</div>`,
			want:   "Hello\nWorld",
		},
		{
			name:   "drops whitespace-only nodes",
			markup: `<div>  </div><p>Text</p>`,
			want:   "Text",
		},
		{
			name:   "trims fragments",
			markup: "<p>\n  padded  \n</p><p>\tsecond\t</p>",
			want:   "padded\nsecond",
		},
		{
			name:   "keeps document order across nesting",
			markup: `<h1>One</h1><ul><li>Two</li><li><a href="/x">Three</a> four</li></ul><p>Five</p>`,
			want:   "One\nTwo\nThree\nfour\nFive",
		},
		{
			name:   "includes title text",
			markup: `<html><head><title>Page Title</title><meta name="a" content="b"></head><body>Body</body></html>`,
			want:   "Page Title\nBody",
		},
		{
			name:   "ignores comments",
			markup: `<p>a<!-- hidden -->b</p>`,
			want:   "a\nb",
		},
		{
			name:   "empty document yields empty string",
			markup: ``,
			want:   "",
		},
		{
			name:   "inline elements split fragments",
			markup: `<p>Hello <b>big</b> World</p>`,
			want:   "Hello\nbig\nWorld",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, flatten(t, tt.markup))
		})
	}
}

func TestFlattener_Flatten_NoTrailingSeparator(t *testing.T) {
	t.Parallel()

	text := flatten(t, `<p>a</p><p>b</p><div>   </div>`)

	assert.False(t, strings.HasSuffix(text, "\n"))
	assert.NotContains(t, text, "\n\n")
}

func TestFlattener_Flatten_SkipsDenylistedElementsInUnsanitizedTree(t *testing.T) {
	t.Parallel()

	root, err := html.Parse(strings.NewReader(`<body>keep<style>p{}</style><noscript>no</noscript>too</body>`))
	require.NoError(t, err)

	text, err := pthtml.NewFlattener().Flatten(&pagetext.Document{Root: root})

	require.NoError(t, err)
	assert.Equal(t, "keep\ntoo", text)
}

func TestFlattener_Flatten_NilDocument(t *testing.T) {
	t.Parallel()

	_, err := pthtml.NewFlattener().Flatten(nil)

	require.Error(t, err)
	assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
}
