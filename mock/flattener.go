package mock

import "github.com/fwojciec/pagetext"

var _ pagetext.Flattener = (*Flattener)(nil)

// Flattener is a mock implementation of pagetext.Flattener.
type Flattener struct {
	FlattenFn func(doc *pagetext.Document) (string, error)
}

func (f *Flattener) Flatten(doc *pagetext.Document) (string, error) {
	return f.FlattenFn(doc)
}
