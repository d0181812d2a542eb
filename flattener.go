package pagetext

// Flattener serializes a sanitized Document into text.
type Flattener interface {
	Flatten(doc *Document) (string, error)
}
