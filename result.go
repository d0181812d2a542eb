package pagetext

import (
	"context"
	"time"
)

// Result is the outcome of one extraction. Exactly one of Text and
// ErrorMessage is set.
type Result struct {
	Text         string
	ErrorMessage string
}

// OK reports whether the extraction succeeded.
func (r *Result) OK() bool {
	return r.ErrorMessage == ""
}

// Record is a successful extraction prepared for storage.
type Record struct {
	URL         string
	Mode        RenderMode
	Text        string
	Hash        string
	ExtractedAt time.Time
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record url required")
	}
	return nil
}

// RecordStore persists records with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type RecordStore interface {
	Save(ctx context.Context, rec *Record) error
	Commit() error
	Abort() error
}
