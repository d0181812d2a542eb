package pagetext

import "time"

// RenderMode selects how markup is retrieved.
type RenderMode string

// RenderMode constants.
const (
	// RenderStatic fetches the markup as served, without running scripts.
	RenderStatic RenderMode = "static"

	// RenderRendered loads the page in a headless browser and captures the
	// DOM after client-side scripts have run.
	RenderRendered RenderMode = "rendered"
)

// ParseRenderMode converts a mode name into a RenderMode.
// An empty name selects RenderStatic.
func ParseRenderMode(s string) (RenderMode, error) {
	switch RenderMode(s) {
	case "", RenderStatic:
		return RenderStatic, nil
	case RenderRendered:
		return RenderRendered, nil
	}
	return "", Errorf(EINVALID, "unknown render mode %q", s)
}

// FetchRequest describes a single extraction.
type FetchRequest struct {
	URL string

	// Wait is the settle delay applied after the page is fetched or
	// navigated to, before its markup is captured.
	Wait time.Duration

	Mode RenderMode
}

// NewFetchRequest returns a request for url with a settle delay of
// waitSeconds whole seconds.
func NewFetchRequest(url string, waitSeconds int, mode RenderMode) FetchRequest {
	return FetchRequest{
		URL:  url,
		Wait: time.Duration(waitSeconds) * time.Second,
		Mode: mode,
	}
}

// Validate returns an error if the request contains invalid fields.
func (r FetchRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "url required")
	}
	if r.Wait < 0 {
		return Errorf(EINVALID, "wait must not be negative")
	}
	if _, err := ParseRenderMode(string(r.Mode)); err != nil {
		return err
	}
	return nil
}
