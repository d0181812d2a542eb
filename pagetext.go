// Package pagetext turns web pages into plain text for downstream analysis.
// It fetches markup either with a plain HTTP GET or through a headless
// browser, strips non-content nodes and flattens what remains into
// newline-separated text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/).
package pagetext
