// Package mdcopy turns a rendered documentation page into Markdown that can
// be pasted somewhere else. It locates the article body of the page, strips
// navigation and other UI chrome from a private copy of it, serializes the
// remaining tree to Markdown and hands the result to the system clipboard.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, htmltomarkdown/).
// The hand-written serializer lives in markdown/.
package mdcopy

// Version is the release version, set at build time with
// -ldflags "-X github.com/fwojciec/mdcopy.Version=...".
var Version = "dev"
