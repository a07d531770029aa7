package mdcopy

import "context"

// Clipboard writes plain text to the system clipboard.
type Clipboard interface {
	// WriteText replaces the clipboard contents with text.
	// Returns EUNAVAILABLE if no clipboard mechanism works on this system.
	WriteText(ctx context.Context, text string) error
}
