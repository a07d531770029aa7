package export

import (
	"context"

	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

// Outcome is the result of a copy invocation as seen by the user.
type Outcome int

const (
	// OutcomeCopied means the Markdown is on the clipboard.
	OutcomeCopied Outcome = iota
	// OutcomeNotFound means the page had nothing to copy.
	OutcomeNotFound
	// OutcomeFailed means the export or the clipboard write failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeNotFound:
		return "not found"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Copier exports a page and writes it to the clipboard, acknowledging
// success on an Indicator.
type Copier struct {
	exporter  mdcopy.Exporter
	clipboard mdcopy.Clipboard
	indicator *Indicator
}

// NewCopier creates a Copier. indicator may be nil.
func NewCopier(exporter mdcopy.Exporter, clipboard mdcopy.Clipboard, indicator *Indicator) *Copier {
	return &Copier{
		exporter:  exporter,
		clipboard: clipboard,
		indicator: indicator,
	}
}

// Copy runs the export to completion and only then writes the clipboard.
// It never fails loudly: a page without content is OutcomeNotFound and
// leaves the clipboard alone, any other failure is OutcomeFailed and
// leaves the indicator alone.
func (c *Copier) Copy(ctx context.Context, doc *html.Node, pageURL string) Outcome {
	exp, err := c.exporter.Export(doc, pageURL)
	switch {
	case mdcopy.ErrorCode(err) == mdcopy.ENOTFOUND:
		return OutcomeNotFound
	case err != nil:
		return OutcomeFailed
	}

	if err := c.clipboard.WriteText(ctx, exp.Markdown); err != nil {
		return OutcomeFailed
	}

	if c.indicator != nil {
		c.indicator.Acknowledge()
	}
	return OutcomeCopied
}
