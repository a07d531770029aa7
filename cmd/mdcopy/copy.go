package main

import (
	"fmt"
	"sync"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/export"
)

// Run executes the copy command.
func (c *CopyCmd) Run(deps *Dependencies) error {
	doc, pageURL, err := loadPage(deps, c.URL)
	if err != nil {
		printError(deps, err)
		return err
	}

	reverted := make(chan struct{})
	var once sync.Once
	indicator := export.NewIndicator(
		export.WithHold(c.Hold),
		export.WithNotify(func(copied bool) {
			if !copied {
				once.Do(func() { close(reverted) })
			}
		}),
	)

	switch export.NewCopier(deps.Exporter, deps.Clipboard, indicator).Copy(deps.Ctx, doc, pageURL) {
	case export.OutcomeNotFound:
		// Nothing to copy is not a failure: the clipboard is left alone.
		fmt.Fprintln(deps.Stderr, "No content found")
		return nil
	case export.OutcomeFailed:
		fmt.Fprintln(deps.Stderr, "Copy failed (run with --verbose for details)")
		return mdcopy.Errorf(mdcopy.EINTERNAL, "copy of %s failed", pageURL)
	}

	fmt.Fprintln(deps.Stdout, "Copied to clipboard")

	// Some platforms only serve the clipboard while the process is alive.
	select {
	case <-reverted:
	case <-deps.Ctx.Done():
		indicator.Reset()
	}
	return nil
}
