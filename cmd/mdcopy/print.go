package main

import (
	"fmt"
	"os"
)

// Run executes the print command.
func (c *PrintCmd) Run(deps *Dependencies) error {
	doc, pageURL, err := loadPage(deps, c.URL)
	if err != nil {
		printError(deps, err)
		return err
	}

	exp, err := deps.Exporter.Export(doc, pageURL)
	if err != nil {
		printError(deps, err)
		return err
	}

	if c.Output == "" {
		_, err = fmt.Fprintln(deps.Stdout, exp.Markdown)
		return err
	}

	if err := os.WriteFile(c.Output, []byte(exp.Markdown+"\n"), 0644); err != nil {
		printError(deps, err)
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s (%s)\n", c.Output, exp.Title)
	return nil
}
