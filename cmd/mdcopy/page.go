package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/fs"
	"golang.org/x/net/html"
)

// loadPage fetches and parses target. Local paths are reported under their
// file:// URL.
func loadPage(deps *Dependencies, target string) (*html.Node, string, error) {
	pageURL := target
	if fs.IsLocal(target) {
		path, err := fs.FilePath(target)
		if err != nil {
			return nil, "", err
		}
		if pageURL, err = fs.FileURL(path); err != nil {
			return nil, "", err
		}
	}

	src, err := deps.Fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		return nil, "", err
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, "", mdcopy.Errorf(mdcopy.EINVALID, "parse %s: %v", pageURL, err)
	}
	return doc, pageURL, nil
}

func printError(deps *Dependencies, err error) {
	fmt.Fprintf(deps.Stderr, "error: %s\n", mdcopy.ErrorMessage(err))
}
