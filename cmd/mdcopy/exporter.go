package main

import (
	"log/slog"
	"net/url"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/export"
	"github.com/fwojciec/mdcopy/goquery"
	"github.com/fwojciec/mdcopy/htmltomarkdown"
	"github.com/fwojciec/mdcopy/markdown"
	"github.com/fwojciec/mdcopy/readability"
	mdslog "github.com/fwojciec/mdcopy/slog"
	"github.com/fwojciec/mdcopy/trafilatura"
	"golang.org/x/net/html"
)

// pageExporter builds the converter for each page so relative links
// resolve against that page's URL.
type pageExporter struct {
	engine    string
	selectors []string
	fallback  string
	baseURL   *url.URL
	logger    *slog.Logger
}

func newPageExporter(cli *CLI, logger *slog.Logger) (*pageExporter, error) {
	e := &pageExporter{
		engine:    cli.Engine,
		selectors: cli.Selector,
		fallback:  cli.Fallback,
		logger:    logger,
	}
	if cli.BaseURL != "" {
		u, err := url.Parse(cli.BaseURL)
		if err != nil || !u.IsAbs() {
			return nil, mdcopy.Errorf(mdcopy.EINVALID, "invalid base URL %q", cli.BaseURL)
		}
		e.baseURL = u
	}
	return e, nil
}

// Export implements mdcopy.Exporter.
func (e *pageExporter) Export(doc *html.Node, pageURL string) (*mdcopy.Export, error) {
	base := e.base(pageURL)
	return export.NewExporter(e.locator(base), e.converter(base)).Export(doc, pageURL)
}

// base is --base-url when given, else the page URL when it is on the web.
func (e *pageExporter) base(pageURL string) *url.URL {
	if e.baseURL != nil {
		return e.baseURL
	}
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil
	}
	return u
}

func (e *pageExporter) locator(base *url.URL) mdcopy.Locator {
	var opts []goquery.LocatorOption
	if len(e.selectors) > 0 {
		opts = append(opts, goquery.WithContentSelectors(e.selectors...))
	}
	switch e.fallback {
	case "trafilatura":
		opts = append(opts, goquery.WithFallback(trafilatura.NewExtractor(trafilatura.WithPageURL(base))))
	case "readability":
		opts = append(opts, goquery.WithFallback(readability.NewExtractor(base)))
	}
	return mdslog.NewLoggingLocator(goquery.NewLocator(opts...), e.logger)
}

func (e *pageExporter) converter(base *url.URL) mdcopy.Converter {
	var conv mdcopy.Converter
	switch e.engine {
	case "library":
		var opts []htmltomarkdown.Option
		if base != nil {
			opts = append(opts, htmltomarkdown.WithDomain(base.String()))
		}
		conv = htmltomarkdown.NewConverter(opts...)
	default:
		conv = markdown.NewConverter(markdown.WithBaseURL(base))
	}
	return mdslog.NewLoggingConverter(conv, e.logger)
}
