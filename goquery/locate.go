package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

var _ mdcopy.Locator = (*Locator)(nil)

// Locator finds the article body of a page using the profile of the
// framework the page was built with.
//
// The located element is deep-copied before anything is removed from it, so
// the document handed to Locate is never modified.
type Locator struct {
	detector  *Detector
	registry  mdcopy.ProfileRegistry
	selectors []string
	fallback  mdcopy.Extractor
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithContentSelectors replaces the profile's content selectors. Chrome
// selectors still come from the detected profile.
func WithContentSelectors(selectors ...string) LocatorOption {
	return func(l *Locator) {
		l.selectors = selectors
	}
}

// WithRegistry sets the profiles used by the Locator.
func WithRegistry(r mdcopy.ProfileRegistry) LocatorOption {
	return func(l *Locator) {
		l.registry = r
	}
}

// WithFallback sets an extractor consulted when no content selector
// matches. Without one, such pages are reported as not found.
func WithFallback(e mdcopy.Extractor) LocatorOption {
	return func(l *Locator) {
		l.fallback = e
	}
}

// NewLocator creates a Locator using the built-in profiles.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		detector: NewDetector(),
		registry: NewDefaultRegistry(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns a cleaned copy of the page's content root.
func (l *Locator) Locate(doc *html.Node) (*mdcopy.Content, error) {
	if doc == nil {
		return nil, mdcopy.Errorf(mdcopy.EINVALID, "nil document")
	}

	page := goquery.NewDocumentFromNode(doc)
	framework := l.detector.DetectDocument(page)
	profile := l.profile(framework)

	selectors := profile.ContentSelectors
	if len(l.selectors) > 0 {
		selectors = l.selectors
	}

	for _, selector := range selectors {
		found := page.Find(selector).First()
		if found.Length() == 0 {
			continue
		}
		root := found.Clone()
		strip(root, profile.ChromeSelectors)
		return &mdcopy.Content{
			Root:      root.Get(0),
			Title:     title(root, documentTitle(page)),
			Framework: framework,
		}, nil
	}

	if l.fallback != nil {
		return l.extract(page, profile, framework)
	}
	return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no content root found")
}

func (l *Locator) profile(framework mdcopy.Framework) *mdcopy.Profile {
	if p := l.registry.Get(framework); p != nil {
		return p
	}
	if p := l.registry.Get(mdcopy.FrameworkUnknown); p != nil {
		return p
	}
	return GenericProfile()
}

// extract hands the whole page to the fallback extractor and parses the
// HTML it returns into a fresh tree.
func (l *Locator) extract(page *goquery.Document, profile *mdcopy.Profile, framework mdcopy.Framework) (*mdcopy.Content, error) {
	src, err := page.Html()
	if err != nil {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no content root found: %v", err)
	}

	res, err := l.fallback.Extract(src)
	if err != nil {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no content root found: %v", err)
	}
	if strings.TrimSpace(res.ContentHTML) == "" {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no content root found: extractor returned no content")
	}

	extracted, err := goquery.NewDocumentFromReader(strings.NewReader(res.ContentHTML))
	if err != nil {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no content root found: %v", err)
	}
	root := extracted.Find("body").First().Clone()
	strip(root, profile.ChromeSelectors)

	fallbackTitle := strings.TrimSpace(res.Title)
	if fallbackTitle == "" {
		fallbackTitle = documentTitle(page)
	}

	return &mdcopy.Content{
		Root:      root.Get(0),
		Title:     title(root, fallbackTitle),
		Framework: framework,
	}, nil
}

func strip(root *goquery.Selection, selectors []string) {
	for _, selector := range selectors {
		root.Find(selector).Remove()
	}
}

// title is the first h1 inside the content, or fallback when there is none.
func title(root *goquery.Selection, fallback string) string {
	if h1 := strings.Join(strings.Fields(root.Find("h1").First().Text()), " "); h1 != "" {
		return h1
	}
	return fallback
}

func documentTitle(page *goquery.Document) string {
	return strings.Join(strings.Fields(page.Find("title").First().Text()), " ")
}
