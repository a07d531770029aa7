package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdcopy"
)

var _ mdcopy.FrameworkDetector = (*Detector)(nil)

// generators maps substrings of <meta name="generator"> to frameworks.
// VitePress is listed before VuePress because its generator string contains
// the older name in some releases.
var generators = []struct {
	needle    string
	framework mdcopy.Framework
}{
	{"sphinx", mdcopy.FrameworkSphinx},
	{"gitbook", mdcopy.FrameworkGitBook},
	{"docusaurus", mdcopy.FrameworkDocusaurus},
	{"mkdocs", mdcopy.FrameworkMkDocs},
	{"vitepress", mdcopy.FrameworkVitePress},
	{"vuepress", mdcopy.FrameworkVuePress},
	{"nextra", mdcopy.FrameworkNextra},
}

// markers are structural selectors unique to each framework's theme,
// checked in order when the page has no generator tag.
var markers = []struct {
	framework mdcopy.Framework
	selectors []string
}{
	{mdcopy.FrameworkDocusaurus, []string{
		"#__docusaurus_skipToContent_fallback",
		".theme-doc-sidebar-container",
		".theme-doc-markdown",
	}},
	{mdcopy.FrameworkMkDocs, []string{
		"[data-md-color-scheme]",
		"[data-md-component]",
		".md-nav--primary",
	}},
	{mdcopy.FrameworkSphinx, []string{
		".toctree-wrapper",
		".wy-nav-side",
		".wy-menu-vertical",
		".sphinxsidebar",
	}},
	{mdcopy.FrameworkVitePress, []string{
		"#VPContent",
		".VPDoc",
		".VPDocAsideOutline",
	}},
	{mdcopy.FrameworkVuePress, []string{
		".theme-default-content",
		".sidebar-links",
		".vuepress-navbar",
	}},
	{mdcopy.FrameworkGitBook, []string{
		"[data-testid='space.sidebar']",
		"[data-testid='page.desktopTableOfContents']",
	}},
	{mdcopy.FrameworkNextra, []string{
		".nextra-navbar",
		".nextra-sidebar",
		".nextra-toc",
	}},
}

// Detector identifies documentation frameworks from the generator meta tag
// and from theme markup unique to each generator.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect parses html and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func (d *Detector) Detect(html string) mdcopy.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return mdcopy.FrameworkUnknown
	}
	return d.DetectDocument(doc)
}

// DetectDocument is Detect for an already parsed page.
func (d *Detector) DetectDocument(doc *goquery.Document) mdcopy.Framework {
	if framework := fromGenerator(doc); framework != mdcopy.FrameworkUnknown {
		return framework
	}

	for _, m := range markers {
		for _, selector := range m.selectors {
			if doc.Find(selector).Length() > 0 {
				return m.framework
			}
		}
	}

	// Docusaurus sets both on <html>, rarely on the same element elsewhere.
	if doc.Find("[data-rh]").Length() > 0 && doc.Find("[data-theme]").Length() > 0 {
		return mdcopy.FrameworkDocusaurus
	}

	if hasGitBookClasses(doc) {
		return mdcopy.FrameworkGitBook
	}

	return mdcopy.FrameworkUnknown
}

func fromGenerator(doc *goquery.Document) mdcopy.Framework {
	content, ok := doc.Find("meta[name='generator']").Last().Attr("content")
	if !ok {
		return mdcopy.FrameworkUnknown
	}
	content = strings.ToLower(content)
	for _, g := range generators {
		if strings.Contains(content, g.needle) {
			return g.framework
		}
	}
	return mdcopy.FrameworkUnknown
}

// hasGitBookClasses reports whether <html> carries at least two of the
// classes GitBook puts there.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").First().Attr("class")
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}
