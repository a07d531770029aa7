package goquery

import (
	"slices"

	"github.com/fwojciec/mdcopy"
)

// commonChrome is removed from every page regardless of framework: UI
// controls and navigation landmarks never have a Markdown equivalent.
var commonChrome = []string{
	"nav",
	"button",
	"[role='navigation']",
	"[role='tablist']",
}

func chrome(selectors ...string) []string {
	return slices.Concat(commonChrome, selectors)
}

// DocusaurusProfile targets Docusaurus v2.x and v3.x doc pages.
func DocusaurusProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "docusaurus",
		ContentSelectors: []string{
			".theme-doc-markdown",
			"article .markdown",
			"article",
		},
		ChromeSelectors: chrome(
			".hash-link",
			".clean-btn",
			".breadcrumbs",
			".theme-doc-breadcrumbs",
			".theme-doc-version-banner",
			".theme-doc-version-badge",
			".table-of-contents",
			".theme-doc-toc-mobile",
			".theme-doc-toc-desktop",
			".pagination-nav",
			".theme-doc-footer",
			".theme-edit-this-page",
		),
	}
}

// MkDocsProfile targets MkDocs with the Material theme.
func MkDocsProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "mkdocs",
		ContentSelectors: []string{
			"article.md-content__inner",
			".md-content",
			"article",
		},
		ChromeSelectors: chrome(
			".headerlink",
			".md-content__button",
			".md-source-file",
			".md-feedback",
			".md-clipboard",
			".md-sidebar",
			"[data-md-component='toc']",
		),
	}
}

// SphinxProfile covers the ReadTheDocs and classic Sphinx themes.
func SphinxProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "sphinx",
		ContentSelectors: []string{
			"[itemprop='articleBody']",
			".document .body",
			"[role='main']",
			"article",
		},
		ChromeSelectors: chrome(
			".headerlink",
			".copybtn",
			".wy-breadcrumbs",
			".rst-breadcrumbs-buttons",
			".rst-footer-buttons",
			".sphinxsidebar",
			"#localtoc",
		),
	}
}

// VuePressProfile targets the VuePress default theme.
func VuePressProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "vuepress",
		ContentSelectors: []string{
			".theme-default-content",
			"main.page",
		},
		ChromeSelectors: chrome(
			".header-anchor",
			".page-edit",
			".page-nav",
			".page-meta",
			".table-of-contents",
		),
	}
}

// VitePressProfile targets the VitePress default theme.
func VitePressProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "vitepress",
		ContentSelectors: []string{
			".vp-doc",
			".VPDoc main",
		},
		ChromeSelectors: chrome(
			".header-anchor",
			"button.copy",
			".lang",
			".edit-link",
			".prev-next",
			".VPDocFooter",
			".VPDocAsideOutline",
		),
	}
}

// GitBookProfile targets pages published by GitBook.
func GitBookProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "gitbook",
		ContentSelectors: []string{
			"main",
			"article",
		},
		ChromeSelectors: chrome(
			"[data-testid='page.desktopTableOfContents']",
			"[data-testid='space.sidebar']",
			"header",
			"aside",
		),
	}
}

// NextraProfile targets the Nextra docs theme.
func NextraProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "nextra",
		ContentSelectors: []string{
			"article main",
			".nextra-content",
			"article",
			"main",
		},
		ChromeSelectors: chrome(
			".nextra-toc",
			".nextra-breadcrumb",
			".nextra-sidebar",
			"a.subheading-anchor",
		),
	}
}

// GenericProfile works on pages of unknown origin using common semantic
// landmarks and class names.
func GenericProfile() *mdcopy.Profile {
	return &mdcopy.Profile{
		Name: "generic",
		ContentSelectors: []string{
			"main article",
			"article",
			"main",
			"[role='main']",
			"#content",
			".content",
		},
		ChromeSelectors: chrome(
			".breadcrumb",
			".breadcrumbs",
			".toc",
			".table-of-contents",
			".hash-link",
			".headerlink",
			".header-anchor",
			".anchor-link",
			".copy-button",
		),
	}
}
