package goquery_test

import (
	"strings"
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want mdcopy.Framework
	}{
		{
			name: "Docusaurus skip link",
			html: `<html data-theme="light"><body>
<a id="__docusaurus_skipToContent_fallback" href="#__docusaurus_skipToContent_fallback">Skip</a>
</body></html>`,
			want: mdcopy.FrameworkDocusaurus,
		},
		{
			name: "Docusaurus sidebar container",
			html: `<div class="theme-doc-sidebar-container"><nav class="menu"></nav></div>`,
			want: mdcopy.FrameworkDocusaurus,
		},
		{
			name: "Docusaurus head attributes",
			html: `<html data-rh="lang,dir" data-theme="dark"><body><p>x</p></body></html>`,
			want: mdcopy.FrameworkDocusaurus,
		},
		{
			name: "MkDocs Material color scheme",
			html: `<body data-md-color-scheme="default"><p>x</p></body>`,
			want: mdcopy.FrameworkMkDocs,
		},
		{
			name: "MkDocs Material component",
			html: `<div data-md-component="content"><p>x</p></div>`,
			want: mdcopy.FrameworkMkDocs,
		},
		{
			name: "Sphinx ReadTheDocs sidebar",
			html: `<nav class="wy-nav-side"><div class="wy-menu-vertical"></div></nav>`,
			want: mdcopy.FrameworkSphinx,
		},
		{
			name: "Sphinx toctree",
			html: `<div class="toctree-wrapper compound"><ul></ul></div>`,
			want: mdcopy.FrameworkSphinx,
		},
		{
			name: "VitePress content",
			html: `<div id="VPContent"><div class="VPDoc"></div></div>`,
			want: mdcopy.FrameworkVitePress,
		},
		{
			name: "VuePress default theme",
			html: `<main class="page"><div class="theme-default-content"></div></main>`,
			want: mdcopy.FrameworkVuePress,
		},
		{
			name: "GitBook sidebar test id",
			html: `<aside data-testid="space.sidebar"></aside>`,
			want: mdcopy.FrameworkGitBook,
		},
		{
			name: "GitBook html classes",
			html: `<html class="circular-corners theme-clean tint"><body></body></html>`,
			want: mdcopy.FrameworkGitBook,
		},
		{
			name: "Nextra toc",
			html: `<nav class="nextra-toc"></nav>`,
			want: mdcopy.FrameworkNextra,
		},
		{
			name: "generator meta tag",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body></body></html>`,
			want: mdcopy.FrameworkSphinx,
		},
		{
			name: "generator meta tag wins over markup",
			html: `<html><head><meta name="generator" content="VitePress v1.0.0"></head>
<body><div class="theme-doc-sidebar-container"></div></body></html>`,
			want: mdcopy.FrameworkVitePress,
		},
		{
			name: "one GitBook class is not enough",
			html: `<html class="tint"><body><p>x</p></body></html>`,
			want: mdcopy.FrameworkUnknown,
		},
		{
			name: "plain page",
			html: `<html><head><title>Blog</title></head><body><main><article><p>x</p></article></main></body></html>`,
			want: mdcopy.FrameworkUnknown,
		},
		{
			name: "empty input",
			html: ``,
			want: mdcopy.FrameworkUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.NewDetector().Detect(tt.html)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetector_DetectDocument(t *testing.T) {
	t.Parallel()

	doc, err := pq.NewDocumentFromReader(strings.NewReader(`<div class="md-nav--primary"></div>`))
	require.NoError(t, err)

	assert.Equal(t, mdcopy.FrameworkMkDocs, goquery.NewDetector().DetectDocument(doc))
}
