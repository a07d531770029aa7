package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

// Ensure Converter implements mdcopy.Converter at compile time.
var _ mdcopy.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert content trees to Markdown.
// It is the "library" engine; the rules engine in package markdown is the
// default.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain makes relative link and image URLs absolute against domain
// (e.g. "https://docs.example.com").
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker("-"),
				commonmark.WithHorizontalRule("---"),
				commonmark.WithLinkEmptyHrefBehavior(commonmark.LinkBehaviorSkip),
				commonmark.WithLinkEmptyContentBehavior(commonmark.LinkBehaviorSkip),
			),
			table.NewTablePlugin(
				table.WithHeaderPromotion(true),
				table.WithSkipEmptyRows(true),
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	conv.Register.TagType("button", converter.TagTypeRemove, converter.PriorityStandard)
	conv.Register.RendererFor("a", converter.TagTypeInline, renderLocalLink, converter.PriorityEarly)

	c.conv = conv
	return c
}

// Name returns the converter's identifier.
func (c *Converter) Name() string {
	return "library"
}

// Convert transforms a content tree into Markdown. The library rewrites the
// tree it converts, so it works on a private copy of root.
func (c *Converter) Convert(root *html.Node) (string, error) {
	if root == nil {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "nil content root")
	}

	doc := goquery.NewDocumentFromNode(root).Clone().Get(0)
	if doc.Type != html.DocumentNode {
		wrapper := &html.Node{Type: html.DocumentNode}
		wrapper.AppendChild(doc)
		doc = wrapper
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}

	result, err := c.conv.ConvertNode(doc, opts...)
	if err != nil {
		return "", err
	}

	return string(result), nil
}

// renderLocalLink renders links that point into the page itself, or nowhere,
// as their bare content.
func renderLocalLink(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	href := strings.ToLower(strings.TrimSpace(dom.GetAttributeOr(n, "href", "")))
	if href != "" && !strings.HasPrefix(href, "#") && !strings.HasPrefix(href, "javascript:") {
		return converter.RenderTryNext
	}

	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}
