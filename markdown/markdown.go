// Package markdown serializes an HTML content tree to Markdown.
//
// A Converter walks the tree in document order and dispatches every element
// to a Rule keyed by its tag. Elements without a rule are treated as plain
// containers: their children are converted and concatenated with no added
// syntax, so unknown markup never stops a conversion. Assemble normalizes the
// raw output and prepends the page title.
package markdown

import (
	"net/url"
	"strings"

	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements mdcopy.Converter at compile time.
var _ mdcopy.Converter = (*Converter)(nil)

// Converter converts HTML trees to Markdown using a Rules table.
// A Converter is safe for concurrent use; each call gets its own Walker.
type Converter struct {
	rules Rules
	base  *url.URL
}

// Option configures a Converter.
type Option func(*Converter)

// WithBaseURL resolves relative link and image targets against base.
// Without a base URL targets are emitted exactly as written in the page.
func WithBaseURL(base *url.URL) Option {
	return func(c *Converter) {
		c.base = base
	}
}

// WithRule installs r for elements of kind a, replacing the default rule.
func WithRule(a atom.Atom, r Rule) Option {
	return func(c *Converter) {
		c.rules[a] = r
	}
}

// NewConverter creates a Converter with the default rules.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{rules: DefaultRules()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the converter's identifier.
func (c *Converter) Name() string {
	return "rules"
}

// Convert serializes root and its descendants. The returned string is raw:
// pass it through Assemble or Normalize before showing it to anyone.
// Convert only reads root.
func (c *Converter) Convert(root *html.Node) (string, error) {
	if root == nil {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "nil content root")
	}
	w := &Walker{conv: c}
	return w.Node(root), nil
}

// resolve returns ref resolved against the base URL, or ref unchanged when
// there is no base or ref does not parse.
func (c *Converter) resolve(ref string) string {
	if c.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(u).String()
}

// Walker carries the state of one conversion. Rules receive it so that they
// can convert subtrees themselves.
type Walker struct {
	conv  *Converter
	lists int

	// sublists collects lists found below the list item being rendered.
	sublists *[]string
}

// ListDepth returns the number of lists the walker is currently inside.
func (w *Walker) ListDepth() int {
	return w.lists
}

// Node converts n and its subtree.
func (w *Walker) Node(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return edgeSpace(n.Data)
	case html.ElementNode:
		return w.element(n)
	case html.DocumentNode:
		return w.Children(n)
	default:
		return ""
	}
}

// Children converts the children of n in document order and concatenates them.
func (w *Walker) Children(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(w.Node(c))
	}
	return b.String()
}

func (w *Walker) element(n *html.Node) string {
	rule, ok := w.conv.rules[kind(n)]
	if !ok {
		return w.Children(n)
	}

	switch rule.Action {
	case Skip:
		return ""
	case Wrap:
		return rule.Render(w, n, w.Children(n))
	default:
		return rule.Render(w, n, "")
	}
}

// kind returns the atom for n's tag name regardless of case. Nodes built by
// hand may carry only Data.
func kind(n *html.Node) atom.Atom {
	if n.DataAtom != 0 {
		return n.DataAtom
	}
	return atom.Lookup([]byte(strings.ToLower(n.Data)))
}

// edgeSpace shrinks the leading and trailing whitespace of a text node to a
// single space each. Interior whitespace is kept as written.
func edgeSpace(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		if s == "" {
			return ""
		}
		return " "
	}

	var b strings.Builder
	if trimmed[0] != s[0] {
		b.WriteByte(' ')
	}
	b.WriteString(trimmed)
	if trimmed[len(trimmed)-1] != s[len(s)-1] {
		b.WriteByte(' ')
	}
	return b.String()
}
