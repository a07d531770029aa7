package markdown_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements mdcopy.Converter at compile time.
var _ mdcopy.Converter = (*markdown.Converter)(nil)

// convert parses src as a page and returns the normalized Markdown of it.
func convert(t *testing.T, src string, opts ...markdown.Option) string {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	raw, err := markdown.NewConverter(opts...).Convert(doc)
	require.NoError(t, err)

	return markdown.Normalize(raw)
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestConverter_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("heading and paragraph with inline code", func(t *testing.T) {
		t.Parallel()

		doc, err := html.Parse(strings.NewReader(`<h1>Title</h1><p>Hello <code>world</code></p>`))
		require.NoError(t, err)

		raw, err := markdown.NewConverter().Convert(doc)
		require.NoError(t, err)

		assert.Equal(t, "# Title\n\nHello `world`", markdown.Assemble("Title", raw))
	})

	t.Run("fenced code block tagged with its language", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<pre><code class="language-rust">fn main() {}</code></pre>`)

		assert.Equal(t, "```rust\nfn main() {}\n```", md)
	})

	t.Run("unordered list items on consecutive lines", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<ul><li>A</li><li>B</li></ul>`)

		assert.Equal(t, "- A\n- B", md)
	})

	t.Run("table with header separator", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<table>
<thead><tr><th>Name</th><th>Age</th></tr></thead>
<tbody><tr><td>Ann</td><td>30</td></tr></tbody>
</table>`)

		lines := strings.Split(md, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "| Name | Age |", lines[0])
		assert.Contains(t, lines[1], "---|---")
		assert.Equal(t, "| Ann | 30 |", lines[2])
	})

	t.Run("fragment-only link becomes bare text", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<a href="#section">Section</a>`)

		assert.Equal(t, "Section", md)
	})
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("returns error for nil root", func(t *testing.T) {
		t.Parallel()

		_, err := markdown.NewConverter().Convert(nil)

		require.Error(t, err)
		assert.Equal(t, mdcopy.EINVALID, mdcopy.ErrorCode(err))
	})

	t.Run("does not modify the input tree", func(t *testing.T) {
		t.Parallel()

		doc, err := html.Parse(strings.NewReader(`<article>
<h2>Usage</h2>
<pre><code class="language-go">x := 1<button>Copy</button></code></pre>
<ul><li>one<ul><li>two</li></ul></li></ul>
<table><tr><td>a</td></tr></table>
<a href="#top">top</a>
</article>`))
		require.NoError(t, err)
		before := render(t, doc)

		_, err = markdown.NewConverter().Convert(doc)
		require.NoError(t, err)

		assert.Equal(t, before, render(t, doc))
	})

	t.Run("same tree converts to the same output", func(t *testing.T) {
		t.Parallel()

		src := `<h2>A</h2><p>b <em>c</em></p><ol><li>d</li></ol>`

		assert.Equal(t, convert(t, src), convert(t, src))
	})

	t.Run("matches tag names case-insensitively", func(t *testing.T) {
		t.Parallel()

		heading := &html.Node{Type: html.ElementNode, Data: "H2"}
		heading.AppendChild(&html.Node{Type: html.TextNode, Data: "Upper"})

		raw, err := markdown.NewConverter().Convert(heading)

		require.NoError(t, err)
		assert.Equal(t, "## Upper", markdown.Normalize(raw))
	})

	t.Run("unknown elements fall back to their children", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<custom-widget><p>inside</p></custom-widget><details><p>more</p></details>`)

		assert.Equal(t, "inside\n\nmore", md)
	})

	t.Run("opaque elements emit nothing", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<p>kept</p><script>alert(1)</script><style>p{}</style><svg><text>icon</text></svg><button>Click</button><nav><a href="/x">Nav</a></nav>`)

		assert.Equal(t, "kept", md)
	})

	t.Run("custom rule replaces the default one", func(t *testing.T) {
		t.Parallel()

		shout := markdown.Rule{
			Action: markdown.Wrap,
			Render: func(_ *markdown.Walker, _ *html.Node, inner string) string {
				return strings.ToUpper(inner)
			},
		}

		md := convert(t, `<p><mark>loud</mark> quiet</p>`, markdown.WithRule(atom.Mark, shout))

		assert.Equal(t, "LOUD quiet", md)
	})

	t.Run("custom rule sees the list depth", func(t *testing.T) {
		t.Parallel()

		depth := markdown.Rule{
			Action: markdown.Stop,
			Render: func(w *markdown.Walker, _ *html.Node, _ string) string {
				return strconv.Itoa(w.ListDepth())
			},
		}

		md := convert(t, `<p><mark></mark></p><ul><li>a <mark></mark><ul><li>b <mark></mark></li></ul></li></ul>`, markdown.WithRule(atom.Mark, depth))

		assert.Equal(t, "0\n\n- a 1\n  - b 2", md)
	})
}

func TestConverter_Text(t *testing.T) {
	t.Parallel()

	t.Run("keeps interior whitespace of text", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<p>two  spaces</p>`)

		assert.Equal(t, "two  spaces", md)
	})

	t.Run("keeps a single space around inline elements", func(t *testing.T) {
		t.Parallel()

		md := convert(t, "<p>Run\n  <code>go build</code>\n  to compile.</p>")

		assert.Equal(t, "Run `go build` to compile.", md)
	})

	t.Run("drops whitespace between blocks", func(t *testing.T) {
		t.Parallel()

		md := convert(t, "<div>\n  <p>one</p>\n  <p>two</p>\n</div>")

		assert.Equal(t, "one\n\ntwo", md)
	})

	t.Run("empty paragraphs contribute nothing", func(t *testing.T) {
		t.Parallel()

		md := convert(t, `<p> </p><p></p><p>x</p>`)

		assert.Equal(t, "x", md)
	})
}
