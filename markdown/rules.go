package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Action tells the Walker what to do with an element's children.
type Action int

const (
	// Stop hands the element to the rule untouched; the rule converts
	// whatever part of the subtree it needs itself.
	Stop Action = iota
	// Wrap converts the children first and passes the result to the rule.
	Wrap
	// Skip drops the element and its whole subtree.
	Skip
)

// RenderFunc produces the Markdown for n. inner holds the converted children
// for Wrap rules and is empty otherwise.
type RenderFunc func(w *Walker, n *html.Node, inner string) string

// Rule is the serialization behaviour for one element kind.
type Rule struct {
	Action Action
	Render RenderFunc
}

// Rules maps element kinds to their rule.
type Rules map[atom.Atom]Rule

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() Rules {
	rules := Rules{
		atom.P:          {Action: Wrap, Render: renderParagraph},
		atom.Pre:        {Action: Stop, Render: renderPre},
		atom.Code:       {Action: Stop, Render: renderCode},
		atom.Kbd:        {Action: Stop, Render: renderCode},
		atom.Samp:       {Action: Stop, Render: renderCode},
		atom.Ul:         {Action: Stop, Render: renderList},
		atom.Ol:         {Action: Stop, Render: renderList},
		atom.Table:      {Action: Stop, Render: renderTable},
		atom.A:          {Action: Wrap, Render: renderLink},
		atom.Img:        {Action: Stop, Render: renderImage},
		atom.Strong:     {Action: Stop, Render: emphasis("**")},
		atom.B:          {Action: Stop, Render: emphasis("**")},
		atom.Em:         {Action: Stop, Render: emphasis("*")},
		atom.I:          {Action: Stop, Render: emphasis("*")},
		atom.Del:        {Action: Stop, Render: emphasis("~~")},
		atom.S:          {Action: Stop, Render: emphasis("~~")},
		atom.Strike:     {Action: Stop, Render: emphasis("~~")},
		atom.Br:         {Action: Stop, Render: renderBreak},
		atom.Hr:         {Action: Stop, Render: renderRule},
		atom.Blockquote: {Action: Wrap, Render: renderBlockquote},
		atom.Summary:    {Action: Wrap, Render: renderSummary},
		atom.Figcaption: {Action: Wrap, Render: renderParagraph},
	}

	for _, a := range []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6} {
		rules[a] = Rule{Action: Stop, Render: renderHeading}
	}

	// Elements with no content equivalent.
	for _, a := range []atom.Atom{
		atom.Head, atom.Title, atom.Meta, atom.Link, atom.Base,
		atom.Script, atom.Style, atom.Noscript, atom.Template,
		atom.Svg, atom.Math, atom.Canvas, atom.Video, atom.Audio,
		atom.Iframe, atom.Object, atom.Embed,
		atom.Button, atom.Input, atom.Select, atom.Textarea, atom.Nav,
	} {
		rules[a] = Rule{Action: Skip}
	}

	return rules
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

func renderHeading(_ *Walker, n *html.Node, _ string) string {
	text := flatten(textContent(n))
	if text == "" {
		return ""
	}
	return block(strings.Repeat("#", headingLevels[kind(n)]) + " " + text)
}

func renderParagraph(_ *Walker, _ *html.Node, inner string) string {
	text := strings.TrimSpace(inner)
	if text == "" {
		return ""
	}
	return block(text)
}

func renderPre(_ *Walker, n *html.Node, _ string) string {
	src := n
	lang := ""
	if code := findElement(n, atom.Code); code != nil {
		src = code
		lang = languageHint(code)
	}
	if lang == "" {
		lang = languageHint(n)
	}

	text := strings.TrimRight(codeText(src), "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}

	fence := strings.Repeat("`", max(3, longestRun(text, '`')+1))
	return block(fence + lang + "\n" + text + "\n" + fence)
}

func renderCode(_ *Walker, n *html.Node, _ string) string {
	text := codeText(n)
	if n.Parent != nil && kind(n.Parent) == atom.Pre {
		return text
	}

	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return ""
	}

	run := longestRun(text, '`')
	if run == 0 {
		return "`" + text + "`"
	}
	delim := strings.Repeat("`", run+1)
	return delim + " " + text + " " + delim
}

func renderList(w *Walker, n *html.Node, _ string) string {
	nested := w.lists > 0
	indent := strings.Repeat("  ", w.lists)
	ordered := kind(n) == atom.Ol
	number := 1
	if start, err := strconv.Atoi(attr(n, "start")); err == nil {
		number = start
	}

	// Lists below this one report to their own items, not to ours.
	owner := w.sublists
	w.sublists = nil
	w.lists++
	defer func() {
		w.lists--
		w.sublists = owner
	}()

	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch kind(c) {
		case atom.Li:
			marker := "-"
			if ordered {
				marker = strconv.Itoa(number) + "."
				number++
			}
			items = append(items, listItem(w, c, indent, marker))
		case atom.Ul, atom.Ol:
			// A list directly inside a list belongs to the previous item.
			if s := strings.Trim(w.Node(c), "\n"); s != "" {
				items = append(items, s)
			}
		}
	}

	if len(items) == 0 {
		return ""
	}
	body := strings.Join(items, "\n")
	if owner != nil {
		*owner = append(*owner, body)
		return ""
	}
	if nested {
		return "\n" + body + "\n"
	}
	return block(body)
}

// listItem renders one li: its inline content after the marker, continuation
// lines aligned under the content, nested lists after it. Lists anywhere
// below the li, wrapped or not, are nested lists: they carry their own
// indentation and are not re-prefixed.
func listItem(w *Walker, li *html.Node, indent, marker string) string {
	var sublists []string
	w.sublists = &sublists
	inline := w.Children(li)
	w.sublists = nil

	var b strings.Builder
	b.WriteString(indent + marker)
	continuation := indent + strings.Repeat(" ", len(marker)+1)
	first := true
	fence := ""
	for _, line := range strings.Split(strings.TrimSpace(inline), "\n") {
		trimmed := strings.TrimSpace(line)
		if fence == "" && trimmed == "" {
			continue
		}
		switch {
		case first:
			b.WriteString(" " + line)
			first = false
		case trimmed == "":
			// Blank lines inside a code block are part of the code.
			b.WriteString("\n")
		default:
			b.WriteString("\n" + continuation + line)
		}
		fence = trackFence(fence, trimmed)
	}
	for _, s := range sublists {
		b.WriteString("\n" + s)
	}
	return b.String()
}

// trackFence returns the fence that is open after line, given the fence
// open before it ("" for none).
func trackFence(open, line string) string {
	run := line[:len(line)-len(strings.TrimLeft(line, "`"))]
	switch {
	case open == "" && len(run) >= 3:
		return run
	case open != "" && run == open && strings.TrimSpace(line[len(run):]) == "":
		return ""
	}
	return open
}

var cellBreaks = regexp.MustCompile(`\s*\n\s*`)

func renderTable(w *Walker, n *html.Node, _ string) string {
	var lines []string
	for _, tr := range tableRows(n) {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (kind(c) != atom.Td && kind(c) != atom.Th) {
				continue
			}
			cell := strings.TrimSpace(w.Children(c))
			cell = cellBreaks.ReplaceAllString(cell, " ")
			cells = append(cells, strings.ReplaceAll(cell, "|", `\|`))
		}
		if len(cells) == 0 {
			continue
		}

		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if len(lines) == 1 {
			lines = append(lines, "|"+strings.Repeat("---|", len(cells)))
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return block(strings.Join(lines, "\n"))
}

// tableRows returns the rows of table in document order, looking through
// thead, tbody and tfoot but not into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch kind(c) {
			case atom.Tr:
				rows = append(rows, c)
			case atom.Table:
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

func renderLink(w *Walker, n *html.Node, inner string) string {
	text := strings.TrimSpace(inner)
	if text == "" {
		return ""
	}

	href := strings.TrimSpace(attr(n, "href"))
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return inner
	}

	lead, trail := "", ""
	if strings.TrimLeft(inner, " \t\n") != inner {
		lead = " "
	}
	if strings.TrimRight(inner, " \t\n") != inner {
		trail = " "
	}
	return lead + "[" + text + "](" + w.conv.resolve(href) + ")" + trail
}

func renderImage(w *Walker, n *html.Node, _ string) string {
	src := strings.TrimSpace(attr(n, "src"))
	if src == "" {
		return ""
	}
	alt := flatten(attr(n, "alt"))
	return "![" + alt + "](" + w.conv.resolve(src) + ")"
}

// emphasis wraps the element's flattened text in marker. Markup inside the
// element is not converted. Whitespace at the element's edges stays outside
// the markers.
func emphasis(marker string) RenderFunc {
	return func(_ *Walker, n *html.Node, _ string) string {
		raw := textContent(n)
		text := strings.TrimSpace(raw)
		if text == "" {
			return edgeSpace(raw)
		}
		lead, trail := "", ""
		if strings.TrimLeft(raw, " \t\n") != raw {
			lead = " "
		}
		if strings.TrimRight(raw, " \t\n") != raw {
			trail = " "
		}
		return lead + marker + text + marker + trail
	}
}

func renderBreak(*Walker, *html.Node, string) string {
	return "\n"
}

func renderRule(*Walker, *html.Node, string) string {
	return block("---")
}

func renderBlockquote(_ *Walker, _ *html.Node, inner string) string {
	text := Normalize(inner)
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return block(strings.Join(lines, "\n"))
}

func renderSummary(_ *Walker, _ *html.Node, inner string) string {
	text := flatten(inner)
	if text == "" {
		return ""
	}
	return block("**" + text + "**")
}

// block surrounds s with blank lines.
func block(s string) string {
	return "\n\n" + s + "\n\n"
}
