package markdown

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// textContent concatenates the text of every descendant of n, like the DOM
// property of the same name.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// flatten collapses all whitespace in s to single spaces so that it fits on
// one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// codeText returns the source text of a code element. Highlighting wrappers
// contribute only their text, <br> becomes a newline and buttons (copy,
// word-wrap toggles) are ignored.
func codeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch kind(n) {
			case atom.Br:
				b.WriteByte('\n')
				return
			case atom.Button, atom.Script, atom.Style:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findElement returns the first descendant of n of kind a in document order.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if kind(c) == a {
			return c
		}
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// languageHint returns X for the first "language-X" class on n, or "".
func languageHint(n *html.Node) string {
	for _, class := range strings.Fields(attr(n, "class")) {
		lang, ok := strings.CutPrefix(class, "language-")
		if ok && lang != "" && !strings.ContainsRune(lang, '`') {
			return lang
		}
	}
	return ""
}

// longestRun returns the length of the longest run of r in s.
func longestRun(s string, r rune) int {
	longest, current := 0, 0
	for _, c := range s {
		if c != r {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
