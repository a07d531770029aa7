package markdown

import (
	"regexp"
	"strings"
)

var (
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw converter output: trailing whitespace is stripped from
// every line, runs of three or more newlines become exactly two, and the
// document is trimmed.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = trailingSpace.ReplaceAllString(s, "")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Assemble normalizes body and puts a level-one heading with title in front
// of it. The heading is not repeated when body already opens with it, which
// is the usual case when the title came from the content's own h1.
func Assemble(title, body string) string {
	body = Normalize(body)

	title = flatten(title)
	if title == "" {
		return body
	}

	heading := "# " + title
	switch {
	case body == "":
		return heading
	case body == heading, strings.HasPrefix(body, heading+"\n"):
		return body
	}
	return heading + "\n\n" + body
}
