// Package fs stores exported pages on the local filesystem and reads
// saved HTML pages back from it.
package fs

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/mdcopy"
)

// URLToPath converts a page URL to a relative Markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
// A trailing slash or an index.html page becomes index.md in that
// directory. Paths that would escape the output directory are rejected.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	p := u.Path
	dir := p == "" || strings.HasSuffix(p, "/")
	p = path.Clean("/" + p)

	for seg := range strings.SplitSeq(u.Path, "/") {
		if seg == ".." {
			return "", mdcopy.Errorf(mdcopy.EINVALID, "page URL %q escapes the output directory", rawURL)
		}
	}

	p = strings.TrimPrefix(p, "/")
	switch {
	case p == "":
		return "index.md", nil
	case dir:
		return p + "/index.md", nil
	}

	ext := path.Ext(p)
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		p = strings.TrimSuffix(p, ext)
	}
	return p + ".md", nil
}
