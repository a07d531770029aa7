package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html/charset"
)

// Ensure Fetcher implements mdcopy.Fetcher at compile time.
var _ mdcopy.Fetcher = (*Fetcher)(nil)

// Fetcher reads saved HTML pages from disk. It accepts file:// URLs and
// plain paths.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch reads the page at target and returns it decoded to UTF-8.
// A missing file is reported as ENOTFOUND.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := FilePath(target)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", mdcopy.Errorf(mdcopy.ENOTFOUND, "file %s does not exist", path)
	} else if err != nil {
		return "", err
	}

	r, err := charset.NewReader(bytes.NewReader(raw), "text/html")
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

// IsLocal reports whether target names a local file rather than a web page.
func IsLocal(target string) bool {
	if strings.HasPrefix(target, "file://") {
		return true
	}
	u, err := url.Parse(target)
	return err != nil || u.Scheme == "" || len(u.Scheme) == 1 // C:\ on Windows
}

// FilePath returns the filesystem path named by a file:// URL or a plain path.
func FilePath(target string) (string, error) {
	if !strings.HasPrefix(target, "file://") {
		return filepath.Clean(target), nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "invalid file URL %q: %v", target, err)
	}
	return filepath.FromSlash(u.Path), nil
}

// FileURL returns the file:// URL of a local path, made absolute.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
