// Package bloom remembers which pages a batch export has already claimed.
package bloom

import (
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a concurrency-safe Bloom filter over page URLs. URLs naming the
// same page (differing only by fragment, host case, a trailing slash or an
// index.html file name) share one key.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Claim records rawURL and reports whether it was new. A false result means
// the page was (probably) claimed before.
func (f *Filter) Claim(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestAndAddString(Key(rawURL))
}

// Key normalizes rawURL to the form used for deduplication. Unparseable
// input is used as is.
func Key(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if dir, file := path.Split(u.Path); strings.EqualFold(file, "index.html") || strings.EqualFold(file, "index.htm") {
		u.Path = dir
		u.RawPath = ""
	}
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "" && u.Host != "" {
		u.Path = "/"
	}
	return u.String()
}
