package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/mdcopy"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements mdcopy.PageStore at compile time.
var _ mdcopy.PageStore = (*FileStore)(nil)

// FileStore implements mdcopy.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
// Two URLs that map to the same file (/docs/ and /docs/index.html) are a
// conflict: the first one saved keeps the file.
type FileStore struct {
	baseDir string
	name    string
	now     func() time.Time

	mu    sync.Mutex
	files map[string]string // relative path -> page URL
}

// StoreOption configures a FileStore.
type StoreOption func(*FileStore)

// WithNow sets the clock used for the exported date in frontmatter.
func WithNow(now func() time.Time) StoreOption {
	return func(s *FileStore) {
		s.now = now
	}
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, opts ...StoreOption) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *FileStore) Save(ctx context.Context, page *mdcopy.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}
	if err := s.claim(relPath, page.URL); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatPage(page, s.now())
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// claim reserves relPath for pageURL for the rest of the export.
func (s *FileStore) claim(relPath, pageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string]string)
	}
	if prev, ok := s.files[relPath]; ok && prev != pageURL {
		return mdcopy.Errorf(mdcopy.ECONFLICT, "%s and %s both map to %s", prev, pageURL, relPath)
	}
	s.files[relPath] = pageURL
	return nil
}

func (s *FileStore) reset() {
	s.mu.Lock()
	s.files = nil
	s.mu.Unlock()
}

// frontmatter is the YAML header written above each page.
type frontmatter struct {
	Source   string `yaml:"source"`
	Title    string `yaml:"title,omitempty"`
	Hash     string `yaml:"hash,omitempty"`
	Exported string `yaml:"exported"`
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *mdcopy.Page, exported time.Time) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:   page.URL,
		Title:    page.Title,
		Hash:     page.Hash,
		Exported: exported.Format(time.DateOnly),
	})
	if err != nil {
		return "", fmt.Errorf("frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	if !strings.HasSuffix(page.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *FileStore) Commit() error {
	s.reset()

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) Abort() error {
	s.reset()
	return os.RemoveAll(s.tempDir())
}
