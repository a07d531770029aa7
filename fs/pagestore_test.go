package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Story: Atomic File Storage
// The store uses temp directory for atomic updates

func TestFileStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	// When I save a page
	err := store.Save(context.Background(), &mdcopy.Page{
		URL:     "https://example.com/docs/api",
		Title:   "API Reference",
		Content: "# API\n\nWelcome to the API.",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the temp directory (not final)
	tempPath := filepath.Join(base, "output.tmp", "docs", "api.md")
	_, err = os.Stat(tempPath)
	require.NoError(t, err, "file should exist in temp directory")

	// And final directory does not exist yet
	finalPath := filepath.Join(base, "output", "docs", "api.md")
	_, err = os.Stat(finalPath)
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestFileStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with saved pages
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &mdcopy.Page{
		URL:     "https://example.com/a",
		Title:   "A",
		Content: "# A",
	})
	require.NoError(t, err)

	// When I commit
	err = store.Commit()

	// Then no error occurs
	require.NoError(t, err)

	// And final directory exists with content
	finalPath := filepath.Join(base, "output", "a.md")
	_, err = os.Stat(finalPath)
	require.NoError(t, err, "file should exist in final directory after commit")

	// And temp directory is gone
	tempDir := filepath.Join(base, "output.tmp")
	_, err = os.Stat(tempDir)
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestFileStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store with saved pages
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &mdcopy.Page{
		URL:     "https://example.com/a",
		Title:   "A",
		Content: "# A",
	})
	require.NoError(t, err)

	// When I abort
	err = store.Abort()

	// Then no error occurs
	require.NoError(t, err)

	// And temp directory is cleaned up
	tempDir := filepath.Join(base, "output.tmp")
	_, err = os.Stat(tempDir)
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")

	// And final directory doesn't exist
	finalDir := filepath.Join(base, "output")
	_, err = os.Stat(finalDir)
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestFileStore_IncludesFrontmatter(t *testing.T) {
	t.Parallel()

	// Given a page with metadata
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &mdcopy.Page{
		URL:     "https://example.com/intro",
		Title:   "Introduction",
		Content: "# Welcome",
	})
	require.NoError(t, err)
	err = store.Commit()
	require.NoError(t, err)

	// When I read the file
	content, err := os.ReadFile(filepath.Join(base, "output", "intro.md"))
	require.NoError(t, err)

	// Then it has YAML frontmatter
	assert.Contains(t, string(content), "---")
	assert.Contains(t, string(content), "source: https://example.com/intro")
	assert.Contains(t, string(content), "title: Introduction")
	// And content follows the frontmatter
	assert.Contains(t, string(content), "# Welcome")
}

func TestFileStore_PreservesURLPathStructure(t *testing.T) {
	t.Parallel()

	// Given pages with nested paths
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &mdcopy.Page{
		URL:     "https://example.com/docs/api/users",
		Title:   "Users API",
		Content: "# Users",
	})
	require.NoError(t, err)
	err = store.Commit()
	require.NoError(t, err)

	// Then nested directories are created
	expectedPath := filepath.Join(base, "output", "docs", "api", "users.md")
	_, err = os.Stat(expectedPath)
	require.NoError(t, err, "nested path structure should be preserved")
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	// Given a store
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	// When I try to save a page with path traversal
	err := store.Save(context.Background(), &mdcopy.Page{
		URL:     "https://example.com/../../../etc/passwd",
		Title:   "Malicious",
		Content: "bad content",
	})

	// Then an error is returned
	require.Error(t, err, "path traversal should be rejected")
	assert.Equal(t, mdcopy.EINVALID, mdcopy.ErrorCode(err))

	// And nothing is written outside the store
	_, err = os.Stat(filepath.Join(base, "etc"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CommitReplacesPreviousExport(t *testing.T) {
	t.Parallel()

	// Given a previous export with a page that no longer exists
	base := t.TempDir()
	old := fs.NewFileStore(base, "output")
	require.NoError(t, old.Save(context.Background(), &mdcopy.Page{URL: "https://example.com/removed", Content: "# Gone"}))
	require.NoError(t, old.Commit())

	// When a new export is committed
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &mdcopy.Page{URL: "https://example.com/kept", Content: "# Kept"}))
	require.NoError(t, store.Commit())

	// Then only the new pages remain
	_, err := os.Stat(filepath.Join(base, "output", "kept.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output", "removed.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SaveHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fs.NewFileStore(t.TempDir(), "output").Save(ctx, &mdcopy.Page{URL: "https://example.com/a"})

	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatPage(t *testing.T) {
	t.Parallel()

	exported := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("writes frontmatter above the content", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatPage(&mdcopy.Page{
			URL:     "https://example.com/intro",
			Title:   "Introduction",
			Content: "# Introduction\n\nHello.\n",
			Hash:    "00000000deadbeef",
		}, exported)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "---\nsource: https://example.com/intro\ntitle: Introduction\nhash: 00000000deadbeef\n"))
		assert.Contains(t, got, "2026-03-14")
		assert.True(t, strings.HasSuffix(got, "\n---\n\n# Introduction\n\nHello.\n"))
	})

	t.Run("quotes titles that are not plain YAML scalars", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FormatPage(&mdcopy.Page{
			URL:     "https://example.com/faq",
			Title:   "FAQ: #1 question",
			Content: "body",
		}, exported)

		require.NoError(t, err)
		header, body, ok := strings.Cut(strings.TrimPrefix(got, "---\n"), "---\n\n")
		require.True(t, ok)
		var meta map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(header), &meta))
		assert.Equal(t, "FAQ: #1 question", meta["title"])
		assert.Equal(t, "https://example.com/faq", meta["source"])
		assert.Equal(t, "body\n", body)
	})
}

func TestFileStore_RejectsSecondPageForSameFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &mdcopy.Page{URL: "https://example.com/docs/", Content: "# First"}))
	err := store.Save(ctx, &mdcopy.Page{URL: "https://example.com/docs/index.html", Content: "# Second"})

	assert.Equal(t, mdcopy.ECONFLICT, mdcopy.ErrorCode(err))
	assert.Contains(t, mdcopy.ErrorMessage(err), "docs/index.md")

	// Saving the same URL again rewrites its own file.
	require.NoError(t, store.Save(ctx, &mdcopy.Page{URL: "https://example.com/docs/", Content: "# First again"}))
	require.NoError(t, store.Commit())

	data, err := os.ReadFile(filepath.Join(base, "output", "docs", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# First again")
}
