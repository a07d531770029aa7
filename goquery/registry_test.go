package goquery_test

import (
	"testing"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("returns registered profile for framework", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry()
		registry.Register(mdcopy.FrameworkDocusaurus, &mdcopy.Profile{Name: "custom"})

		got := registry.Get(mdcopy.FrameworkDocusaurus)

		require.NotNil(t, got)
		assert.Equal(t, "custom", got.Name)
	})

	t.Run("returns nil for unregistered framework", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.NewRegistry().Get(mdcopy.FrameworkSphinx))
	})

	t.Run("register replaces an existing profile", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry()
		registry.Register(mdcopy.FrameworkMkDocs, &mdcopy.Profile{Name: "old"})
		registry.Register(mdcopy.FrameworkMkDocs, &mdcopy.Profile{Name: "new"})

		assert.Equal(t, "new", registry.Get(mdcopy.FrameworkMkDocs).Name)
		assert.Len(t, registry.List(), 1)
	})
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry := goquery.NewDefaultRegistry()

	assert.Equal(t, []mdcopy.Framework{
		mdcopy.FrameworkUnknown,
		mdcopy.FrameworkDocusaurus,
		mdcopy.FrameworkGitBook,
		mdcopy.FrameworkMkDocs,
		mdcopy.FrameworkNextra,
		mdcopy.FrameworkSphinx,
		mdcopy.FrameworkVitePress,
		mdcopy.FrameworkVuePress,
	}, registry.List())

	for _, framework := range registry.List() {
		profile := registry.Get(framework)
		require.NotNil(t, profile, "framework %q", framework)
		assert.NotEmpty(t, profile.Name)
		assert.NotEmpty(t, profile.ContentSelectors)
		assert.Contains(t, profile.ChromeSelectors, "button")
		assert.Contains(t, profile.ChromeSelectors, "nav")
	}
	assert.Equal(t, "generic", registry.Get(mdcopy.FrameworkUnknown).Name)
}
