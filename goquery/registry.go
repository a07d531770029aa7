package goquery

import (
	"slices"

	"github.com/fwojciec/mdcopy"
)

var _ mdcopy.ProfileRegistry = (*Registry)(nil)

// Registry maps frameworks to their profiles.
type Registry struct {
	profiles map[mdcopy.Framework]*mdcopy.Profile
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[mdcopy.Framework]*mdcopy.Profile),
	}
}

// NewDefaultRegistry returns a Registry holding the built-in profile of
// every supported framework, with the generic profile registered under
// FrameworkUnknown.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(mdcopy.FrameworkUnknown, GenericProfile())
	r.Register(mdcopy.FrameworkDocusaurus, DocusaurusProfile())
	r.Register(mdcopy.FrameworkMkDocs, MkDocsProfile())
	r.Register(mdcopy.FrameworkSphinx, SphinxProfile())
	r.Register(mdcopy.FrameworkVuePress, VuePressProfile())
	r.Register(mdcopy.FrameworkVitePress, VitePressProfile())
	r.Register(mdcopy.FrameworkGitBook, GitBookProfile())
	r.Register(mdcopy.FrameworkNextra, NextraProfile())
	return r
}

// Get returns the profile for a specific framework.
// Returns nil if no profile is registered for the framework.
func (r *Registry) Get(framework mdcopy.Framework) *mdcopy.Profile {
	return r.profiles[framework]
}

// Register adds a profile for a framework.
// If a profile is already registered for the framework, it is replaced.
func (r *Registry) Register(framework mdcopy.Framework, profile *mdcopy.Profile) {
	r.profiles[framework] = profile
}

// List returns all registered frameworks in sorted order.
func (r *Registry) List() []mdcopy.Framework {
	frameworks := make([]mdcopy.Framework, 0, len(r.profiles))
	for f := range r.profiles {
		frameworks = append(frameworks, f)
	}
	slices.Sort(frameworks)
	return frameworks
}
