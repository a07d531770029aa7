package mock

import "github.com/fwojciec/mdcopy"

var (
	_ mdcopy.FrameworkDetector = (*FrameworkDetector)(nil)
	_ mdcopy.ProfileRegistry   = (*ProfileRegistry)(nil)
)

// FrameworkDetector is a mock implementation of mdcopy.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) mdcopy.Framework
}

func (d *FrameworkDetector) Detect(html string) mdcopy.Framework {
	return d.DetectFn(html)
}

// ProfileRegistry is a mock implementation of mdcopy.ProfileRegistry.
type ProfileRegistry struct {
	GetFn      func(framework mdcopy.Framework) *mdcopy.Profile
	RegisterFn func(framework mdcopy.Framework, profile *mdcopy.Profile)
	ListFn     func() []mdcopy.Framework
}

func (r *ProfileRegistry) Get(framework mdcopy.Framework) *mdcopy.Profile {
	return r.GetFn(framework)
}

func (r *ProfileRegistry) Register(framework mdcopy.Framework, profile *mdcopy.Profile) {
	r.RegisterFn(framework, profile)
}

func (r *ProfileRegistry) List() []mdcopy.Framework {
	return r.ListFn()
}
