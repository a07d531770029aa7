package mdcopy

// Framework identifies a documentation framework.
type Framework string

// Supported documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// FrameworkDetector identifies documentation frameworks from HTML.
type FrameworkDetector interface {
	// Detect analyzes HTML and returns the identified framework.
	// Returns FrameworkUnknown if the framework cannot be determined.
	Detect(html string) Framework
}

// Profile describes where a framework keeps its article body and which
// elements around it are UI chrome.
type Profile struct {
	// Name is the profile's identifier (e.g., "docusaurus", "generic").
	Name string

	// ContentSelectors are tried in order; the first one matching an
	// element wins.
	ContentSelectors []string

	// ChromeSelectors match elements that are removed from the content copy
	// before conversion.
	ChromeSelectors []string
}

// ProfileRegistry manages framework-specific profiles.
type ProfileRegistry interface {
	// Get returns the profile for a specific framework.
	// Returns nil if no profile is registered for the framework.
	Get(framework Framework) *Profile

	// Register adds a profile for a framework, replacing any existing one.
	Register(framework Framework, profile *Profile)

	// List returns all registered frameworks.
	List() []Framework
}
