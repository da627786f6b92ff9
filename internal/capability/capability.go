package capability

import (
	"github.com/Hactar-js/hactar-babel/internal/syntax"
)

// Preset identifiers as they appear in the presets list of .babelrc.
const (
	ES2015 = "es2015"
	Stage0 = "stage-0"
	React  = "react"
)

// Capability is a Babel preset together with the packages that provide it.
type Capability struct {
	// Name is the preset identifier written to .babelrc.
	Name string

	// Description is a short human-readable summary.
	Description string

	// Packages are installed, in order, before the preset is configured.
	Packages []string

	// Requires names a capability that must be detected in the same pass
	// before this one is considered. Empty means no requirement.
	Requires string

	// Detect reports whether the tree uses syntax the preset handles.
	Detect func(*syntax.Tree) bool
}

// Default returns a registry holding the built-in capabilities:
// es2015, then stage-0 and react which both require es2015.
func Default() *Registry {
	r, err := NewRegistry(
		Capability{
			Name:        ES2015,
			Description: "ES2015 syntax (arrows, classes, modules, let/const, templates)",
			Packages:    []string{"babel", "babel-preset-es2015"},
			Detect:      syntax.IsES2015,
		},
		Capability{
			Name:        Stage0,
			Description: "Experimental proposals (decorators, async/await, object spread, class properties)",
			Packages:    []string{"babel-preset-stage-0"},
			Requires:    ES2015,
			Detect:      syntax.IsStage0,
		},
		Capability{
			Name:        React,
			Description: "React and JSX",
			Packages:    []string{"babel-preset-react"},
			Requires:    ES2015,
			Detect:      syntax.IsReact,
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}
