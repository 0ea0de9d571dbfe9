// Package registry holds the closed set of template fragments and selects
// the ones that apply to a selection.
package registry

import (
	"fmt"
	"io/fs"
	"slices"

	"github.com/modu-ai/scaffold/pkg/models"
)

// Layer orders fragments that target the same path. A higher layer replaces
// a lower one entirely.
type Layer int

// Layers in ascending precedence.
const (
	LayerBase Layer = iota
	LayerEngine
	LayerLibrary
)

var layerNames = []string{"base", "engine", "library"}

// String returns the catalog name of the layer.
func (l Layer) String() string {
	if l.IsValid() {
		return layerNames[l]
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// IsValid reports whether l is a known layer.
func (l Layer) IsValid() bool {
	return l >= LayerBase && l <= LayerLibrary
}

// ParseLayer converts a catalog layer name.
func ParseLayer(s string) (Layer, error) {
	if i := slices.Index(layerNames, s); i >= 0 {
		return Layer(i), nil
	}
	return 0, fmt.Errorf("unknown layer %q (want one of base, engine, library)", s)
}

// Predicate restricts a fragment to selections. An empty list matches every
// value of its axis.
type Predicate struct {
	Families  []models.TemplateFamily `yaml:"families,omitempty"`
	Engines   []models.DBEngine       `yaml:"engines,omitempty"`
	Libraries []models.DBLibrary      `yaml:"libraries,omitempty"`
}

// Matches reports whether sel satisfies every axis of the predicate.
func (p Predicate) Matches(sel models.Selection) bool {
	return matchAxis(p.Families, sel.TemplateFamily) &&
		matchAxis(p.Engines, sel.DBEngine) &&
		matchAxis(p.Libraries, sel.DBLibrary)
}

func matchAxis[T comparable](allowed []T, v T) bool {
	return len(allowed) == 0 || slices.Contains(allowed, v)
}

// Fragment is one piece of a project template: a path pattern, its content
// and the selections it applies to. Fragments are read-only once loaded.
type Fragment struct {
	// Path is the path pattern; it may contain placeholders.
	Path string
	// Source names the catalog file the content came from, or is empty for
	// inline content.
	Source string
	// Content is the unsubstituted body.
	Content string
	Layer   Layer
	// Mode is the file mode of the materialized file; zero means the default.
	Mode fs.FileMode
	When Predicate
}

// Applies reports whether the fragment contributes to sel.
func (f Fragment) Applies(sel models.Selection) bool {
	return f.When.Matches(sel)
}

// Name identifies the fragment in errors and logs.
func (f Fragment) Name() string {
	if f.Source != "" {
		return f.Source
	}
	return "inline:" + f.Path
}
