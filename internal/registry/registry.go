package registry

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/defs"
	"github.com/modu-ai/scaffold/pkg/models"
)

// catalogFile is the on-disk shape of catalog.yaml.
type catalogFile struct {
	Fragments []catalogEntry `yaml:"fragments"`
}

type catalogEntry struct {
	Path    string    `yaml:"path"`
	Source  string    `yaml:"source"`
	Content *string   `yaml:"content"`
	Layer   string    `yaml:"layer"`
	Mode    string    `yaml:"mode"`
	When    Predicate `yaml:"when"`
}

// Registry is the immutable set of template fragments. It is safe for
// concurrent use.
type Registry struct {
	fragments []Fragment
}

// Load reads catalog.yaml from the root of fsys, loads every fragment source
// it names, and checks the result for consistency.
func Load(fsys fs.FS) (*Registry, error) {
	data, err := fs.ReadFile(fsys, defs.CatalogYAML)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, defs.CatalogYAML, err)
	}

	var cat catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidCatalog, defs.CatalogYAML, err)
	}

	frags := make([]Fragment, 0, len(cat.Fragments))
	for i, e := range cat.Fragments {
		f, err := e.fragment(fsys)
		if err != nil {
			return nil, &CatalogError{Index: i, Path: e.Path, Reason: err.Error()}
		}
		frags = append(frags, f)
	}

	return New(frags)
}

func (e catalogEntry) fragment(fsys fs.FS) (Fragment, error) {
	layer, err := ParseLayer(e.Layer)
	if err != nil {
		return Fragment{}, err
	}

	f := Fragment{Path: e.Path, Source: e.Source, Layer: layer, When: e.When}

	switch {
	case e.Source != "" && e.Content != nil:
		return Fragment{}, errors.New("source and content are mutually exclusive")
	case e.Source != "":
		b, err := fs.ReadFile(fsys, e.Source)
		if err != nil {
			return Fragment{}, fmt.Errorf("source %s: %w", e.Source, err)
		}
		f.Content = string(b)
	case e.Content != nil:
		f.Content = *e.Content
	}

	if e.Mode != "" {
		m, err := strconv.ParseUint(e.Mode, 8, 32)
		if err != nil || m > 0o777 {
			return Fragment{}, fmt.Errorf("mode %q is not an octal permission", e.Mode)
		}
		f.Mode = fs.FileMode(m)
	}

	return f, nil
}

// New builds a registry from fragments and runs the same consistency check
// as Load.
func New(frags []Fragment) (*Registry, error) {
	frags = slices.Clone(frags)
	valid := selection.All()

	for i, f := range frags {
		if reason := checkFragment(f); reason != "" {
			return nil, &CatalogError{Index: i, Path: f.Path, Reason: reason}
		}
		if !slices.ContainsFunc(valid, f.Applies) {
			return nil, &CatalogError{Index: i, Path: f.Path, Reason: "applies to no valid selection"}
		}
	}

	if err := checkConflicts(frags, valid); err != nil {
		return nil, err
	}

	return &Registry{fragments: frags}, nil
}

// checkFragment returns why f is malformed, or "" if it is not.
func checkFragment(f Fragment) string {
	if !f.Layer.IsValid() {
		return fmt.Sprintf("unknown layer %s", f.Layer)
	}
	for _, v := range f.When.Families {
		if !v.IsValid() {
			return fmt.Sprintf("unknown template family %q", v)
		}
	}
	for _, v := range f.When.Engines {
		if !v.IsValid() {
			return fmt.Sprintf("unknown database engine %q", v)
		}
	}
	for _, v := range f.When.Libraries {
		if !v.IsValid() {
			return fmt.Sprintf("unknown database library %q", v)
		}
	}
	return checkPattern(f.Path)
}

// checkPattern rejects path patterns that could never resolve to a safe
// relative path.
func checkPattern(p string) string {
	switch {
	case strings.TrimSpace(p) == "":
		return "empty path"
	case strings.Contains(p, "\\"):
		return "path must use forward slashes"
	case strings.HasPrefix(p, "/") || (len(p) >= 2 && p[1] == ':'):
		return "path must be relative"
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "":
			return "path has an empty segment"
		case ".", "..":
			return "path must not contain . or .. segments"
		}
	}
	return ""
}

// checkConflicts finds two fragments with the same pattern and layer that
// both apply to some valid selection.
func checkConflicts(frags []Fragment, valid []models.Selection) error {
	type key struct {
		path  string
		layer Layer
	}
	groups := make(map[key][]Fragment)
	var order []key
	for _, f := range frags {
		k := key{f.Path, f.Layer}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}

	for _, k := range order {
		g := groups[k]
		for i := range g {
			for j := i + 1; j < len(g); j++ {
				for _, sel := range valid {
					if g[i].Applies(sel) && g[j].Applies(sel) {
						return &ConflictError{
							Path:      k.path,
							Layer:     k.layer,
							First:     g[i].Name(),
							Second:    g[j].Name(),
							Selection: sel,
						}
					}
				}
			}
		}
	}
	return nil
}

// FragmentsFor returns the fragments that apply to sel, ordered by layer
// and then by path pattern. Catalog order breaks remaining ties.
func (r *Registry) FragmentsFor(sel models.Selection) []Fragment {
	var out []Fragment
	for _, f := range r.fragments {
		if f.Applies(sel) {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(a, b Fragment) int {
		if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return out
}

// Fragments returns every fragment in catalog order.
func (r *Registry) Fragments() []Fragment {
	return slices.Clone(r.fragments)
}

// Len returns the number of fragments.
func (r *Registry) Len() int {
	return len(r.fragments)
}
