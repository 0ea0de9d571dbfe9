package compose

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/defs"
	"github.com/modu-ai/scaffold/internal/registry"
	"github.com/modu-ai/scaffold/internal/template"
	"github.com/modu-ai/scaffold/pkg/models"
)

// Resolver composes projects from a registry. It holds no per-call state
// and is safe for concurrent use.
type Resolver struct {
	registry *registry.Registry
	logger   *slog.Logger
	ctxOpts  []template.ContextOption
}

// NewResolver creates a Resolver over reg. The optional context options are
// applied to every project before its context and selection, e.g.
// template.WithGoVersion.
func NewResolver(reg *registry.Registry, logger *slog.Logger, opts ...template.ContextOption) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		registry: reg,
		logger:   logger,
		ctxOpts:  slices.Clone(opts),
	}
}

// Resolve validates sel and pc and returns the substituted project. Nothing
// is resolved unless both are valid.
func (r *Resolver) Resolve(sel models.Selection, pc models.ProjectContext) (*Project, error) {
	if err := selection.Validate(sel); err != nil {
		return nil, err
	}
	if err := selection.ValidateContext(pc); err != nil {
		return nil, err
	}

	opts := append(slices.Clone(r.ctxOpts), template.WithProjectContext(pc), template.WithSelection(sel))
	sub := template.NewSubstituter(template.NewTemplateContext(opts...).Bindings())

	frags := r.registry.FragmentsFor(sel)

	resolved := make([]File, 0, len(frags))
	for _, f := range frags {
		p, err := sub.SubstitutePath(f.Path)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", f.Name(), err)
		}
		content, err := sub.Substitute(f.Name(), f.Content)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", f.Name(), err)
		}
		resolved = append(resolved, File{
			Path:    p,
			Content: content,
			Mode:    fileMode(f, p),
			Layer:   f.Layer,
			Source:  f.Name(),
		})
	}

	files, err := overlay(resolved)
	if err != nil {
		return nil, err
	}
	if err := checkPaths(files); err != nil {
		return nil, err
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })

	r.logger.Debug("resolved project",
		"selection", sel.String(),
		"project", pc.ProjectName,
		"fragments", len(frags),
		"files", len(files),
		"replaced", len(frags)-len(files),
	)

	return &Project{Selection: sel, Context: pc, Files: files}, nil
}

// overlay keeps, for each resolved path, the file from the highest layer.
// files must be ordered by layer ascending. A replaced file contributes
// nothing; contents are never merged. Two files from the same layer at the
// same path are a duplicate.
func overlay(files []File) ([]File, error) {
	index := make(map[string]int, len(files))
	var out []File
	for _, f := range files {
		i, ok := index[f.Path]
		if !ok {
			index[f.Path] = len(out)
			out = append(out, f)
			continue
		}
		if prev := out[i]; prev.Layer == f.Layer {
			return nil, &DuplicateResolvedPathError{
				Path:    f.Path,
				Sources: []string{prev.Source, f.Source},
				Reason:  "same path in layer " + f.Layer.String(),
			}
		}
		out[i] = f
	}
	return out, nil
}

// checkPaths rejects files that cannot be written side by side: paths
// equal under case folding and a file path that is also a directory of
// another file. Paths are already unique.
func checkPaths(files []File) error {
	byPath := make(map[string]File, len(files))
	byFold := make(map[string]File, len(files))

	for _, f := range files {
		byPath[f.Path] = f

		folded := strings.ToLower(f.Path)
		if prev, ok := byFold[folded]; ok {
			return &DuplicateResolvedPathError{
				Path:    f.Path,
				Sources: []string{prev.Source, f.Source},
				Reason:  fmt.Sprintf("differs from %s only in case", prev.Path),
			}
		}
		byFold[folded] = f
	}

	for _, f := range files {
		for dir := path.Dir(f.Path); dir != "."; dir = path.Dir(dir) {
			if prev, ok := byPath[dir]; ok {
				return &DuplicateResolvedPathError{
					Path:    dir,
					Sources: []string{prev.Source, f.Source},
					Reason:  fmt.Sprintf("file is also the parent directory of %s", f.Path),
				}
			}
		}
	}

	return nil
}

func fileMode(f registry.Fragment, p string) fs.FileMode {
	switch {
	case f.Mode != 0:
		return f.Mode
	case strings.HasSuffix(p, ".sh"):
		return defs.ExecPerm
	default:
		return defs.FilePerm
	}
}
