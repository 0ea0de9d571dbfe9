package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/modu-ai/scaffold/internal/core/compose"
	"github.com/modu-ai/scaffold/internal/core/materialize"
	"github.com/modu-ai/scaffold/pkg/models"
)

// GenerateOptions configures a single generation.
type GenerateOptions struct {
	Selection   models.Selection      // Validated before anything is written.
	Context     models.ProjectContext // Project name, locale and module path.
	Destination string                // Target directory. Defaults to ./<ProjectName>.
	Overwrite   bool                  // Move a non-empty destination aside instead of failing.
}

// GenerateResult summarizes a generated project.
type GenerateResult struct {
	Selection   models.Selection // Selection the project was generated with.
	Destination string           // Absolute path of the project directory.
	Files       []string         // Written files, relative to Destination, sorted.
	Digest      string           // Content digest of the resolved project.
	BackupPath  string           // Absolute path of the replaced tree, if any.
}

// Generator resolves selections and writes the resulting projects to disk.
// It is safe for concurrent use as long as destinations differ.
type Generator struct {
	resolver *compose.Resolver
	logger   *slog.Logger
	newFS    func(root string) billy.Filesystem
}

// NewGenerator creates a Generator that resolves projects with resolver.
func NewGenerator(resolver *compose.Resolver, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		resolver: resolver,
		logger:   logger,
		newFS:    func(root string) billy.Filesystem { return osfs.New(root) },
	}
}

// Generate resolves opts.Selection and materializes it at opts.Destination.
// Nothing is written when the selection, the context or the composition is
// invalid.
func (g *Generator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dest := opts.Destination
	if dest == "" {
		dest = opts.Context.ProjectName
	}
	if dest == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidDestination)
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDestination, err)
	}
	parent, base := filepath.Dir(absDest), filepath.Base(absDest)
	if parent == absDest {
		return nil, fmt.Errorf("%w: %s is a filesystem root", ErrInvalidDestination, absDest)
	}

	g.logger.Info("generating project",
		"selection", opts.Selection.String(),
		"project", opts.Context.ProjectName,
		"destination", absDest,
	)

	p, err := g.resolver.Resolve(opts.Selection, opts.Context)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mopts := []materialize.Option{materialize.WithLogger(g.logger)}
	if opts.Overwrite {
		mopts = append(mopts, materialize.WithOverwrite())
	}
	res, err := materialize.New(g.newFS(parent), mopts...).Materialize(p, base)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Selection:   opts.Selection,
		Destination: absDest,
		Files:       res.Files,
		Digest:      p.Digest(),
	}
	if res.BackupPath != "" {
		result.BackupPath = filepath.Join(parent, filepath.FromSlash(res.BackupPath))
	}
	return result, nil
}
