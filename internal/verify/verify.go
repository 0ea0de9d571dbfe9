// Package verify checks generated project trees. It confirms that a tree
// matches the selection recorded in its .scaffold.yaml: the build manifest
// declares the right module and requirements, Go sources parse and are
// gofumpt-formatted, no placeholder survived substitution and, for sqlite
// projects, the migrations apply to a fresh database.
package verify

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go/scanner"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
	"mvdan.cc/gofumpt/format"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/defs"
	"github.com/modu-ai/scaffold/internal/template"
	"github.com/modu-ai/scaffold/pkg/models"
)

// ErrNoManifest indicates the tree has no readable .scaffold.yaml.
var ErrNoManifest = errors.New("no scaffold manifest")

// Severity levels for Issue classification.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names identify which check produced an Issue.
const (
	RuleManifest    = "manifest"
	RuleGoMod       = "gomod"
	RuleFormat      = "format"
	RulePlaceholder = "placeholder"
	RuleMigrations  = "migrations"
)

// Issue is a single finding in a generated tree.
type Issue struct {
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Rule     string `json:"rule"`
}

func (i Issue) String() string {
	loc := i.File
	if i.Line > 0 {
		loc = fmt.Sprintf("%s:%d", i.File, i.Line)
	}
	return fmt.Sprintf("%s: %s [%s]", loc, i.Message, i.Rule)
}

// Manifest is the content of .scaffold.yaml.
type Manifest struct {
	Generator string `yaml:"generator"`

	models.ProjectContext `yaml:",inline"`
	models.Selection      `yaml:",inline"`
}

// Report is the result of checking one tree.
type Report struct {
	Dir      string   `json:"dir"`
	Manifest Manifest `json:"manifest"`
	Files    int      `json:"files"`
	Issues   []Issue  `json:"issues"`
}

// Passed reports whether the tree has no error-level issues.
func (r *Report) Passed() bool {
	return len(r.Problems()) == 0
}

// Problems returns the error-level issues.
func (r *Report) Problems() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning-level issues.
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(severity string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Severity == severity {
			out = append(out, is)
		}
	}
	return out
}

func (r *Report) add(file, severity, rule, msg string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		File:     file,
		Severity: severity,
		Message:  fmt.Sprintf(msg, args...),
		Rule:     rule,
	})
}

// Checker verifies generated trees.
type Checker struct {
	logger *slog.Logger
}

// NewChecker creates a Checker. A nil logger discards output.
func NewChecker(logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{logger: logger}
}

// Check verifies the generated project rooted at dir.
func (c *Checker) Check(ctx context.Context, dir string) (*Report, error) {
	r, err := c.CheckFS(ctx, os.DirFS(dir))
	if r != nil {
		r.Dir = dir
	}
	return r, err
}

// CheckFS verifies the generated project rooted at fsys. The error is
// non-nil only when the tree cannot be inspected at all; findings are
// reported as issues.
func (c *Checker) CheckFS(ctx context.Context, fsys fs.FS) (*Report, error) {
	data, err := fs.ReadFile(fsys, defs.ScaffoldYAML)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoManifest, err)
	}

	r := &Report{}
	if err := yaml.Unmarshal(data, &r.Manifest); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrNoManifest, defs.ScaffoldYAML, err)
	}

	sel := r.Manifest.Selection
	selOK := true
	if err := selection.Validate(sel); err != nil {
		r.add(defs.ScaffoldYAML, SeverityError, RuleManifest, "%v", err)
		selOK = false
	}

	files, err := listFiles(fsys)
	if err != nil {
		return nil, err
	}
	r.Files = len(files)

	c.checkGoMod(fsys, r, selOK)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		if m := template.FindUnresolved(content); m != "" {
			r.add(name, SeverityError, RulePlaceholder, "unresolved placeholder %s", m)
		}
		if strings.HasSuffix(name, ".go") {
			checkFormat(name, content, r.Manifest.EffectiveModulePath(), r)
		}
	}

	if selOK {
		c.checkMigrations(ctx, fsys, files, sel, r)
	}

	c.logger.Debug("checked project",
		"project", r.Manifest.ProjectName,
		"selection", sel.String(),
		"files", r.Files,
		"issues", len(r.Issues),
	)
	return r, nil
}

func listFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project: %w", err)
	}
	slices.Sort(files)
	return files, nil
}

func (c *Checker) checkGoMod(fsys fs.FS, r *Report, selOK bool) {
	data, err := fs.ReadFile(fsys, defs.GoMod)
	if err != nil {
		r.add(defs.GoMod, SeverityError, RuleGoMod, "missing build manifest")
		return
	}

	mf, err := modfile.Parse(defs.GoMod, data, nil)
	if err != nil {
		r.add(defs.GoMod, SeverityError, RuleGoMod, "%v", err)
		return
	}

	want := r.Manifest.EffectiveModulePath()
	switch {
	case mf.Module == nil:
		r.add(defs.GoMod, SeverityError, RuleGoMod, "no module directive")
	case mf.Module.Mod.Path != want:
		r.add(defs.GoMod, SeverityError, RuleGoMod, "module path %q, want %q", mf.Module.Mod.Path, want)
	}
	if mf.Go == nil {
		r.add(defs.GoMod, SeverityWarning, RuleGoMod, "no go directive")
	}

	if !selOK {
		return
	}

	have := make(map[string]string, len(mf.Require))
	for _, req := range mf.Require {
		have[req.Mod.Path] = req.Mod.Version
	}
	expected := make(map[string]bool)
	for _, m := range selection.Requires(r.Manifest.Selection) {
		expected[m.Path] = true
		v, ok := have[m.Path]
		switch {
		case !ok:
			r.add(defs.GoMod, SeverityError, RuleGoMod, "missing requirement %s %s", m.Path, m.Version)
		case v != m.Version:
			r.add(defs.GoMod, SeverityWarning, RuleGoMod, "requirement %s at %s, want %s", m.Path, v, m.Version)
		}
	}
	for _, req := range mf.Require {
		if !expected[req.Mod.Path] && !req.Indirect {
			r.add(defs.GoMod, SeverityWarning, RuleGoMod, "unexpected requirement %s", req.Mod.Path)
		}
	}
}

func checkFormat(name string, content []byte, modulePath string, r *Report) {
	formatted, err := format.Source(content, format.Options{ModulePath: modulePath})
	if err != nil {
		is := Issue{File: name, Severity: SeverityError, Message: err.Error(), Rule: RuleFormat}
		var list scanner.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			is.Line = list[0].Pos.Line
			is.Message = list[0].Msg
		}
		r.Issues = append(r.Issues, is)
		return
	}
	if !bytes.Equal(formatted, content) {
		r.add(name, SeverityWarning, RuleFormat, "not gofumpt-formatted")
	}
}

// checkMigrations requires migrations for relational engines and, for
// sqlite, applies them in name order to an in-memory database.
func (c *Checker) checkMigrations(ctx context.Context, fsys fs.FS, files []string, sel models.Selection, r *Report) {
	if !sel.DBEngine.IsRelational() {
		return
	}

	var migrations []string
	for _, f := range files {
		if path.Dir(f) == defs.MigrationsDir && strings.HasSuffix(f, ".sql") {
			migrations = append(migrations, f)
		}
	}
	if len(migrations) == 0 {
		r.add(defs.MigrationsDir, SeverityError, RuleMigrations, "no migrations for %s", sel.DBEngine)
		return
	}
	if sel.DBEngine != models.EngineSQLite {
		return
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		r.add(defs.MigrationsDir, SeverityError, RuleMigrations, "open sqlite: %v", err)
		return
	}
	defer func() { _ = db.Close() }()
	// Every statement must see the same in-memory database.
	db.SetMaxOpenConns(1)

	for _, m := range migrations {
		stmts, err := fs.ReadFile(fsys, m)
		if err != nil {
			r.add(m, SeverityError, RuleMigrations, "%v", err)
			return
		}
		if _, err := db.ExecContext(ctx, string(stmts)); err != nil {
			r.add(m, SeverityError, RuleMigrations, "apply: %v", err)
			return
		}
		c.logger.Debug("applied migration", "file", m)
	}
}

// Build runs the Go toolchain against a generated project: go mod tidy, then
// go build ./... . It needs the toolchain on PATH and, for projects with
// database requirements, network access to the module proxy.
func Build(ctx context.Context, dir string) error {
	for _, args := range [][]string{{"mod", "tidy"}, {"build", "./..."}} {
		cmd := exec.CommandContext(ctx, "go", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("go %s: %w\n%s", strings.Join(args, " "), err, out)
		}
	}
	return nil
}
