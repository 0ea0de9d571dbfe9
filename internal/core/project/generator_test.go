package project

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/scaffold/internal/core/compose"
	"github.com/modu-ai/scaffold/internal/core/materialize"
	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/registry"
	"github.com/modu-ai/scaffold/internal/template"
	"github.com/modu-ai/scaffold/pkg/models"
)

var (
	orders = models.ProjectContext{ProjectName: "orders"}

	apiSqliteSqlx = models.Selection{
		TemplateFamily: models.FamilyAPIService,
		DBEngine:       models.EngineSQLite,
		DBLibrary:      models.LibrarySqlx,
	}
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	fsys, err := template.EmbeddedTemplates()
	require.NoError(t, err)
	reg, err := registry.Load(fsys)
	require.NoError(t, err)
	return NewGenerator(compose.NewResolver(reg, nil, template.WithVersion("v0.0.0-test")), nil)
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t)
	dest := filepath.Join(t.TempDir(), "orders")

	res, err := g.Generate(context.Background(), GenerateOptions{
		Selection:   apiSqliteSqlx,
		Context:     orders,
		Destination: dest,
	})
	require.NoError(t, err)
	assert.Equal(t, dest, res.Destination)
	assert.Equal(t, apiSqliteSqlx, res.Selection)
	assert.Contains(t, res.Files, "go.mod")
	assert.Contains(t, res.Files, "migrations/0001_init.sql")
	assert.Len(t, res.Digest, 64)
	assert.Empty(t, res.BackupPath)

	b, err := os.ReadFile(filepath.Join(dest, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "module orders")

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the project directory may remain")
}

func TestGenerateDefaultsDestinationToProjectName(t *testing.T) {
	t.Chdir(t.TempDir())
	g := newTestGenerator(t)

	res, err := g.Generate(context.Background(), GenerateOptions{
		Selection: models.Selection{TemplateFamily: models.FamilyCLITool, DBEngine: models.EngineNone, DBLibrary: models.LibraryNone},
		Context:   orders,
	})
	require.NoError(t, err)
	assert.Equal(t, "orders", filepath.Base(res.Destination))
	assert.FileExists(t, filepath.Join("orders", "main.go"))
}

func TestGenerateRejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		sel     models.Selection
		pc      models.ProjectContext
		wantErr error
	}{
		{
			name:    "incompatible selection",
			sel:     models.Selection{TemplateFamily: models.FamilyAPIService, DBEngine: models.EngineNone, DBLibrary: models.LibraryMongoDB},
			pc:      orders,
			wantErr: selection.ErrIncompatibleSelection,
		},
		{
			name:    "invalid project name",
			sel:     apiSqliteSqlx,
			pc:      models.ProjectContext{ProjectName: "1orders"},
			wantErr: selection.ErrInvalidContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			_, err := newTestGenerator(t).Generate(context.Background(), GenerateOptions{
				Selection:   tt.sel,
				Context:     tt.pc,
				Destination: filepath.Join(root, "out"),
			})
			require.ErrorIs(t, err, tt.wantErr)

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestGenerateDestinationConflict(t *testing.T) {
	g := newTestGenerator(t)
	dest := filepath.Join(t.TempDir(), "orders")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "notes.txt"), []byte("keep"), 0o644))

	opts := GenerateOptions{Selection: apiSqliteSqlx, Context: orders, Destination: dest}

	_, err := g.Generate(context.Background(), opts)
	require.ErrorIs(t, err, materialize.ErrDestinationConflict)

	opts.Overwrite = true
	res, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, res.BackupPath)
	assert.Equal(t, filepath.Dir(dest), filepath.Dir(res.BackupPath))

	b, err := os.ReadFile(filepath.Join(res.BackupPath, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(b))
	assert.FileExists(t, filepath.Join(dest, "go.mod"))
}

func TestGenerateIdempotent(t *testing.T) {
	g := newTestGenerator(t)
	root := t.TempDir()

	a, err := g.Generate(context.Background(), GenerateOptions{Selection: apiSqliteSqlx, Context: orders, Destination: filepath.Join(root, "a")})
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), GenerateOptions{Selection: apiSqliteSqlx, Context: orders, Destination: filepath.Join(root, "b")})
	require.NoError(t, err)

	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, a.Files, b.Files)
	for _, f := range a.Files {
		x, err := os.ReadFile(filepath.Join(a.Destination, filepath.FromSlash(f)))
		require.NoError(t, err)
		y, err := os.ReadFile(filepath.Join(b.Destination, filepath.FromSlash(f)))
		require.NoError(t, err)
		assert.Equal(t, x, y, f)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	_, err := newTestGenerator(t).Generate(ctx, GenerateOptions{Selection: apiSqliteSqlx, Context: orders, Destination: filepath.Join(root, "orders")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep(t *testing.T) {
	g := newTestGenerator(t)
	out := t.TempDir()

	var (
		mu    sync.Mutex
		calls []int
	)
	report, err := g.Sweep(context.Background(), SweepOptions{
		Out:     out,
		Context: orders,
		Jobs:    4,
		Progress: func(_ SweepResult, done, total int) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, done)
			assert.Equal(t, len(selection.All()), total)
		},
	})
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.Len(t, report.Results, len(selection.All()))
	assert.Len(t, calls, len(selection.All()))

	for i, sel := range selection.All() {
		res := report.Results[i]
		assert.Equal(t, sel, res.Selection)
		assert.Equal(t, filepath.Join(out, sel.Slug()), res.Destination)
		assert.FileExists(t, filepath.Join(res.Destination, "go.mod"))
		assert.FileExists(t, filepath.Join(res.Destination, ".scaffold.yaml"))
	}
}

func TestSweepFilterAndFailures(t *testing.T) {
	g := newTestGenerator(t)
	out := t.TempDir()

	// Occupy one destination so exactly that combination fails.
	blocked := models.Selection{TemplateFamily: models.FamilyCLITool, DBEngine: models.EngineNone, DBLibrary: models.LibraryNone}
	require.NoError(t, os.MkdirAll(filepath.Join(out, blocked.Slug()), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, blocked.Slug(), "x"), nil, 0o644))

	report, err := g.Sweep(context.Background(), SweepOptions{
		Out:     out,
		Context: orders,
		Jobs:    2,
		Filter:  SweepFilter(nil, []models.DBEngine{models.EngineNone}, nil),
	})
	require.NoError(t, err)

	require.Len(t, report.Results, len(models.AllTemplateFamilies()))
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, blocked, failed[0].Selection)
	assert.ErrorIs(t, report.Err(), ErrSweepFailed)
	assert.ErrorIs(t, report.Err(), materialize.ErrDestinationConflict)
}

func TestSweepFilter(t *testing.T) {
	f := SweepFilter([]models.TemplateFamily{models.FamilyWebApp}, nil, []models.DBLibrary{models.LibraryGorm})

	assert.True(t, f(models.Selection{TemplateFamily: models.FamilyWebApp, DBEngine: models.EngineMySQL, DBLibrary: models.LibraryGorm}))
	assert.False(t, f(models.Selection{TemplateFamily: models.FamilyAPIService, DBEngine: models.EngineMySQL, DBLibrary: models.LibraryGorm}))
	assert.False(t, f(models.Selection{TemplateFamily: models.FamilyWebApp, DBEngine: models.EngineMySQL, DBLibrary: models.LibrarySqlx}))
	assert.True(t, SweepFilter(nil, nil, nil)(apiSqliteSqlx))

	relational := SweepFilter(nil, []models.DBEngine{models.EngineSQLite, models.EnginePostgres}, nil)
	var slugs []string
	for _, sel := range selection.All() {
		if relational(sel) && sel.TemplateFamily == models.FamilyAPIService {
			slugs = append(slugs, sel.Slug())
		}
	}
	assert.Equal(t, []string{
		"api-service_sqlite_stdlib", "api-service_sqlite_sqlx", "api-service_sqlite_gorm",
		"api-service_postgres_stdlib", "api-service_postgres_sqlx", "api-service_postgres_gorm",
	}, slugs)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "store")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".scaffold.yaml"), []byte("project: orders\n"), 0o644))

	got, err := FindProjectRoot(nested)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotReal)

	_, err = FindProjectRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNotGenerated)
}
