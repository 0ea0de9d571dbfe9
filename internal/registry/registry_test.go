package registry

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/internal/template"
	"github.com/modu-ai/scaffold/pkg/models"
)

var sqliteSqlx = models.Selection{
	TemplateFamily: models.FamilyAPIService,
	DBEngine:       models.EngineSQLite,
	DBLibrary:      models.LibrarySqlx,
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.yaml": &fstest.MapFile{Data: []byte(`
fragments:
  - path: go.mod
    source: go.mod.tmpl
    layer: base
  - path: go.mod
    source: go.mod.db.tmpl
    layer: library
    when:
      libraries: [sqlx]
  - path: scripts/run.sh
    content: "#!/bin/sh\n"
    layer: base
    mode: "0755"
  - path: static/.gitkeep
    content: ""
    layer: base
`)},
		"go.mod.tmpl":    &fstest.MapFile{Data: []byte("module [[.ModulePath]]\n")},
		"go.mod.db.tmpl": &fstest.MapFile{Data: []byte("module [[.ModulePath]]\n\nrequire x v1\n")},
	}

	reg, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())

	frags := reg.Fragments()
	assert.Equal(t, "module [[.ModulePath]]\n", frags[0].Content)
	assert.Equal(t, LayerLibrary, frags[1].Layer)
	assert.Equal(t, []models.DBLibrary{models.LibrarySqlx}, frags[1].When.Libraries)
	assert.EqualValues(t, 0o755, frags[2].Mode)
	assert.Equal(t, "inline:scripts/run.sh", frags[2].Name())
	assert.Equal(t, "", frags[3].Content)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		files   fstest.MapFS
		wantErr error
	}{
		{
			name:    "missing catalog",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "malformed yaml",
			catalog: "fragments: [",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "unknown key",
			catalog: "fragments:\n  - path: a\n    layer: base\n    colour: red\n",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "unknown layer",
			catalog: "fragments:\n  - path: a\n    layer: top\n",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "missing source",
			catalog: "fragments:\n  - path: a\n    source: nope.tmpl\n    layer: base\n",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "source and content",
			catalog: "fragments:\n  - path: a\n    source: a.tmpl\n    content: x\n    layer: base\n",
			files:   fstest.MapFS{"a.tmpl": &fstest.MapFile{}},
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "bad mode",
			catalog: "fragments:\n  - path: a\n    layer: base\n    mode: rwx\n",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "unknown engine",
			catalog: "fragments:\n  - path: a\n    layer: engine\n    when:\n      engines: [oracle]\n",
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "conflict",
			catalog: "fragments:\n  - path: a\n    content: one\n    layer: base\n  - path: a\n    content: two\n    layer: base\n",
			wantErr: ErrFragmentConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for k, v := range tt.files {
				fsys[k] = v
			}
			if tt.catalog != "" {
				fsys["catalog.yaml"] = &fstest.MapFile{Data: []byte(tt.catalog)}
			}

			_, err := Load(fsys)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewConsistency(t *testing.T) {
	t.Run("disjoint predicates at the same path and layer are legal", func(t *testing.T) {
		_, err := New([]Fragment{
			{Path: "migrations/0001_init.sql", Source: "sqlite.sql", Layer: LayerEngine, When: Predicate{Engines: []models.DBEngine{models.EngineSQLite}}},
			{Path: "migrations/0001_init.sql", Source: "mysql.sql", Layer: LayerEngine, When: Predicate{Engines: []models.DBEngine{models.EngineMySQL}}},
		})
		assert.NoError(t, err)
	})

	t.Run("overlapping predicates conflict", func(t *testing.T) {
		_, err := New([]Fragment{
			{Path: "internal/store/store.go", Source: "sql.go", Layer: LayerLibrary, When: Predicate{Engines: []models.DBEngine{models.EngineSQLite}}},
			{Path: "internal/store/store.go", Source: "sqlx.go", Layer: LayerLibrary, When: Predicate{Libraries: []models.DBLibrary{models.LibrarySqlx}}},
		})
		require.ErrorIs(t, err, ErrFragmentConflict)
		assert.ErrorIs(t, err, ErrInvalidCatalog)

		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "sql.go", conflict.First)
		assert.Equal(t, "sqlx.go", conflict.Second)
		assert.True(t, conflict.Selection.DBEngine == models.EngineSQLite && conflict.Selection.DBLibrary == models.LibrarySqlx)
	})

	t.Run("predicates that only overlap on invalid selections are legal", func(t *testing.T) {
		// cli-tool never has a database, so these never meet.
		_, err := New([]Fragment{
			{Path: "main.go", Source: "cli.go", Layer: LayerBase, When: Predicate{Families: []models.TemplateFamily{models.FamilyCLITool}}},
			{Path: "main.go", Source: "db.go", Layer: LayerBase, When: Predicate{Engines: []models.DBEngine{models.EngineSQLite}}},
		})
		assert.NoError(t, err)
	})

	t.Run("unreachable fragment", func(t *testing.T) {
		_, err := New([]Fragment{
			{Path: "x", Layer: LayerBase, When: Predicate{
				Families: []models.TemplateFamily{models.FamilyCLITool},
				Engines:  []models.DBEngine{models.EngineMongoDB},
			}},
		})
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("unsafe patterns", func(t *testing.T) {
		for _, p := range []string{"", "/etc/passwd", "../x", "a/../b", "a//b", `a\b`, "C:/x", "./a"} {
			_, err := New([]Fragment{{Path: p, Layer: LayerBase}})
			assert.ErrorIs(t, err, ErrInvalidCatalog, "pattern %q", p)
		}
	})

	t.Run("input slice is copied", func(t *testing.T) {
		frags := []Fragment{{Path: "a", Content: "one", Layer: LayerBase}}
		reg, err := New(frags)
		require.NoError(t, err)
		frags[0].Content = "changed"
		assert.Equal(t, "one", reg.Fragments()[0].Content)
	})
}

func TestFragmentsFor(t *testing.T) {
	reg, err := New([]Fragment{
		{Path: "z.txt", Source: "z", Layer: LayerBase},
		{Path: "go.mod", Source: "lib", Layer: LayerLibrary, When: Predicate{Libraries: []models.DBLibrary{models.LibrarySqlx}}},
		{Path: "go.mod", Source: "base", Layer: LayerBase},
		{Path: "migrations/0001_init.sql", Source: "sqlite", Layer: LayerEngine, When: Predicate{Engines: []models.DBEngine{models.EngineSQLite}}},
		{Path: "migrations/0001_init.sql", Source: "mysql", Layer: LayerEngine, When: Predicate{Engines: []models.DBEngine{models.EngineMySQL}}},
		{Path: "main.go", Source: "cli", Layer: LayerBase, When: Predicate{Families: []models.TemplateFamily{models.FamilyCLITool}}},
	})
	require.NoError(t, err)

	names := func(frags []Fragment) []string {
		var out []string
		for _, f := range frags {
			out = append(out, f.Source)
		}
		return out
	}

	assert.Equal(t, []string{"base", "z", "sqlite", "lib"}, names(reg.FragmentsFor(sqliteSqlx)))

	cli := models.Selection{TemplateFamily: models.FamilyCLITool, DBEngine: models.EngineNone, DBLibrary: models.LibraryNone}
	assert.Equal(t, []string{"base", "cli", "z"}, names(reg.FragmentsFor(cli)))
}

func TestEmbeddedCatalog(t *testing.T) {
	fsys, err := template.EmbeddedTemplates()
	require.NoError(t, err)

	reg, err := Load(fsys)
	require.NoError(t, err)
	assert.Positive(t, reg.Len())

	for _, sel := range selection.All() {
		frags := reg.FragmentsFor(sel)
		var hasGoMod, hasManifest bool
		for _, f := range frags {
			hasGoMod = hasGoMod || f.Path == "go.mod"
			hasManifest = hasManifest || f.Path == ".scaffold.yaml"
		}
		assert.True(t, hasGoMod, "%s has no go.mod fragment", sel)
		assert.True(t, hasManifest, "%s has no .scaffold.yaml fragment", sel)
	}
}
