package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/scaffold/internal/core/selection"
	"github.com/modu-ai/scaffold/pkg/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "absent.yaml"))

	l := NewLoader()
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
	assert.Empty(t, l.ConfigFileUsed())
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `
defaults:
  template: web-app
  db_engine: postgres
  db_library: sqlx
  locale: ko
output_dir: ~/src
sweep:
  jobs: 8
log:
  level: debug
`)

	l := NewLoader()
	cfg, err := l.Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, l.ConfigFileUsed())

	assert.Equal(t, models.Selection{
		TemplateFamily: models.FamilyWebApp,
		DBEngine:       models.EnginePostgres,
		DBLibrary:      models.LibrarySqlx,
	}, cfg.Defaults.Selection())
	assert.Equal(t, "ko", cfg.Defaults.Locale)
	assert.Equal(t, "~/src", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Sweep.Jobs)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	p := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := NewLoader().Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultTemplate, cfg.Defaults.Template)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	p := writeConfig(t, "defaults:\n  template: web-app\nsweep:\n  jobs: 2\n")
	t.Setenv("SCAFFOLD_DEFAULTS_TEMPLATE", "cli-tool")
	t.Setenv("SCAFFOLD_SWEEP_JOBS", "6")
	t.Setenv("SCAFFOLD_LOG_LEVEL", "error")

	cfg, err := NewLoader().Load(p)
	require.NoError(t, err)
	assert.Equal(t, models.FamilyCLITool, cfg.Defaults.Template)
	assert.Equal(t, 6, cfg.Sweep.Jobs)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "explicit file missing",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: ErrConfigNotFound,
		},
		{
			name:    "malformed yaml",
			path:    func(t *testing.T) string { return writeConfig(t, "defaults: [\n") },
			wantErr: ErrInvalidYAML,
		},
		{
			name:    "unknown template",
			path:    func(t *testing.T) string { return writeConfig(t, "defaults:\n  template: desktop\n") },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative jobs",
			path:    func(t *testing.T) string { return writeConfig(t, "sweep:\n  jobs: -1\n") },
			wantErr: ErrInvalidConfig,
		},
		{
			name: "incompatible default selection",
			path: func(t *testing.T) string {
				return writeConfig(t, "defaults:\n  template: api-service\n  db_engine: none\n  db_library: mongodb\n")
			},
			wantErr: selection.ErrIncompatibleSelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Load(tt.path(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfigFile(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	p, err := DefaultConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(p))
	assert.Equal(t, "scaffold", filepath.Base(filepath.Dir(p)))

	t.Setenv(EnvConfigFile, "/etc/scaffold.yaml")
	p, err = DefaultConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/scaffold.yaml", p)
}
